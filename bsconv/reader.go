package bsconv

import (
	"errors"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/numbers"
	"github.com/vertgenlab/gonomics/sam"
	"golang.org/x/exp/slices"
	"io"
	"strings"
)

// reader pulls reads from a sam or bam file in file order. With a region only
// the reads whose aligned span overlaps it are returned. Coordinate sorted
// input stops being read once the reads are past the region.
type reader struct {
	bam    *sam.BamReader
	text   *fileio.EasyReader
	header sam.Header

	region     bool
	chrom      string
	start, end int // 0-based, half-open
	sorted     bool
	inRegion   bool // a read on chrom has been seen
	done       bool
}

// openReader opens input, which may be "stdin" for sam text. region may be empty.
func openReader(input, region string) (*reader, error) {
	var r Region
	var err error
	if region != "" {
		r, err = ParseRegion(region)
		if err != nil {
			return nil, err
		}
	}

	ans := new(reader)
	if strings.HasSuffix(input, ".bam") {
		ans.bam, ans.header = sam.OpenBam(input)
	} else {
		ans.text = fileio.EasyOpen(input)
		ans.header = sam.ReadHeader(ans.text)
	}
	if region == "" {
		return ans, nil
	}

	start, end, err := r.bounds(ans.header.Chroms)
	if err != nil {
		cleanupReader(ans)
		return nil, err
	}
	ans.region = true
	ans.chrom = r.Chrom
	ans.start, ans.end = int(start), int(end)
	ans.sorted = slices.Contains(ans.header.Metadata.SortOrder, sam.Coordinate)
	return ans, nil
}

// next returns the next read, and false once the input is exhausted.
func (r *reader) next() (sam.Sam, bool) {
	for !r.done {
		s, ok := r.read()
		if !ok {
			r.done = true
			break
		}
		if !r.region {
			return s, true
		}
		if s.RName != r.chrom {
			if r.sorted && r.inRegion {
				r.done = true
			}
			continue
		}
		r.inRegion = true
		start, end := span(s)
		if r.sorted && start >= r.end {
			r.done = true
			break
		}
		if start < r.end && end > r.start {
			return s, true
		}
	}
	return sam.Sam{}, false
}

func (r *reader) read() (sam.Sam, bool) {
	if r.text != nil {
		s, done := sam.ReadNext(r.text)
		return s, !done
	}
	var s sam.Sam
	// a record with bases outside ACGTN still decodes, only EOF ends the input
	_, err := sam.DecodeBam(r.bam, &s)
	if errors.Is(err, io.EOF) {
		return s, false
	}
	return s, true
}

func (r *reader) Close() error {
	if r.bam != nil {
		return r.bam.Close()
	}
	return r.text.Close()
}

// span returns the 0-based half-open reference interval covered by s. Reads
// without an alignment cover the single base at their position.
func span(s sam.Sam) (start, end int) {
	start = s.GetChromStart()
	end = start + 1
	if len(s.Cigar) > 0 && s.Cigar[0].Op != '*' {
		end = numbers.Max(end, s.GetChromEnd())
	}
	return start, end
}

func cleanupReader(r *reader) {
	err := r.Close()
	exception.PanicOnErr(err)
}
