package bsconv

import (
	"fmt"
	"github.com/vertgenlab/gonomics/chromInfo"
	"strconv"
	"strings"
)

// Region is a genomic interval, 1-based and inclusive. An End of 0 extends the
// region to the end of the contig.
type Region struct {
	Chrom string
	Start int
	End   int
}

// String method for Region enables easy writing with the fmt package.
func (r Region) String() string {
	if r.End == 0 {
		return fmt.Sprintf("%s:%d", r.Chrom, r.Start)
	}
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}

// ParseRegion reads a region in the form chr, chr:start, or chr:start-end.
// Thousands separators in the coordinates are ignored.
func ParseRegion(s string) (Region, error) {
	var ans Region
	var err error
	s = strings.TrimSpace(s)
	colon := strings.LastIndexByte(s, ':')
	if colon == -1 {
		ans.Chrom = s
		ans.Start = 1
	} else {
		ans.Chrom = s[:colon]
		coords := strings.ReplaceAll(s[colon+1:], ",", "")
		start, end, hasEnd := strings.Cut(coords, "-")
		ans.Start, err = strconv.Atoi(start)
		if err != nil {
			return ans, fmt.Errorf("malformed region start in %q", s)
		}
		if hasEnd {
			ans.End, err = strconv.Atoi(end)
			if err != nil {
				return ans, fmt.Errorf("malformed region end in %q", s)
			}
		}
	}

	switch {
	case ans.Chrom == "":
		return ans, fmt.Errorf("region %q has no contig", s)
	case ans.Start < 1:
		return ans, fmt.Errorf("region %q must start at 1 or later", s)
	case ans.End != 0 && ans.End < ans.Start:
		return ans, fmt.Errorf("region %q ends before it starts", s)
	}
	return ans, nil
}

// bounds returns the 0-based half-open interval of r, resolving an open end
// against the contig lengths in chroms.
func (r Region) bounds(chroms []chromInfo.ChromInfo) (start, end uint32, err error) {
	size, found := contigSize(chroms, r.Chrom)
	if !found {
		return 0, 0, fmt.Errorf("region contig %s not found in alignment header", r.Chrom)
	}
	e := r.End
	if e == 0 || e > size {
		e = size
	}
	if r.Start > e {
		return 0, 0, fmt.Errorf("region %s is past the end of %s (length %d)", r, r.Chrom, size)
	}
	return uint32(r.Start - 1), uint32(e), nil
}

func contigSize(chroms []chromInfo.ChromInfo, name string) (int, bool) {
	for i := range chroms {
		if chroms[i].Name == name {
			return chroms[i].Size, true
		}
	}
	return 0, false
}
