// Package refcache provides a window of reference sequence that is fetched
// ahead of the reads that need it, so coordinate sorted input only seeks the
// fasta occasionally.
package refcache

import (
	"errors"
	"fmt"
	"github.com/dasnellings/bisulfiteTools/fai"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/numbers"
)

// DefaultChunk is the minimum number of bases fetched when the window moves.
const DefaultChunk int = 100_000

// ErrWindowMiss is returned for positions on the current contig that lie outside the fetched window.
var ErrWindowMiss = errors.New("position outside fetched reference window")

// Cache holds one window of upper-case reference sequence. A Cache is not safe
// for concurrent use; each worker must own its own.
type Cache struct {
	seeker *fasta.Seeker
	idx    fai.Index
	chunk  int
	chr    string
	chrLen int
	start  int        // 1-based position of seq[0]
	seq    []dna.Base // upper case
}

// New opens an indexed fasta file. The index must be at ref + ".fai".
func New(ref string) (*Cache, error) {
	idx, err := fai.ReadIndex(ref + ".fai")
	if err != nil {
		return nil, err
	}
	return &Cache{
		seeker: fasta.NewSeeker(ref, ""),
		idx:    idx,
		chunk:  DefaultChunk,
	}, nil
}

// Close closes the underlying fasta file.
func (c *Cache) Close() error {
	return c.seeker.Close()
}

// Has reports whether the reference contains chr.
func (c *Cache) Has(chr string) bool {
	_, found := c.idx.Size(chr)
	return found
}

// Size returns the length of chr, and false if chr is not in the reference.
func (c *Cache) Size(chr string) (int, bool) {
	return c.idx.Size(chr)
}

// Contigs returns the names of the reference contigs in index order.
func (c *Cache) Contigs() []string {
	return c.idx.Names()
}

// Fetch makes sure the window covers chr:start-end (1-based, inclusive). The
// interval is clamped to the contig. The current window is kept when it already
// covers the interval, otherwise at least chunk bases are read starting at start.
func (c *Cache) Fetch(chr string, start, end int) error {
	size, found := c.idx.Size(chr)
	if !found {
		return fmt.Errorf("contig %s not found in reference", chr)
	}
	start = numbers.Max(start, 1)
	end = numbers.Min(end, size)
	if start > end {
		return fmt.Errorf("interval %s:%d-%d does not overlap reference contig of length %d", chr, start, end, size)
	}

	if chr == c.chr && start >= c.start && end < c.start+len(c.seq) {
		return nil
	}

	fetchEnd := numbers.Min(numbers.Max(end, start+c.chunk-1), size)
	seq, err := fasta.SeekByName(c.seeker, chr, start-1, fetchEnd)
	if err != nil {
		return fmt.Errorf("fetching reference %s:%d-%d: %w", chr, start, fetchEnd, err)
	}
	dna.AllToUpper(seq)
	c.chr = chr
	c.chrLen = size
	c.start = start
	c.seq = seq
	return nil
}

// BaseAt returns the upper-case base at pos (1-based) on the current contig.
// Positions beyond either end of the contig read as N.
func (c *Cache) BaseAt(pos int) (dna.Base, error) {
	if c.seq == nil {
		return dna.N, fmt.Errorf("%w: nothing fetched", ErrWindowMiss)
	}
	if pos < 1 || pos > c.chrLen {
		return dna.N, nil
	}
	if pos < c.start || pos >= c.start+len(c.seq) {
		return dna.N, fmt.Errorf("%w: %s:%d (window %s:%d-%d)", ErrWindowMiss, c.chr, pos, c.chr, c.start, c.start+len(c.seq)-1)
	}
	return c.seq[pos-c.start], nil
}
