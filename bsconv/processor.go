// Package bsconv annotates bisulfite reads with their retention and
// conversion counts per cytosine context and filters reads with incomplete
// conversion.
package bsconv

import (
	"fmt"
	"github.com/dasnellings/bisulfiteTools/align"
	"github.com/dasnellings/bisulfiteTools/context"
	"github.com/dasnellings/bisulfiteTools/filter"
	"github.com/dasnellings/bisulfiteTools/output"
	"github.com/dasnellings/bisulfiteTools/refcache"
	"github.com/dasnellings/bisulfiteTools/retention"
	"github.com/dasnellings/bisulfiteTools/strand"
	"github.com/vertgenlab/gonomics/sam"
)

// sam flags of reads that are passed through without counting
const (
	flagUnmapped      uint16 = 0x4
	flagSecondary     uint16 = 0x100
	flagQcFail        uint16 = 0x200
	flagDuplicate     uint16 = 0x400
	flagSupplementary uint16 = 0x800

	excludeMask = flagUnmapped | flagSecondary | flagQcFail | flagDuplicate | flagSupplementary
)

// fetchPad is the number of reference bases fetched on either side of a read.
const fetchPad int = 10

// Outcome is the fate of a read.
type Outcome byte

const (
	PassThrough Outcome = iota // excluded by flag, written unmodified in annotated mode
	Suppressed                 // filtered out
	Emitted                    // counted and kept
)

// String method for Outcome enables easy writing with the fmt package.
func (o Outcome) String() string {
	switch o {
	case PassThrough:
		return "passthrough"
	case Suppressed:
		return "suppressed"
	default:
		return "emitted"
	}
}

// Reference is a reference window that can be moved to cover a read.
type Reference interface {
	context.Reference
	Fetch(chr string, start, end int) error
	Size(chr string) (int, bool)
}

// Config is shared by every read of a run.
type Config struct {
	Thresholds filter.Thresholds
	Invert     bool // keep only the reads that exceed the thresholds
	Tabular    bool // counts are rendered as text instead of tagging the read
}

// Result is the outcome of processing one read.
type Result struct {
	Outcome Outcome
	Strand  strand.Strand
	Counts  retention.Counts
}

// Processor processes reads one at a time. It owns its reference window, so a
// Processor must not be shared between goroutines.
type Processor struct {
	Config
	ref Reference
}

// NewProcessor returns a Processor reading reference bases from ref.
func NewProcessor(cfg Config, ref Reference) *Processor {
	return &Processor{Config: cfg, ref: ref}
}

// Excluded reports whether s is unmapped, secondary, QC failed, a duplicate, or
// supplementary. Excluded reads are never counted or filtered.
func Excluded(s sam.Sam) bool {
	return s.Flag&excludeMask != 0
}

// Process resolves the strand of s, counts retention and conversion, and applies
// the thresholds. In annotated mode an emitted read gets the ZN tag added.
// Errors are fatal for the run.
func (p *Processor) Process(s *sam.Sam) (Result, error) {
	var ans Result
	if Excluded(*s) {
		ans.Outcome = PassThrough
		return ans, nil
	}

	end, err := align.RefEnd(*s)
	if err != nil {
		return ans, fmt.Errorf("read %s: %w", s.QName, err)
	}
	if size, found := p.ref.Size(s.RName); found && end > size {
		return ans, fmt.Errorf("read %s: aligned to %s:%d-%d past the contig end at %d: %w", s.QName, s.RName, s.Pos, end, size, refcache.ErrWindowMiss)
	}
	err = p.ref.Fetch(s.RName, int(s.Pos)-fetchPad, end+fetchPad)
	if err != nil {
		return ans, fmt.Errorf("read %s: %w", s.QName, err)
	}

	ans.Strand, err = strand.Resolve(*s, p.ref)
	if err != nil {
		return ans, fmt.Errorf("read %s: resolving strand: %w", s.QName, err)
	}

	ans.Counts, err = retention.Count(*s, ans.Strand, p.ref)
	if err != nil {
		return ans, fmt.Errorf("read %s: %w", s.QName, err)
	}

	if filter.ShouldSuppress(ans.Counts, p.Thresholds, p.Invert) {
		ans.Outcome = Suppressed
		return ans, nil
	}

	ans.Outcome = Emitted
	if !p.Tabular {
		output.Annotate(s, ans.Counts)
	}
	return ans, nil
}
