// Package retention counts, for one bisulfite read, how many informative
// cytosines kept their original base and how many were converted.
package retention

import (
	"errors"
	"github.com/dasnellings/bisulfiteTools/align"
	"github.com/dasnellings/bisulfiteTools/context"
	"github.com/dasnellings/bisulfiteTools/strand"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/sam"
)

// Counts holds retention and conversion counts for one read, indexed by context class.
type Counts struct {
	Retained  [context.NumClasses]int
	Converted [context.NumClasses]int
}

// CpH returns the number of retained cytosines outside of CpG context.
func (c Counts) CpH() int {
	return c.Retained[context.FollowedByA] + c.Retained[context.FollowedByC] + c.Retained[context.FollowedByT]
}

// CpHInformative returns the number of non-CpG cytosines that were either retained or converted.
func (c Counts) CpHInformative() int {
	return c.CpH() + c.Converted[context.FollowedByA] + c.Converted[context.FollowedByC] + c.Converted[context.FollowedByT]
}

// Informative returns the total number of counted positions.
func (c Counts) Informative() int {
	var ans int
	for i := range c.Retained {
		ans += c.Retained[i] + c.Converted[i]
	}
	return ans
}

// Count walks the alignment of s against ref and counts the informative positions
// for the strand st. On the top strand a reference C is informative and reads C when
// retained or T when converted. On the bottom strand a reference G is informative and
// reads G when retained or A when converted. Positions whose context cannot be
// classified are skipped. ref must cover the aligned region of s plus one base on
// either side.
func Count(s sam.Sam, st strand.Strand, ref context.Reference) (Counts, error) {
	var ans Counts
	err := align.Walk(s, func(refPos, queryPos int) error {
		rb, err := ref.BaseAt(refPos)
		if err != nil {
			return err
		}
		switch {
		case rb != dna.C && rb != dna.G:
			return nil
		case st == strand.Bottom && rb == dna.C:
			return nil
		case st == strand.Top && rb == dna.G:
			return nil
		}

		class, err := context.Classify(ref, refPos, rb)
		if errors.Is(err, context.ErrInvalidBase) {
			return nil
		}
		if err != nil {
			return err
		}

		qb := observed(s, queryPos)
		switch {
		case rb == dna.G && qb == dna.G, rb == dna.C && qb == dna.C:
			ans.Retained[class]++
		case rb == dna.G && qb == dna.A, rb == dna.C && qb == dna.T:
			ans.Converted[class]++
		}
		return nil
	})
	return ans, err
}

// observed returns the upper-case read base at queryPos, or N if the read
// sequence does not extend that far.
func observed(s sam.Sam, queryPos int) dna.Base {
	if queryPos >= len(s.Seq) {
		return dna.N
	}
	return dna.ToUpper(s.Seq[queryPos])
}
