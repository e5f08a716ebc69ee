package filter

import (
	"fmt"
	"github.com/dasnellings/bisulfiteTools/context"
	"github.com/dasnellings/bisulfiteTools/retention"
	"strings"
)

// Unset disables a threshold.
const Unset int = -1

// Thresholds are the maximum number of retained cytosines a read may carry in each
// non-CpG context before it is filtered. A negative value means no limit. Note that
// the zero value limits every context to 0; use NoLimits as a starting point.
type Thresholds struct {
	MaxCpH int // CpA + CpC + CpT combined
	MaxCpA int
	MaxCpC int
	MaxCpT int
}

// NoLimits returns Thresholds with every bound unset.
func NoLimits() Thresholds {
	return Thresholds{MaxCpH: Unset, MaxCpA: Unset, MaxCpC: Unset, MaxCpT: Unset}
}

// Active reports whether any bound is set.
func (t Thresholds) Active() bool {
	return t.MaxCpH >= 0 || t.MaxCpA >= 0 || t.MaxCpC >= 0 || t.MaxCpT >= 0
}

// String method for Thresholds enables easy writing with the fmt package.
func (t Thresholds) String() string {
	s := new(strings.Builder)
	for i, b := range []struct {
		name  string
		limit int
	}{{"CpH", t.MaxCpH}, {"CpA", t.MaxCpA}, {"CpC", t.MaxCpC}, {"CpT", t.MaxCpT}} {
		if i > 0 {
			s.WriteByte(' ')
		}
		if b.limit < 0 {
			fmt.Fprintf(s, "%s<=Inf", b.name)
		} else {
			fmt.Fprintf(s, "%s<=%d", b.name, b.limit)
		}
	}
	return s.String()
}

// ShouldSuppress reports whether a read with counts c is left out of the output.
// A read exceeds the thresholds when its retained count in any bounded non-CpG
// context, or its combined CpH retention, is above the bound. CpG retention never
// causes filtering. When invert is set the decision is flipped so that only reads
// exceeding the thresholds are kept.
func ShouldSuppress(c retention.Counts, t Thresholds, invert bool) bool {
	var exceeds bool
	if t.MaxCpA >= 0 && c.Retained[context.FollowedByA] > t.MaxCpA {
		exceeds = true
	}
	if t.MaxCpC >= 0 && c.Retained[context.FollowedByC] > t.MaxCpC {
		exceeds = true
	}
	if t.MaxCpT >= 0 && c.Retained[context.FollowedByT] > t.MaxCpT {
		exceeds = true
	}
	if t.MaxCpH >= 0 && c.CpH() > t.MaxCpH {
		exceeds = true
	}
	if invert {
		return !exceeds
	}
	return exceeds
}
