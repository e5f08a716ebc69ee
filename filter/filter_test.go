package filter

import (
	"github.com/dasnellings/bisulfiteTools/context"
	"github.com/dasnellings/bisulfiteTools/retention"
	"testing"
)

func retained(a, c, g, t int) retention.Counts {
	return retention.Counts{Retained: [context.NumClasses]int{a, c, g, t}}
}

func TestSuppressCpA(t *testing.T) {
	thresholds := NoLimits()
	thresholds.MaxCpA = 0
	c := retained(1, 0, 0, 0)

	if !ShouldSuppress(c, thresholds, false) {
		t.Error("read with a retained CpA above the limit should be suppressed")
	}
	if ShouldSuppress(c, thresholds, true) {
		t.Error("read with a retained CpA above the limit should be kept when inverted")
	}
	if ShouldSuppress(retained(0, 0, 0, 0), thresholds, false) {
		t.Error("read without retained CpA should be kept")
	}
	if !ShouldSuppress(retained(0, 0, 0, 0), thresholds, true) {
		t.Error("read without retained CpA should be suppressed when inverted")
	}
}

func TestNoLimits(t *testing.T) {
	thresholds := NoLimits()
	if thresholds.Active() {
		t.Error("NoLimits should not be active")
	}
	for _, c := range []retention.Counts{retained(0, 0, 0, 0), retained(100, 50, 1000, 7), retained(0, 0, 1, 0)} {
		if ShouldSuppress(c, thresholds, false) {
			t.Errorf("no thresholds set, but %+v was suppressed", c)
		}
		if !ShouldSuppress(c, thresholds, true) {
			t.Errorf("no thresholds set and inverted, but %+v was kept", c)
		}
	}
}

func TestIndividualBounds(t *testing.T) {
	tests := []struct {
		name       string
		thresholds Thresholds
		counts     retention.Counts
		expected   bool
	}{
		{"CpC at limit", Thresholds{MaxCpH: Unset, MaxCpA: Unset, MaxCpC: 2, MaxCpT: Unset}, retained(9, 2, 0, 9), false},
		{"CpC over limit", Thresholds{MaxCpH: Unset, MaxCpA: Unset, MaxCpC: 2, MaxCpT: Unset}, retained(0, 3, 0, 0), true},
		{"CpT over limit", Thresholds{MaxCpH: Unset, MaxCpA: Unset, MaxCpC: Unset, MaxCpT: 0}, retained(0, 0, 0, 1), true},
		{"CpH sums contexts", Thresholds{MaxCpH: 2, MaxCpA: Unset, MaxCpC: Unset, MaxCpT: Unset}, retained(1, 1, 0, 1), true},
		{"CpH at limit", Thresholds{MaxCpH: 3, MaxCpA: Unset, MaxCpC: Unset, MaxCpT: Unset}, retained(1, 1, 0, 1), false},
		{"CpG ignored", Thresholds{MaxCpH: 0, MaxCpA: 0, MaxCpC: 0, MaxCpT: 0}, retained(0, 0, 50, 0), false},
	}
	for _, test := range tests {
		if actual := ShouldSuppress(test.counts, test.thresholds, false); actual != test.expected {
			t.Errorf("%s: expected %t, got %t", test.name, test.expected, actual)
		}
		if actual := ShouldSuppress(test.counts, test.thresholds, true); actual == test.expected {
			t.Errorf("%s: inverted decision should be %t", test.name, !test.expected)
		}
	}
}

func TestConvertedNeverFilters(t *testing.T) {
	thresholds := Thresholds{MaxCpH: 0, MaxCpA: 0, MaxCpC: 0, MaxCpT: 0}
	c := retention.Counts{Converted: [context.NumClasses]int{10, 10, 10, 10}}
	if ShouldSuppress(c, thresholds, false) {
		t.Error("converted cytosines should never cause filtering")
	}
}

func TestThresholdsString(t *testing.T) {
	thresholds := NoLimits()
	thresholds.MaxCpA = 3
	if thresholds.String() != "CpH<=Inf CpA<=3 CpC<=Inf CpT<=Inf" {
		t.Errorf("unexpected string: %s", thresholds)
	}
	if !thresholds.Active() {
		t.Error("thresholds with CpA set should be active")
	}
}
