package bsconv

import (
	"github.com/vertgenlab/gonomics/chromInfo"
	"testing"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		input    string
		expected Region
	}{
		{"chr1", Region{"chr1", 1, 0}},
		{"chr1:500", Region{"chr1", 500, 0}},
		{"chr1:1,000-2,000", Region{"chr1", 1000, 2000}},
		{" chrUn:KI270742v1:5-5 ", Region{"chrUn:KI270742v1", 5, 5}},
	}
	for _, test := range tests {
		actual, err := ParseRegion(test.input)
		if err != nil {
			t.Errorf("%q: %s", test.input, err)
			continue
		}
		if actual != test.expected {
			t.Errorf("%q: expected %v, got %v", test.input, test.expected, actual)
		}
	}

	for _, bad := range []string{"", ":1-5", "chr1:a-5", "chr1:5-b", "chr1:0-5", "chr1:10-5"} {
		if _, err := ParseRegion(bad); err == nil {
			t.Errorf("expected error parsing %q", bad)
		}
	}
}

func TestRegionBounds(t *testing.T) {
	chroms := []chromInfo.ChromInfo{{Name: "chr1", Size: 40}, {Name: "chr2", Size: 12}}
	tests := []struct {
		r          Region
		start, end uint32
	}{
		{Region{"chr1", 1, 0}, 0, 40},
		{Region{"chr1", 11, 20}, 10, 20},
		{Region{"chr2", 5, 100}, 4, 12},
	}
	for _, test := range tests {
		start, end, err := test.r.bounds(chroms)
		if err != nil {
			t.Errorf("%s: %s", test.r, err)
			continue
		}
		if start != test.start || end != test.end {
			t.Errorf("%s: expected [%d,%d), got [%d,%d)", test.r, test.start, test.end, start, end)
		}
	}

	if _, _, err := (Region{"chr3", 1, 0}).bounds(chroms); err == nil {
		t.Error("expected error for contig missing from header")
	}
	if _, _, err := (Region{"chr2", 13, 0}).bounds(chroms); err == nil {
		t.Error("expected error for region past the contig end")
	}
}
