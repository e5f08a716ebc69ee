package context

import (
	"errors"
	"github.com/vertgenlab/gonomics/dna"
	"testing"
)

var errOutside = errors.New("outside window")

// seqRef is a reference whose first base sits at position start.
type seqRef struct {
	start int
	seq   []dna.Base
}

func (r seqRef) BaseAt(pos int) (dna.Base, error) {
	if pos < r.start || pos >= r.start+len(r.seq) {
		return dna.N, errOutside
	}
	return r.seq[pos-r.start], nil
}

func TestFromBase(t *testing.T) {
	expected := map[dna.Base]Class{dna.A: FollowedByA, dna.C: FollowedByC, dna.G: FollowedByG, dna.T: FollowedByT}
	for b, c := range expected {
		actual, err := FromBase(b)
		if err != nil || actual != c {
			t.Errorf("base %s: expected %s, got %s (%v)", dna.BaseToString(b), c, actual, err)
		}
	}

	for _, b := range []dna.Base{dna.N, dna.LowerA, dna.Gap} {
		if _, err := FromBase(b); !errors.Is(err, ErrInvalidBase) {
			t.Errorf("base %s: expected ErrInvalidBase, got %v", dna.BaseToString(b), err)
		}
	}
}

func TestClassifyCytosine(t *testing.T) {
	// positions 11..18
	ref := seqRef{start: 11, seq: dna.StringToBases("CACCCGCT")}
	tests := []struct {
		pos      int
		expected Class
	}{
		{11, FollowedByA},
		{13, FollowedByC},
		{15, FollowedByG},
		{17, FollowedByT},
	}
	for _, test := range tests {
		actual, err := Classify(ref, test.pos, dna.C)
		if err != nil || actual != test.expected {
			t.Errorf("position %d: expected %s, got %s (%v)", test.pos, test.expected, actual, err)
		}
	}
}

func TestClassifyGuanine(t *testing.T) {
	// a G is classified by the complement of the base before it
	ref := seqRef{start: 1, seq: dna.StringToBases("AGCGGGTG")}
	tests := []struct {
		pos      int
		expected Class
	}{
		{2, FollowedByT}, // A before G -> T
		{4, FollowedByG}, // C before G -> G
		{5, FollowedByC}, // G before G -> C
		{8, FollowedByA}, // T before G -> A
	}
	for _, test := range tests {
		actual, err := Classify(ref, test.pos, dna.G)
		if err != nil || actual != test.expected {
			t.Errorf("position %d: expected %s, got %s (%v)", test.pos, test.expected, actual, err)
		}
	}
}

func TestClassifyInvalid(t *testing.T) {
	ref := seqRef{start: 1, seq: dna.StringToBases("CNGNCA")}
	if _, err := Classify(ref, 1, dna.C); !errors.Is(err, ErrInvalidBase) {
		t.Errorf("expected ErrInvalidBase for C followed by N, got %v", err)
	}
	if _, err := Classify(ref, 3, dna.G); !errors.Is(err, ErrInvalidBase) {
		t.Errorf("expected ErrInvalidBase for G preceded by N, got %v", err)
	}
	if _, err := Classify(ref, 6, dna.A); !errors.Is(err, ErrInvalidBase) {
		t.Errorf("expected ErrInvalidBase for non C/G reference base, got %v", err)
	}
}

func TestClassifyWindowMiss(t *testing.T) {
	ref := seqRef{start: 1, seq: dna.StringToBases("ACGTC")}
	_, err := Classify(ref, 5, dna.C)
	if !errors.Is(err, errOutside) {
		t.Errorf("expected reference error to be returned, got %v", err)
	}
	if errors.Is(err, ErrInvalidBase) {
		t.Error("reference errors must not be reported as ErrInvalidBase")
	}
}

func TestClassifyDeterministic(t *testing.T) {
	ref := seqRef{start: 100, seq: dna.StringToBases("TTCGATCCAGGTCA")}
	var first, second Class
	var err1, err2 error
	for pos := 100; pos < 114; pos++ {
		b, _ := ref.BaseAt(pos)
		if b != dna.C && b != dna.G {
			continue
		}
		first, err1 = Classify(ref, pos, b)
		second, err2 = Classify(ref, pos, b)
		if first != second || err1 != err2 {
			t.Errorf("position %d classified inconsistently: %s %s", pos, first, second)
		}
		if err1 == nil && int(first) >= NumClasses {
			t.Errorf("position %d classified out of range: %d", pos, first)
		}
	}
}

func TestClassString(t *testing.T) {
	var s string
	for _, c := range Classes {
		s += c.String()
	}
	if s != "CpACpCCpGCpT" {
		t.Errorf("unexpected class names: %s", s)
	}
}
