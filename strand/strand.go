// Package strand determines which original DNA strand a bisulfite read was
// derived from.
package strand

import (
	"fmt"
	"github.com/dasnellings/bisulfiteTools/align"
	"github.com/dasnellings/bisulfiteTools/context"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/sam"
	"strings"
)

// Strand is the bisulfite strand of origin. On the top strand cytosines carry
// the conversion signal (C>T), on the bottom strand guanines do (G>A).
type Strand byte

const (
	Top Strand = iota
	Bottom
)

// String method for Strand enables easy writing with the fmt package.
func (s Strand) String() string {
	if s == Bottom {
		return "bottom"
	}
	return "top"
}

// Resolve returns the strand of s. Strand tags written by bisulfite aligners are
// used when present, checked in the order ZS (bsmap, biscuit), YD (bwa-meth),
// XG (Bismark). Otherwise the strand is inferred from mismatches against ref,
// which must cover every aligned position of s.
func Resolve(s sam.Sam, ref context.Reference) (Strand, error) {
	if st, found := FromTags(s); found {
		return st, nil
	}
	return Infer(s, ref)
}

// FromTags reads the strand from aligner tags. found is false when no tag
// gives a recognizable strand.
func FromTags(s sam.Sam) (st Strand, found bool) {
	if val, ok := TagValue(s, "ZS"); ok && len(val) > 0 {
		switch val[0] {
		case '+':
			return Top, true
		case '-':
			return Bottom, true
		}
	}

	if val, ok := TagValue(s, "YD"); ok {
		switch val {
		case "f":
			return Top, true
		case "r":
			return Bottom, true
		}
	}

	if val, ok := TagValue(s, "XG"); ok {
		switch val {
		case "CT":
			return Top, true
		case "GA":
			return Bottom, true
		}
	}
	return Top, false
}

// Infer counts C>T and G>A mismatches over the aligned bases of s. The read is
// from the bottom strand when G>A mismatches outnumber C>T mismatches.
func Infer(s sam.Sam, ref context.Reference) (Strand, error) {
	var cToT, gToA int
	err := align.Walk(s, func(refPos, queryPos int) error {
		if queryPos >= len(s.Seq) {
			return nil
		}
		rb, err := ref.BaseAt(refPos)
		if err != nil {
			return err
		}
		qb := dna.ToUpper(s.Seq[queryPos])
		switch {
		case rb == dna.C && qb == dna.T:
			cToT++
		case rb == dna.G && qb == dna.A:
			gToA++
		}
		return nil
	})
	if err != nil {
		return Top, err
	}
	if gToA > cToT {
		return Bottom, nil
	}
	return Top, nil
}

// TagValue returns the value of an aux tag of s as text. Records read from sam
// text (or already parsed) carry their tags in Extra. Records read from bam
// carry them as raw bytes until parsed, which sam.QueryTag reads without
// modifying the record.
func TagValue(s sam.Sam, tag string) (string, bool) {
	if s.Extra != "" {
		return textTag(s.Extra, tag)
	}
	// QueryTag fails only when the record holds no raw bam tags
	query, found, err := sam.QueryTag(s, tag)
	if err != nil || !found {
		return "", false
	}
	switch v := query.(type) {
	case string:
		return v, true
	case rune:
		return string(v), true
	default:
		return fmt.Sprint(v), true
	}
}

// textTag finds tag in tab separated TAG:TYPE:VALUE fields.
func textTag(extra string, tag string) (string, bool) {
	var field string
	for len(extra) > 0 {
		field, extra, _ = strings.Cut(extra, "\t")
		if len(field) >= 5 && field[:2] == tag && field[2] == ':' && field[4] == ':' {
			return field[5:], true
		}
	}
	return "", false
}
