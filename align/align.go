// Package align walks the cigar of an aligned read, pairing reference
// positions with offsets into the read sequence.
package align

import (
	"errors"
	"fmt"
	"github.com/vertgenlab/gonomics/cigar"
	"github.com/vertgenlab/gonomics/sam"
)

// Kind is how a cigar operation moves the reference and query cursors.
type Kind byte

const (
	MatchOrMismatch Kind = iota // consumes reference and query
	Insertion                   // consumes query
	Deletion                    // consumes reference
	Clip                        // consumes query, soft and hard clips alike
)

// ErrUnsupportedOperation is returned for cigar operations that cannot be interpreted.
var ErrUnsupportedOperation = errors.New("unsupported cigar operation")

// KindOf classifies a cigar operation.
func KindOf(c cigar.Cigar) (Kind, error) {
	switch c.Op {
	case 'M', '=', 'X':
		return MatchOrMismatch, nil
	case 'I':
		return Insertion, nil
	case 'D':
		return Deletion, nil
	case 'S', 'H':
		return Clip, nil
	default:
		return MatchOrMismatch, fmt.Errorf("%w: '%c'", ErrUnsupportedOperation, c.Op)
	}
}

// Walk calls visit for every aligned position of s, in order. refPos is the
// 1-based reference position and queryPos the 0-based offset into the read.
// An error from visit stops the walk and is returned.
func Walk(s sam.Sam, visit func(refPos, queryPos int) error) error {
	var i int
	var kind Kind
	var err error
	refPos := int(s.Pos)
	queryPos := 0
	for _, c := range s.Cigar {
		kind, err = KindOf(c)
		if err != nil {
			return err
		}
		switch kind {
		case MatchOrMismatch:
			for i = 0; i < c.RunLength; i++ {
				if err = visit(refPos+i, queryPos+i); err != nil {
					return err
				}
			}
			refPos += c.RunLength
			queryPos += c.RunLength
		case Insertion, Clip:
			queryPos += c.RunLength
		case Deletion:
			refPos += c.RunLength
		}
	}
	return nil
}

// RefEnd returns the last reference position (1-based, inclusive) covered by s.
// A read that consumes no reference returns s.Pos - 1.
func RefEnd(s sam.Sam) (int, error) {
	var kind Kind
	var err error
	end := int(s.Pos) - 1
	for _, c := range s.Cigar {
		kind, err = KindOf(c)
		if err != nil {
			return end, err
		}
		if kind == MatchOrMismatch || kind == Deletion {
			end += c.RunLength
		}
	}
	return end, nil
}
