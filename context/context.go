package context

import (
	"errors"
	"github.com/vertgenlab/gonomics/dna"
)

// Class is the dinucleotide context of an informative cytosine, named by the
// base that follows the cytosine on the informative strand.
type Class byte

const (
	FollowedByA Class = iota // CpA
	FollowedByC              // CpC
	FollowedByG              // CpG
	FollowedByT              // CpT
)

// NumClasses is the number of context classes. Count tables are indexed by Class.
const NumClasses = 4

// Classes lists every context class in output order.
var Classes = [NumClasses]Class{FollowedByA, FollowedByC, FollowedByG, FollowedByT}

// ErrInvalidBase is returned when a base needed for classification is not one of A, C, G, T.
var ErrInvalidBase = errors.New("base is not one of A, C, G, T")

// Reference supplies upper-case reference bases by 1-based genomic position.
type Reference interface {
	BaseAt(pos int) (dna.Base, error)
}

// Byte returns the letter of the base following the cytosine.
func (c Class) Byte() byte {
	return "ACGT"[c]
}

// String method for Class enables easy writing with the fmt package.
func (c Class) String() string {
	return "Cp" + string(c.Byte())
}

// FromBase maps the base following an informative cytosine to its context class.
func FromBase(b dna.Base) (Class, error) {
	switch b {
	case dna.A:
		return FollowedByA, nil
	case dna.C:
		return FollowedByC, nil
	case dna.G:
		return FollowedByG, nil
	case dna.T:
		return FollowedByT, nil
	default:
		return FollowedByA, ErrInvalidBase
	}
}

// Classify determines the context class of the reference base at pos. A reference C
// is classified by the base at pos+1. A reference G is a C on the opposite strand, so
// it is classified by the complement of the base at pos-1.
func Classify(ref Reference, pos int, refBase dna.Base) (Class, error) {
	var neighbor dna.Base
	var err error
	switch refBase {
	case dna.C:
		neighbor, err = ref.BaseAt(pos + 1)
	case dna.G:
		neighbor, err = ref.BaseAt(pos - 1)
		neighbor = complement(neighbor)
	default:
		return FollowedByA, ErrInvalidBase
	}
	if err != nil {
		return FollowedByA, err
	}
	return FromBase(neighbor)
}

// complement returns the complement of an upper-case base. Anything that is not
// A, C, G, or T is returned as N.
func complement(b dna.Base) dna.Base {
	switch b {
	case dna.A:
		return dna.T
	case dna.C:
		return dna.G
	case dna.G:
		return dna.C
	case dna.T:
		return dna.A
	default:
		return dna.N
	}
}
