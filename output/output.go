// Package output renders per-read retention and conversion counts, either as
// a tab separated line or as an aux tag on the read.
package output

import (
	"fmt"
	"github.com/dasnellings/bisulfiteTools/context"
	"github.com/dasnellings/bisulfiteTools/retention"
	"github.com/vertgenlab/gonomics/sam"
	"strconv"
	"strings"
)

// Tag is the aux tag holding the conversion summary of an annotated read.
const Tag string = "ZN"

// Tabular renders c as retained and converted counts for CpA, CpC, CpG, CpT in
// that order, followed by the read name. Columns are tab separated.
func Tabular(c retention.Counts, name string) string {
	s := new(strings.Builder)
	for _, class := range context.Classes {
		s.WriteString(strconv.Itoa(c.Retained[class]))
		s.WriteByte('\t')
		s.WriteString(strconv.Itoa(c.Converted[class]))
		s.WriteByte('\t')
	}
	s.WriteString(name)
	return s.String()
}

// ParseTabular reads a line written by Tabular.
func ParseTabular(line string) (retention.Counts, string, error) {
	var ans retention.Counts
	var err error
	fields := strings.SplitN(strings.TrimRight(line, "\r\n"), "\t", 2*context.NumClasses+1)
	if len(fields) != 2*context.NumClasses+1 {
		return ans, "", fmt.Errorf("expected %d columns, found %d: %s", 2*context.NumClasses+1, len(fields), line)
	}
	for i, class := range context.Classes {
		ans.Retained[class], err = strconv.Atoi(fields[2*i])
		if err != nil {
			return ans, "", fmt.Errorf("malformed retained count for %s: %w", class, err)
		}
		ans.Converted[class], err = strconv.Atoi(fields[2*i+1])
		if err != nil {
			return ans, "", fmt.Errorf("malformed converted count for %s: %w", class, err)
		}
	}
	return ans, fields[2*context.NumClasses], nil
}

// Annotation renders c as comma separated groups of the form C<X>_R<retained>C<converted>,
// e.g. CA_R3C1,CC_R0C2,CG_R10C0,CT_R1C0.
func Annotation(c retention.Counts) string {
	s := new(strings.Builder)
	for i, class := range context.Classes {
		if i > 0 {
			s.WriteByte(',')
		}
		fmt.Fprintf(s, "C%c_R%dC%d", class.Byte(), c.Retained[class], c.Converted[class])
	}
	return s.String()
}

// Annotate adds the conversion summary of c to the aux fields of s. Raw bam
// tags are converted to text first so they are kept alongside the new tag.
func Annotate(s *sam.Sam, c retention.Counts) {
	if s.Extra == "" {
		// fails when s has no raw bam tags, leaving nothing to keep
		_ = sam.ParseExtra(s)
	}
	if s.Extra != "" {
		s.Extra += "\t"
	}
	s.Extra += Tag + ":Z:" + Annotation(c)
}
