// Package report summarizes retention and conversion across a run. The
// summary is descriptive only and does not feed back into filtering.
package report

import (
	"fmt"
	"github.com/dasnellings/bisulfiteTools/context"
	"github.com/dasnellings/bisulfiteTools/output"
	"github.com/dasnellings/bisulfiteTools/retention"
	"github.com/guptarohit/asciigraph"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/numbers"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"strings"
)

// DefaultBins is the number of histogram bins over the [0,1] CpH retention range.
const DefaultBins int = 20

// Stats accumulates read outcomes over a run.
type Stats struct {
	Reads         int // every read seen
	PassedThrough int // excluded by flag, never counted
	Suppressed    int
	Emitted       int
	Retained      [context.NumClasses]int // summed over counted reads
	Converted     [context.NumClasses]int

	cphRetention []float64 // per read fraction of informative CpH that was retained
}

// PassThrough records a read that was excluded from counting.
func (s *Stats) PassThrough() {
	s.Reads++
	s.PassedThrough++
}

// Add records a counted read and whether it was suppressed.
func (s *Stats) Add(c retention.Counts, suppressed bool) {
	s.Reads++
	if suppressed {
		s.Suppressed++
	} else {
		s.Emitted++
	}
	for i := range c.Retained {
		s.Retained[i] += c.Retained[i]
		s.Converted[i] += c.Converted[i]
	}
	if n := c.CpHInformative(); n > 0 {
		s.cphRetention = append(s.cphRetention, float64(c.CpH())/float64(n))
	}
}

// Counted returns the number of reads that went through counting.
func (s *Stats) Counted() int {
	return s.Suppressed + s.Emitted
}

// ConversionRate returns the fraction of informative positions in class that were converted.
func (s *Stats) ConversionRate(class context.Class) float64 {
	total := s.Retained[class] + s.Converted[class]
	if total == 0 {
		return 0
	}
	return float64(s.Converted[class]) / float64(total)
}

// Summary renders the run totals.
func (s *Stats) Summary() string {
	ans := new(strings.Builder)
	fmt.Fprintf(ans, "Reads: %d\tPassedThrough: %d\tCounted: %d\tSuppressed: %d\tEmitted: %d\n",
		s.Reads, s.PassedThrough, s.Counted(), s.Suppressed, s.Emitted)
	for _, class := range context.Classes {
		fmt.Fprintf(ans, "%s\tRetained: %d\tConverted: %d\tConversionRate: %.4f\n",
			class, s.Retained[class], s.Converted[class], s.ConversionRate(class))
	}
	if len(s.cphRetention) == 0 {
		ans.WriteString("CpH retention per read: no reads with informative CpH\n")
		return ans.String()
	}
	sorted := make([]float64, len(s.cphRetention))
	copy(sorted, s.cphRetention)
	slices.Sort(sorted)
	fmt.Fprintf(ans, "CpH retention per read: Reads: %d\tMean: %.4f\tStdev: %.4f\tMedian: %.4f\n",
		len(sorted),
		stat.Mean(sorted, nil),
		stat.StdDev(sorted, nil),
		stat.Quantile(0.5, stat.Empirical, sorted, nil))
	return ans.String()
}

// Histogram bins the per read CpH retention fractions into bins equal width bins over [0,1].
func (s *Stats) Histogram(bins int) []float64 {
	ans := make([]float64, bins)
	var i int
	for _, f := range s.cphRetention {
		i = numbers.Min(int(f*float64(bins)), bins-1)
		ans[i]++
	}
	return ans
}

// ASCII draws the CpH retention histogram for the terminal. It is empty when
// no read had informative CpH positions.
func (s *Stats) ASCII() string {
	if len(s.cphRetention) == 0 {
		return ""
	}
	return asciigraph.Plot(s.Histogram(DefaultBins),
		asciigraph.Height(10),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("reads by CpH retention (%d bins over 0-1)", DefaultBins)))
}

// Plot writes a histogram of per read CpH retention to file. The image format
// is chosen by the file extension.
func (s *Stats) Plot(file string) error {
	if len(s.cphRetention) == 0 {
		return fmt.Errorf("no reads with informative CpH positions to plot")
	}
	h, err := plotter.NewHist(plotter.Values(s.cphRetention), DefaultBins)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = "CpH retention"
	p.X.Label.Text = "Fraction of CpH retained"
	p.Y.Label.Text = "Reads"
	p.X.Min = 0
	p.X.Max = 1
	p.Add(h)
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, file)
}

// FromTabular reads the output of tabular mode back into Stats.
func FromTabular(file string) (*Stats, error) {
	in := fileio.EasyOpen(file)
	defer cleanup(in)
	ans := new(Stats)
	var c retention.Counts
	var err error
	var lineNum int
	for line, done := fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		lineNum++
		c, _, err = output.ParseTabular(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", file, lineNum, err)
		}
		ans.Add(c, false)
	}
	return ans, nil
}

func cleanup(f *fileio.EasyReader) {
	err := f.Close()
	exception.PanicOnErr(err)
}
