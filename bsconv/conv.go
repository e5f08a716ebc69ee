package bsconv

import (
	"errors"
	"fmt"
	"github.com/dasnellings/bisulfiteTools/output"
	"github.com/dasnellings/bisulfiteTools/refcache"
	"github.com/dasnellings/bisulfiteTools/report"
	"github.com/dasnellings/bisulfiteTools/sink"
	"github.com/vertgenlab/gonomics/exception"
	"io"
	"log"
)

// Options for a conversion run.
type Options struct {
	Input     string    // sam or bam, "stdin" is accepted for sam
	Output    string    // "", "-", or "stdout" for sam text on standard output
	Reference string    // indexed fasta
	Region    string    // optional, chr, chr:start, or chr:start-end
	Writer    io.Writer // receives sam text or lines instead of Output when set
	Config
	Summary  bool   // log run totals and a CpH retention histogram
	PlotFile string // optional CpH retention histogram image
	Verbose  int
}

// Conv processes every read of o.Input and writes the kept reads (annotated mode)
// or their counts (tabular mode) to o.Output. A reader of o.Output going away
// ends the run early without error.
func Conv(o Options) (*report.Stats, error) {
	ref, err := refcache.New(o.Reference)
	if err != nil {
		return nil, err
	}
	defer cleanup(ref)

	reads, err := openReader(o.Input, o.Region)
	if err != nil {
		return nil, err
	}
	defer cleanupReader(reads)
	header := reads.header
	for _, c := range header.Chroms {
		if !ref.Has(c.Name) {
			log.Printf("WARNING: contig %s in %s is not in %s. Mapped reads on it will fail.", c.Name, o.Input, o.Reference)
		}
	}

	if o.Thresholds.Active() {
		log.Printf("Filtering reads with %s (invert: %t)", o.Thresholds, o.Invert)
	}

	var out *sink.Sink
	if o.Writer != nil {
		out = sink.NewWriter(o.Writer, header, o.Tabular)
	} else {
		out = sink.New(o.Output, header, o.Tabular)
	}

	p := NewProcessor(o.Config, ref)
	stats := new(report.Stats)
	var res Result
	for read, ok := reads.next(); ok; read, ok = reads.next() {
		res, err = p.Process(&read)
		if err != nil {
			return stats, errors.Join(err, finish(out, nil))
		}

		switch res.Outcome {
		case PassThrough:
			stats.PassThrough()
		default:
			stats.Add(res.Counts, res.Outcome == Suppressed)
		}
		if o.Verbose > 0 {
			log.Printf("%s\t%s\t%s\t%s", read.QName, res.Outcome, res.Strand, output.Annotation(res.Counts))
		}

		if res.Outcome == Suppressed || (res.Outcome == PassThrough && o.Tabular) {
			continue
		}
		if o.Tabular {
			err = out.WriteLine(output.Tabular(res.Counts, read.QName))
		} else {
			err = out.WriteRecord(read)
		}
		if err != nil {
			// the remaining input is left unread
			return stats, finish(out, err)
		}
	}

	err = finish(out, nil)
	if err != nil {
		return stats, err
	}

	if o.Summary {
		log.Printf("Run summary:\n%s", stats.Summary())
		if hist := stats.ASCII(); hist != "" {
			log.Printf("\n%s", hist)
		}
	}
	if o.PlotFile != "" {
		err = stats.Plot(o.PlotFile)
		if err != nil {
			log.Printf("WARNING: could not plot CpH retention: %s", err)
		}
	}
	return stats, nil
}

// finish closes out and returns the write error that ended the run, if any.
// A broken pipe is not an error.
func finish(out *sink.Sink, writeErr error) error {
	err := out.Close()
	if writeErr != nil {
		err = writeErr
	}
	if sink.IsBrokenPipe(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func cleanup(ref *refcache.Cache) {
	err := ref.Close()
	exception.PanicOnErr(err)
}
