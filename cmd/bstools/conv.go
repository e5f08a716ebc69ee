package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/bisulfiteTools/bsconv"
	"github.com/dasnellings/bisulfiteTools/filter"
	"github.com/vertgenlab/gonomics/exception"
	"os/signal"
	"syscall"
)

func convUsage(convFlags *flag.FlagSet) {
	fmt.Print(
		"conv - count retained and converted cytosines per read by context and filter reads with incomplete conversion\n" +
			"\tCounts are reported for CpA, CpC, CpG, and CpT. Only non-CpG retention is used for filtering.\n\n" +
			"Usage:\n" +
			"  bstools conv [options] -r reference.fasta -i input.bam > annotated.sam\n" +
			"  bstools conv [options] -r reference.fasta -i input.bam -o annotated.bam -m 3\n" +
			"  bstools conv -b -r reference.fasta -i input.bam -g chr1:1,000,000-2,000,000 > counts.tsv\n\n" +
			"Options:\n")
	convFlags.PrintDefaults()
}

func runConv(args []string) {
	var err error
	convFlags := flag.NewFlagSet("conv", flag.ExitOnError)

	ref := convFlags.String("r", "", "Reference FASTA file used to align -i. Must be indexed (.fai).")
	input := convFlags.String("i", "", "Input SAM or BAM file.")
	output := convFlags.String("o", "stdout", "Output file. Reads are written as SAM to stdout or a .sam file, and as BAM to any other file. With -b, tab separated counts are written.")
	region := convFlags.String("g", "", "Only process reads in region (chr, chr:start, or chr:start-end; 1-based, inclusive). Reads outside the region are skipped while reading the input.")
	maxCpH := convFlags.Int("m", filter.Unset, "Maximum number of retained CpH (CpA + CpC + CpT) per read. Set to -1 for no limit.")
	maxCpA := convFlags.Int("a", filter.Unset, "Maximum number of retained CpA per read. Set to -1 for no limit.")
	maxCpC := convFlags.Int("c", filter.Unset, "Maximum number of retained CpC per read. Set to -1 for no limit.")
	maxCpT := convFlags.Int("t", filter.Unset, "Maximum number of retained CpT per read. Set to -1 for no limit.")
	tabular := convFlags.Bool("b", false, "Output a tab separated line of counts per read instead of annotated reads. Excluded reads are not reported.")
	invert := convFlags.Bool("v", false, "Output the reads that exceed the thresholds instead of the reads that pass.")
	summary := convFlags.Bool("summary", false, "Log a run summary with a histogram of per read CpH retention.")
	plotFile := convFlags.String("plot", "", "Write a histogram of per read CpH retention to file. Format is chosen by extension (e.g. .png, .pdf, .svg).")
	verbose := convFlags.Int("verbose", 0, "Level of verbosity in log. >0 logs the decision for every read.")

	err = convFlags.Parse(args)
	exception.PanicOnErr(err)
	convFlags.Usage = func() { convUsage(convFlags) }

	if *input == "" || *ref == "" {
		convFlags.Usage()
		errExit("\nERROR: must specify reference (-r) and input (-i)")
	}

	// writing to a closed pipe returns EPIPE instead of killing the process
	signal.Ignore(syscall.SIGPIPE)

	_, err = bsconv.Conv(bsconv.Options{
		Input:     *input,
		Output:    *output,
		Reference: *ref,
		Region:    *region,
		Config: bsconv.Config{
			Thresholds: filter.Thresholds{MaxCpH: *maxCpH, MaxCpA: *maxCpA, MaxCpC: *maxCpC, MaxCpT: *maxCpT},
			Invert:     *invert,
			Tabular:    *tabular,
		},
		Summary:  *summary,
		PlotFile: *plotFile,
		Verbose:  *verbose,
	})
	if err != nil {
		errExit("ERROR: " + err.Error())
	}
}
