package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/bisulfiteTools/report"
	"github.com/vertgenlab/gonomics/exception"
)

func summarizeUsage(summarizeFlags *flag.FlagSet) {
	fmt.Print(
		"summarize - summarize retention and conversion from the tabular output of 'bstools conv -b'\n\n" +
			"Usage:\n" +
			"  bstools summarize [options] -i counts.tsv\n\n" +
			"Options:\n")
	summarizeFlags.PrintDefaults()
}

func runSummarize(args []string) {
	var err error
	summarizeFlags := flag.NewFlagSet("summarize", flag.ExitOnError)

	input := summarizeFlags.String("i", "", "Tab separated counts written by 'bstools conv -b'.")
	plotFile := summarizeFlags.String("plot", "", "Write a histogram of per read CpH retention to file.")

	err = summarizeFlags.Parse(args)
	exception.PanicOnErr(err)
	summarizeFlags.Usage = func() { summarizeUsage(summarizeFlags) }

	if *input == "" {
		summarizeFlags.Usage()
		errExit("\nERROR: must specify input (-i)")
	}

	stats, err := report.FromTabular(*input)
	if err != nil {
		errExit("ERROR: " + err.Error())
	}
	fmt.Print(stats.Summary())
	if hist := stats.ASCII(); hist != "" {
		fmt.Println(hist)
	}
	if *plotFile != "" {
		err = stats.Plot(*plotFile)
		if err != nil {
			errExit("ERROR: " + err.Error())
		}
	}
}
