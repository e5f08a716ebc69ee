package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
)

const version string = "0.1.0"
const gonomicsVersion string = "1.0.1-0.20240426183757-e6c6ab634c20"

type subcommand struct {
	name  string
	run   func(args []string)
	blurb string
}

// subcommands lists every command of bstools in the order shown by usage.
var subcommands = []subcommand{
	{"conv", runConv, "count retained and converted cytosines per read, filter incompletely converted reads"},
	{"summarize", runSummarize, "summarize retention from the tabular output of conv"},
}

func usage() {
	fmt.Printf("Program: bstools (tools for bisulfite sequencing data)\n"+
		"Version: %s (gonomics %s)\n\n"+
		"Usage:\tbstools <command> [options]\n\n"+
		"Commands:\n", version, gonomicsVersion)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 5, '\t', tabwriter.AlignRight)
	for _, c := range subcommands {
		fmt.Fprintf(w, "\t%s\t%s\n", c.name, c.blurb)
	}
	w.Flush()
}

func lookup(name string) *subcommand {
	for i := range subcommands {
		if subcommands[i].name == name {
			return &subcommands[i]
		}
	}
	return nil
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit.")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("bstools %s (gonomics %s)\n", version, gonomicsVersion)
		return
	}

	command := lookup(flag.Arg(0))
	if command == nil {
		flag.Usage()
		if flag.NArg() > 0 {
			errExit("\nERROR: unknown command " + flag.Arg(0))
		}
		return
	}
	command.run(flag.Args()[1:])
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
