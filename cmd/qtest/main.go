// qtest is an interactive driver for exercising a squeue.Queue whose
// memory is tracked by a harness.Tracker.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	file := flag.String("f", "", "read commands from `file` instead of stdin")
	verbose := flag.Bool("v", false, "echo commands as they are run")
	fail := flag.Float64("fail", 0, "probability `p` that an allocation fails")
	seed := flag.Uint64("seed", 1, "seed for allocation failures")
	flag.Parse()

	var r io.Reader = os.Stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open command file: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()
		r = f
	}

	in := interp{
		out:     os.Stdout,
		verbose: *verbose,
		seed:    *seed,
	}
	if *fail > 0 {
		in.tr.SetFailRate(*fail, *seed)
	}

	err := in.Run(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read commands: %v\n", err)
	}
	if in.Finish() > 0 || err != nil {
		os.Exit(1)
	}
}
