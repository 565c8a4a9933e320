// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/ezrec/tis100/emulator"
	"github.com/ezrec/tis100/io"
)

func main() {
	var layoutPath string
	var input string
	var output string
	var timeout time.Duration
	var verbose bool
	var show bool

	flag.StringVar(&layoutPath, "l", "", ".toml layout to run (default: built-in sandbox)")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.DurationVar(&timeout, "t", 0, "Give up after this long (0 to run until done)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&show, "s", false, "Print assembled programs, do not execute")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	layout := emulator.Sandbox()
	if len(layoutPath) != 0 {
		var err error
		layout, err = emulator.LoadLayout(layoutPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	// List the programs only.
	if show {
		progs, err := layout.Programs()
		if err != nil {
			log.Fatalf("%v: %v", layoutPath, err)
		}
		positions := slices.SortedFunc(maps.Keys(progs), func(a, b emulator.Position) int {
			return cmp.Or(cmp.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col))
		})
		for _, pos := range positions {
			fmt.Printf("; %v\n%v", pos, progs[pos])
		}
		return
	}

	tape := &io.Tape{}

	if input == "-" {
		tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		tape.Input = inf
	}

	if output == "-" {
		tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		tape.Output = ouf
	}

	emu, err := layout.Build(tape)
	if err != nil {
		log.Fatalf("%v: %v", layoutPath, err)
	}
	emu.Verbose = verbose

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err = emu.Run(ctx)

	// A bad tape token stops its source, so report it first.
	tapeErr := tape.Err()
	if tapeErr != nil {
		log.Fatalf("%v: %v", input, tapeErr)
	}

	if err != nil {
		if verbose {
			log.Print(emu.String())
		}
		log.Fatal(err)
	}
}
