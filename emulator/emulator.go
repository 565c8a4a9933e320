// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/tis100/cpu"
)

// Source feeds values into the grid through a program-less core.
type Source struct {
	Name    string
	Core    *cpu.Core
	Port    cpu.Dir // Port of Core that faces the grid.
	Values  iter.Seq[cpu.Value]
	Observe func(name string, value cpu.Value) error // Optional, called after each value is sent.
	Err     func() error                             // Optional, reports why Values stopped early.
}

// Sink runs its own program against a port facing the grid, and reports
// its acc register after every cycle.
type Sink struct {
	Name    string
	Core    *cpu.Core
	Count   int // If non-zero, the sink stops after this many observations.
	Observe func(name string, value cpu.Value) error
}

// Emulator state. Grid + external sources and sinks.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.
	Grid    *Grid
	Sources []*Source
	Sinks   []*Sink
}

// NewEmulator creates a new emulator around a grid.
func NewEmulator(grid *Grid) (emu *Emulator) {
	emu = &Emulator{
		Grid: grid,
	}

	return
}

// attach binds a new core outside the grid, facing the edge core at index
// of side.
func (emu *Emulator) attach(name string, side cpu.Dir, index int, prog *cpu.Program) (core *cpu.Core, err error) {
	edge, err := emu.Grid.Edge(side, index)
	if err != nil {
		return
	}

	core = cpu.NewCore(prog)
	core.Name = name

	err = core.Bind(side.Opposite(), edge)
	if err != nil {
		core = nil
	}
	return
}

// AddSource attaches a source outside side of the grid, at index.
func (emu *Emulator) AddSource(name string, side cpu.Dir, index int, values iter.Seq[cpu.Value]) (src *Source, err error) {
	core, err := emu.attach(name, side, index, nil)
	if err != nil {
		return
	}

	src = &Source{
		Name:   name,
		Core:   core,
		Port:   side.Opposite(),
		Values: values,
	}
	emu.Sources = append(emu.Sources, src)

	return
}

// AddSink attaches a sink outside side of the grid, at index.
// A nil program defaults to moving the facing port into acc.
func (emu *Emulator) AddSink(name string, side cpu.Dir, index int, prog *cpu.Program) (sink *Sink, err error) {
	if prog.Len() == 0 {
		prog = cpu.NewProgram(cpu.MakeMov(cpu.From(side.Opposite().Operand()), cpu.OPERAND_ACC))
	}

	core, err := emu.attach(name, side, index, prog)
	if err != nil {
		return
	}

	sink = &Sink{
		Name: name,
		Core: core,
	}
	emu.Sinks = append(emu.Sinks, sink)

	return
}

// cycle runs a core until the context is done or a cycle fails.
// after, if set, is called after each cycle and stops the loop by
// returning false.
func (emu *Emulator) cycle(ctx context.Context, core *cpu.Core, after func() (bool, error)) (err error) {
	for ctx.Err() == nil {
		pc := core.Pc
		err = core.Cycle()
		if err != nil {
			err = &ErrRuntime{Core: core.Name, Pc: pc, LineNo: core.Program().Debug(pc), Err: err}
			return
		}
		if after != nil {
			var more bool
			more, err = after()
			if err != nil || !more {
				return
			}
		}
	}

	return
}

// Run starts one goroutine per programmed core, source and sink.
//
// Run returns nil once every sink with a Count has made that many
// observations, or once every goroutine has finished. It returns the first
// failure of any core, or the cause of ctx ending. Loops only notice the
// end of the run between cycles, so goroutines blocked on a port when Run
// returns stay blocked.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	var cores int
	for _, core := range emu.Grid.All() {
		core.Verbose = emu.Verbose
		if core.Program().Len() == 0 {
			// No program: the core never runs, and its ports stay idle.
			continue
		}
		cores++
		eg.Go(func() error {
			return emu.cycle(ctx, core, nil)
		})
	}

	for _, src := range emu.Sources {
		if src.Values == nil {
			continue
		}
		eg.Go(func() error {
			for value := range src.Values {
				if ctx.Err() != nil {
					return nil
				}
				src.Core.Inject(src.Port, value)
				if src.Observe != nil {
					err := src.Observe(src.Name, value)
					if err != nil {
						return err
					}
				}
			}
			if emu.Verbose {
				log.Printf("emulator: source %v done", src.Name)
			}
			if src.Err != nil {
				return src.Err()
			}
			return nil
		})
	}

	var pending sync.WaitGroup
	var counted int
	for _, sink := range emu.Sinks {
		sink.Core.Verbose = emu.Verbose
		if sink.Count > 0 {
			counted++
			pending.Add(1)
		}
		observed := 0
		eg.Go(func() error {
			return emu.cycle(ctx, sink.Core, func() (more bool, err error) {
				value := sink.Core.Acc
				if emu.Verbose {
					log.Printf("emulator: sink %v: %d", sink.Name, value)
				}
				if sink.Observe != nil {
					err = sink.Observe(sink.Name, value)
					if err != nil {
						return
					}
				}
				observed++
				if sink.Count > 0 && observed == sink.Count {
					pending.Done()
					return false, nil
				}
				return true, nil
			})
		})
	}

	if emu.Verbose {
		log.Printf("emulator: running %d cores, %d sources, %d sinks", cores, len(emu.Sources), len(emu.Sinks))
	}

	finished := make(chan error, 1)
	go func() {
		finished <- eg.Wait()
	}()

	var satisfied chan struct{}
	if counted > 0 {
		satisfied = make(chan struct{})
		go func() {
			pending.Wait()
			close(satisfied)
		}()
	}

	select {
	case err = <-finished:
		if err == nil {
			err = context.Cause(parent)
		}
	case <-satisfied:
	case <-ctx.Done():
		err = context.Cause(ctx)
		if parent.Err() == nil && errors.Is(err, context.Canceled) {
			// Every goroutine returned without error.
			err = <-finished
		}
	}

	return
}

// String returns the state of every core.
func (emu *Emulator) String() (text string) {
	for _, src := range emu.Sources {
		text += fmt.Sprintf("source %v\n", src.Name)
	}
	for _, core := range emu.Grid.All() {
		text += core.String()
	}
	for _, sink := range emu.Sinks {
		text += sink.Core.String()
	}

	return
}
