package emulator

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/tis100/cpu"
	"github.com/ezrec/tis100/internal"
	"github.com/ezrec/tis100/io"
)

// NodeConfig is the program of one grid core.
type NodeConfig struct {
	Row     int    `toml:"row"`
	Col     int    `toml:"col"`
	Program string `toml:"program"`
}

// SourceConfig is a value source outside the grid.
// Values are sent first, then those of Expr. With neither set, the source
// reads the tape.
type SourceConfig struct {
	Name   string `toml:"name"`
	Side   string `toml:"side"`
	Index  int    `toml:"index"`
	Values []int  `toml:"values"`
	Expr   string `toml:"expr"`
	Echo   bool   `toml:"echo"` // Record every value sent to the tape.
}

// SinkConfig is a sink outside the grid.
type SinkConfig struct {
	Name    string `toml:"name"`
	Side    string `toml:"side"`
	Index   int    `toml:"index"`
	Program string `toml:"program"`
	Count   int    `toml:"count"`
}

// Layout describes a grid, its programs, and its sources and sinks.
type Layout struct {
	Rows   int            `toml:"rows"`
	Cols   int            `toml:"cols"`
	Node   []NodeConfig   `toml:"node"`
	Source []SourceConfig `toml:"source"`
	Sink   []SinkConfig   `toml:"sink"`
}

var sideMap = map[string]cpu.Dir{
	"UP":    cpu.DIR_UP,
	"DOWN":  cpu.DIR_DOWN,
	"LEFT":  cpu.DIR_LEFT,
	"RIGHT": cpu.DIR_RIGHT,
}

// ParseSide converts a side name to a direction.
func ParseSide(name string) (side cpu.Dir, err error) {
	side, ok := sideMap[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		err = ErrLayoutSide(name)
	}
	return
}

// LoadLayout reads a TOML layout file.
func LoadLayout(path string) (layout *Layout, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%v: %w", path, err)
			layout = nil
		}
	}()

	layout = &Layout{}
	_, err = toml.DecodeFile(path, layout)

	return
}

// ParseLayout decodes a TOML layout.
func ParseLayout(text string) (layout *Layout, err error) {
	layout = &Layout{}
	_, err = toml.Decode(text, layout)
	if err != nil {
		layout = nil
	}

	return
}

// Programs assembles the program of every node, keyed by grid position.
func (layout *Layout) Programs() (progs map[Position]*cpu.Program, err error) {
	progs = map[Position]*cpu.Program{}
	for _, node := range layout.Node {
		pos := Position{Row: node.Row, Col: node.Col}
		if _, ok := progs[pos]; ok {
			return nil, &ErrLayout{Entry: "node " + pos.String(), Err: ErrNodeTwice}
		}
		prog, err := cpu.Assemble(node.Program)
		if err != nil {
			return nil, &ErrLayout{Entry: "node " + pos.String(), Err: err}
		}
		progs[pos] = prog
	}

	return
}

// sourceValues yields the listed values, then those of the expression.
func sourceValues(config *SourceConfig) (seq iter.Seq[cpu.Value], err error) {
	values := make([]cpu.Value, 0, len(config.Values))
	for _, value := range config.Values {
		if value < math.MinInt16 || value > math.MaxInt16 {
			err = ErrValueRange(value)
			return
		}
		values = append(values, cpu.Value(value))
	}

	var exprValues []cpu.Value
	if len(config.Expr) != 0 {
		exprValues, err = EvalValues(config.Expr)
		if err != nil {
			return
		}
	}

	seq = internal.Concat(slices.Values(values), slices.Values(exprValues))
	return
}

// Build creates an emulator from the layout. Sources without values read
// from tape, and sinks record to tape. tape may be nil if neither is needed.
func (layout *Layout) Build(tape *io.Tape) (emu *Emulator, err error) {
	grid, err := NewGrid(layout.Rows, layout.Cols)
	if err != nil {
		return
	}

	progs, err := layout.Programs()
	if err != nil {
		return
	}
	for pos, prog := range progs {
		err = grid.Load(pos.Row, pos.Col, prog)
		if err != nil {
			return nil, &ErrLayout{Entry: "node " + pos.String(), Err: err}
		}
	}

	emu = NewEmulator(grid)

	tapeUsed := false
	for n, config := range layout.Source {
		name := config.Name
		if len(name) == 0 {
			name = fmt.Sprintf("IN%d", n)
		}
		entry := "source " + name

		side, err := ParseSide(config.Side)
		if err != nil {
			return nil, &ErrLayout{Entry: entry, Err: err}
		}

		var src *Source
		if len(config.Values) == 0 && len(config.Expr) == 0 {
			if tape == nil || tapeUsed {
				return nil, &ErrLayout{Entry: entry, Err: ErrLayoutTape}
			}
			tapeUsed = true
			src, err = emu.AddSource(name, side, config.Index, tape.Values())
			if err == nil {
				src.Err = tape.Err
			}
		} else {
			var values iter.Seq[cpu.Value]
			values, err = sourceValues(&config)
			if err != nil {
				return nil, &ErrLayout{Entry: entry, Err: err}
			}
			src, err = emu.AddSource(name, side, config.Index, values)
		}
		if err != nil {
			return nil, &ErrLayout{Entry: entry, Err: err}
		}

		if config.Echo && tape != nil {
			src.Observe = tape.Record
		}
	}

	for n, config := range layout.Sink {
		name := config.Name
		if len(name) == 0 {
			name = fmt.Sprintf("OUT%d", n)
		}
		entry := "sink " + name

		side, err := ParseSide(config.Side)
		if err != nil {
			return nil, &ErrLayout{Entry: entry, Err: err}
		}

		prog, err := cpu.Assemble(config.Program)
		if err != nil {
			return nil, &ErrLayout{Entry: entry, Err: err}
		}

		sink, err := emu.AddSink(name, side, config.Index, prog)
		if err != nil {
			return nil, &ErrLayout{Entry: entry, Err: err}
		}
		sink.Count = config.Count
		if tape != nil {
			sink.Observe = tape.Record
		}
	}

	return
}
