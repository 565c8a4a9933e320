package emulator

import (
	"fmt"
	"iter"

	"github.com/ezrec/tis100/cpu"
)

// Position of a core in a grid.
type Position struct {
	Row int
	Col int
}

func (pos Position) String() string {
	return fmt.Sprintf("%d.%d", pos.Row, pos.Col)
}

// Grid is a rectangle of cores, each bound to its horizontal and vertical
// neighbours.
type Grid struct {
	Rows  int
	Cols  int
	Cores []*cpu.Core // Row major.
}

// NewGrid creates a grid of cores with empty programs.
func NewGrid(rows, cols int) (grid *Grid, err error) {
	if rows <= 0 || cols <= 0 {
		err = ErrGridSize
		return
	}

	grid = &Grid{
		Rows:  rows,
		Cols:  cols,
		Cores: make([]*cpu.Core, rows*cols),
	}

	for pos := range grid.positions() {
		core := cpu.NewCore(nil)
		core.Name = pos.String()
		grid.Cores[pos.Row*cols+pos.Col] = core
	}

	for pos, core := range grid.All() {
		if pos.Col+1 < cols {
			err = core.BindRight(grid.At(pos.Row, pos.Col+1))
			if err != nil {
				return nil, err
			}
		}
		if pos.Row+1 < rows {
			err = core.BindDown(grid.At(pos.Row+1, pos.Col))
			if err != nil {
				return nil, err
			}
		}
	}

	return
}

func (grid *Grid) positions() iter.Seq[Position] {
	return func(yield func(pos Position) bool) {
		for row := range grid.Rows {
			for col := range grid.Cols {
				if !yield(Position{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}

// All iterates over every core of the grid, in row major order.
func (grid *Grid) All() iter.Seq2[Position, *cpu.Core] {
	return func(yield func(pos Position, core *cpu.Core) bool) {
		for pos := range grid.positions() {
			if !yield(pos, grid.At(pos.Row, pos.Col)) {
				return
			}
		}
	}
}

// At returns the core at row and col, or nil if outside the grid.
func (grid *Grid) At(row, col int) *cpu.Core {
	if row < 0 || row >= grid.Rows || col < 0 || col >= grid.Cols {
		return nil
	}

	return grid.Cores[row*grid.Cols+col]
}

// Load loads a program into the core at row and col.
func (grid *Grid) Load(row, col int, prog *cpu.Program) (err error) {
	core := grid.At(row, col)
	if core == nil {
		err = ErrGridPosition(Position{Row: row, Col: col})
		return
	}

	core.Load(prog)
	return
}

// Edge returns the core on the side of the grid at index.
// index counts columns for the UP and DOWN sides, and rows for LEFT and RIGHT.
func (grid *Grid) Edge(side cpu.Dir, index int) (core *cpu.Core, err error) {
	var pos Position
	switch side {
	case cpu.DIR_UP:
		pos = Position{Row: 0, Col: index}
	case cpu.DIR_DOWN:
		pos = Position{Row: grid.Rows - 1, Col: index}
	case cpu.DIR_LEFT:
		pos = Position{Row: index, Col: 0}
	case cpu.DIR_RIGHT:
		pos = Position{Row: index, Col: grid.Cols - 1}
	default:
		err = ErrGridSide
		return
	}

	core = grid.At(pos.Row, pos.Col)
	if core == nil {
		err = ErrGridPosition(pos)
	}

	return
}
