package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Program is an assembled, ordered list of instructions.
//
// A Program is never modified once it has been loaded into a Core, so one
// Program may be shared between cores.
type Program struct {
	Instructions []Instruction
	LineNo       []int          // Source line of each instruction, if known.
	Label        map[string]int // Map of jump labels to instruction indexes.
}

// NewProgram creates a program from a list of instructions.
func NewProgram(ins ...Instruction) *Program {
	return &Program{Instructions: ins}
}

// Len returns the number of instructions. A nil program is empty.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}

	return len(prog.Instructions)
}

// At returns the instruction at index pc.
func (prog *Program) At(pc int) (ins Instruction, ok bool) {
	if pc < 0 || pc >= prog.Len() {
		return
	}

	return prog.Instructions[pc], true
}

// Debug returns the source line number of the instruction at pc, or 0.
func (prog *Program) Debug(pc int) (lineno int) {
	if prog == nil || pc < 0 || pc >= len(prog.LineNo) {
		return
	}

	return prog.LineNo[pc]
}

// All iterates over the instructions with their indexes.
func (prog *Program) All() iter.Seq2[int, Instruction] {
	return func(yield func(pc int, ins Instruction) bool) {
		for pc := range prog.Len() {
			if !yield(pc, prog.Instructions[pc]) {
				return
			}
		}
	}
}

// labelAt returns the name to use for a jump target.
func (prog *Program) labelAt(pc int) string {
	name := ""
	for label, index := range prog.Label {
		// Pick the smallest name for a stable listing.
		if index == pc && (name == "" || label < name) {
			name = label
		}
	}
	if name == "" {
		name = fmt.Sprintf("L%d", pc)
	}

	return name
}

// Source returns assembly text that assembles back into the same program.
// Jump targets are written as labels, using the original label names where
// they are known.
func (prog *Program) Source() string {
	targets := map[int]string{}
	for _, ins := range prog.All() {
		if ins.Op.IsJump() {
			targets[ins.Target] = prog.labelAt(ins.Target)
		}
	}

	lines := make([]string, 0, prog.Len())
	for pc, ins := range prog.All() {
		text := ins.String()
		if ins.Op.IsJump() {
			text = fmt.Sprintf("%v %v", ins.Op, targets[ins.Target])
		}
		if label, ok := targets[pc]; ok {
			text = label + ":" + text
		}
		lines = append(lines, text)
	}

	return strings.Join(lines, "\n")
}

// String returns a numbered listing of the program.
func (prog *Program) String() string {
	var text strings.Builder
	for pc, ins := range prog.All() {
		fmt.Fprintf(&text, "%02d: %v\n", pc, ins)
	}

	return text.String()
}
