package cpu

import (
	"fmt"
)

// Value is the only datum stored in registers and carried by ports.
type Value int16

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op,Operand,Dir
const (
	OP_NOP = Op(0)  // NOP
	OP_MOV = Op(1)  // MOV
	OP_SWP = Op(2)  // SWP
	OP_SAV = Op(3)  // SAV
	OP_ADD = Op(4)  // ADD
	OP_SUB = Op(5)  // SUB
	OP_NEG = Op(6)  // NEG
	OP_JMP = Op(7)  // JMP
	OP_JEZ = Op(8)  // JEZ
	OP_JNZ = Op(9)  // JNZ
	OP_JGZ = Op(10) // JGZ
	OP_JLZ = Op(11) // JLZ
	OP_JRO = Op(12) // JRO
)

// IsJump returns true for the absolute jump operations.
func (op Op) IsJump() bool {
	return op >= OP_JMP && op <= OP_JLZ
}

// Operand names a register, a port, or the literal slot of a Source.
type Operand int

const (
	OPERAND_ACC     = Operand(0) // ACC
	OPERAND_NIL     = Operand(1) // NIL
	OPERAND_UP      = Operand(2) // UP
	OPERAND_DOWN    = Operand(3) // DOWN
	OPERAND_LEFT    = Operand(4) // LEFT
	OPERAND_RIGHT   = Operand(5) // RIGHT
	OPERAND_LITERAL = Operand(6) // literal
)

// Dir returns the port direction of a port operand.
func (o Operand) Dir() (dir Dir, ok bool) {
	if o < OPERAND_UP || o > OPERAND_RIGHT {
		return
	}

	return Dir(o - OPERAND_UP), true
}

// Writable returns true if the operand may be used as a MOV destination.
func (o Operand) Writable() bool {
	return o >= OPERAND_ACC && o <= OPERAND_RIGHT
}

// Dir is the direction of one of the four ports of a core.
type Dir int

const (
	DIR_UP    = Dir(0) // UP
	DIR_DOWN  = Dir(1) // DOWN
	DIR_LEFT  = Dir(2) // LEFT
	DIR_RIGHT = Dir(3) // RIGHT
)

// Dirs lists every port direction.
var Dirs = [...]Dir{DIR_UP, DIR_DOWN, DIR_LEFT, DIR_RIGHT}

// Opposite returns the facing direction of a neighbour's port.
func (d Dir) Opposite() Dir {
	return d ^ 1
}

// Operand returns the operand that reads or writes the port.
func (d Dir) Operand() Operand {
	return OPERAND_UP + Operand(d)
}

// Source is a readable operand: a literal, a register or a port.
type Source struct {
	Operand Operand
	Literal Value // Only used by OPERAND_LITERAL.
}

// Literal creates a literal source.
func Literal(value Value) Source {
	return Source{Operand: OPERAND_LITERAL, Literal: value}
}

// From creates a register or port source.
func From(operand Operand) Source {
	return Source{Operand: operand}
}

// String returns the assembly text of the source.
func (src Source) String() string {
	if src.Operand == OPERAND_LITERAL {
		return fmt.Sprintf("%d", src.Literal)
	}

	return src.Operand.String()
}

// Instruction is a single decoded instruction.
//
// Only the fields used by the Op are meaningful:
//   - MOV uses Src and Dst.
//   - ADD, SUB and JRO use Src.
//   - JMP, JEZ, JNZ, JGZ and JLZ use Target, an absolute instruction index.
type Instruction struct {
	Op     Op
	Src    Source
	Dst    Operand
	Target int
}

// MakeNop creates a no-op.
func MakeNop() Instruction {
	return Instruction{Op: OP_NOP}
}

// MakeMov creates a copy from src to dst.
func MakeMov(src Source, dst Operand) Instruction {
	return Instruction{Op: OP_MOV, Src: src, Dst: dst}
}

// MakeAdd creates an add-to-acc instruction.
func MakeAdd(src Source) Instruction {
	return Instruction{Op: OP_ADD, Src: src}
}

// MakeSub creates a subtract-from-acc instruction.
func MakeSub(src Source) Instruction {
	return Instruction{Op: OP_SUB, Src: src}
}

// MakeNeg creates a sign-flip-acc instruction.
func MakeNeg() Instruction {
	return Instruction{Op: OP_NEG}
}

// MakeSwp creates a swap-acc-with-bak instruction.
func MakeSwp() Instruction {
	return Instruction{Op: OP_SWP}
}

// MakeSav creates an overwrite-bak-with-acc instruction.
func MakeSav() Instruction {
	return Instruction{Op: OP_SAV}
}

// MakeJump creates an absolute jump. op must be one of OP_JMP, OP_JEZ,
// OP_JNZ, OP_JGZ or OP_JLZ.
func MakeJump(op Op, target int) Instruction {
	return Instruction{Op: op, Target: target}
}

// MakeJro creates a relative jump by the value of src.
func MakeJro(src Source) Instruction {
	return Instruction{Op: OP_JRO, Src: src}
}

// String returns the assembly language representation of this instruction.
// Jumps show their absolute target index.
func (ins Instruction) String() string {
	switch ins.Op {
	case OP_MOV:
		return fmt.Sprintf("%v %v %v", ins.Op, ins.Src, ins.Dst)
	case OP_ADD, OP_SUB, OP_JRO:
		return fmt.Sprintf("%v %v", ins.Op, ins.Src)
	case OP_JMP, OP_JEZ, OP_JNZ, OP_JGZ, OP_JLZ:
		return fmt.Sprintf("%v %d", ins.Op, ins.Target)
	default:
		return ins.Op.String()
	}
}
