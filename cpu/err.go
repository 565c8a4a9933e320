package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/tis100/translate"
)

var f = translate.From

var (
	// Core errors
	ErrProgramEmpty  = errors.New(f("program empty"))
	ErrPcInvalid     = errors.New(f("pc out of range"))
	ErrPortConnected = errors.New(f("port already connected"))

	// Instruction execution errors
	ErrOpcodeInvalid = errors.New(f("opcode invalid"))
	ErrSourceInvalid = errors.New(f("source invalid"))
	ErrTargetInvalid = errors.New(f("destination invalid"))

	// Assembler errors
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrLineEmpty          = errors.New(f("line empty"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOperandCount       = errors.New(f("MOV requires a source and a destination"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrDestination string

func (err ErrDestination) Error() string {
	return f("unknown destination '%v'", string(err))
}

// ErrInstruction identifies the instruction that failed to execute.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("bad instruction %v", Instruction(ei).String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
