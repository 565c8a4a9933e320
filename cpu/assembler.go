package cpu

import (
	"bufio"
	"io"
	"log"
	"maps"
	"strconv"
	"strings"
)

// Assembler is a two pass assembler for core programs.
//
// The first pass records the line index of every `LABEL:` prefix. The second
// pass decodes one instruction per line, resolving jump labels to absolute
// instruction indexes. Since every line yields exactly one instruction, a
// label's line index is also its instruction index.
type Assembler struct {
	Verbose bool           // If set, verbosely logs the assembler actions.
	Label   map[string]int // Map of jump labels to instruction indexes.
}

// srcMap is a map of register and port names to operands.
var srcMap = map[string]Operand{
	"ACC":   OPERAND_ACC,
	"UP":    OPERAND_UP,
	"DOWN":  OPERAND_DOWN,
	"LEFT":  OPERAND_LEFT,
	"RIGHT": OPERAND_RIGHT,
}

// dstMap is a map of writable names to operands.
var dstMap = map[string]Operand{
	"ACC":   OPERAND_ACC,
	"NIL":   OPERAND_NIL,
	"UP":    OPERAND_UP,
	"DOWN":  OPERAND_DOWN,
	"LEFT":  OPERAND_LEFT,
	"RIGHT": OPERAND_RIGHT,
}

// opMap maps mnemonics.
var opMap = map[string]Op{
	"NOP": OP_NOP,
	"MOV": OP_MOV,
	"SWP": OP_SWP,
	"SAV": OP_SAV,
	"ADD": OP_ADD,
	"SUB": OP_SUB,
	"NEG": OP_NEG,
	"JMP": OP_JMP,
	"JEZ": OP_JEZ,
	"JNZ": OP_JNZ,
	"JGZ": OP_JGZ,
	"JLZ": OP_JLZ,
	"JRO": OP_JRO,
}

// Assemble assembles program text.
func Assemble(text string) (*Program, error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(text))
}

// MustAssemble is like Assemble but panics if the text cannot be assembled.
// It is meant for programs fixed at compile time.
func MustAssemble(text string) *Program {
	prog, err := Assemble(text)
	if err != nil {
		panic(err)
	}

	return prog
}

// splitLabel splits a line into its label and its instruction body.
// A line declares a label only when it has exactly one ':'.
func splitLabel(line string) (label string, body string, ok bool) {
	parts := strings.Split(line, ":")
	if len(parts) != 2 {
		return "", line, false
	}

	return strings.TrimSpace(parts[0]), parts[1], true
}

// getSource decodes a source word.
func (asm *Assembler) getSource(word string) (src Source, err error) {
	operand, ok := srcMap[word]
	if ok {
		src = From(operand)
		return
	}

	if word == "NIL" {
		src = Literal(0)
		return
	}

	v64, err := strconv.ParseInt(word, 10, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	src = Literal(Value(v64))
	return
}

// getDest decodes a destination word.
func (asm *Assembler) getDest(word string) (dst Operand, err error) {
	dst, ok := dstMap[word]
	if !ok {
		err = ErrDestination(word)
	}
	return
}

// getTarget resolves a jump label.
func (asm *Assembler) getTarget(word string) (target int, err error) {
	target, ok := asm.Label[word]
	if !ok {
		err = ErrLabelMissing(word)
	}
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	if len(strings.TrimSpace(strings.Join(lines, ""))) == 0 {
		lines = nil
	}

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)

	// Pass 1: labels.
	for index, text := range lines {
		line, lineno = text, index+1
		label, _, ok := splitLabel(text)
		if !ok {
			continue
		}
		if len(label) == 0 {
			err = ErrLabelInvalid
			return
		}
		if _, dup := asm.Label[label]; dup {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = index
	}

	// Pass 2: instructions.
	prog = &Program{
		Instructions: make([]Instruction, 0, len(lines)),
		LineNo:       make([]int, 0, len(lines)),
	}
	for index, text := range lines {
		line, lineno = text, index+1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		var ins Instruction
		ins, err = asm.parseLine(text)
		if err != nil {
			prog = nil
			return
		}

		prog.Instructions = append(prog.Instructions, ins)
		prog.LineNo = append(prog.LineNo, lineno)
	}

	prog.Label = maps.Clone(asm.Label)

	return
}

// parseLine decodes the instruction of a single line.
func (asm *Assembler) parseLine(line string) (ins Instruction, err error) {
	_, body, labeled := splitLabel(line)

	body = strings.TrimSpace(body)
	if len(body) == 0 {
		if labeled {
			err = ErrOpcodeMissing
		} else {
			err = ErrLineEmpty
		}
		return
	}

	if len(body) < 3 {
		err = ErrInstructionInvalid
		return
	}

	op, ok := opMap[body[:3]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	words := strings.Fields(body[3:])

	switch op {
	case OP_NOP, OP_SWP, OP_SAV, OP_NEG:
		if len(words) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		ins = Instruction{Op: op}
	case OP_MOV:
		if len(words) != 2 {
			err = ErrOperandCount
			return
		}
		var src Source
		var dst Operand
		src, err = asm.getSource(words[0])
		if err != nil {
			return
		}
		dst, err = asm.getDest(words[1])
		if err != nil {
			return
		}
		ins = MakeMov(src, dst)
	case OP_ADD, OP_SUB, OP_JRO:
		if len(words) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		var src Source
		src, err = asm.getSource(words[0])
		if err != nil {
			return
		}
		ins = Instruction{Op: op, Src: src}
	case OP_JMP, OP_JEZ, OP_JNZ, OP_JGZ, OP_JLZ:
		if len(words) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		var target int
		target, err = asm.getTarget(words[0])
		if err != nil {
			return
		}
		ins = MakeJump(op, target)
	}

	return
}
