package cpu

import (
	"errors"
	"fmt"
	"log"
)

// Wrap returns x modulo n, always in the range [0, n).
func Wrap(x, n int) int {
	return ((x % n) + n) % n
}

// Core is the simulation context for one programmable node of the fabric.
//
// A Core's registers, program counter and program are only touched by the
// goroutine running its Cycle loop. Cores talk to each other exclusively
// through their ports.
type Core struct {
	Name    string // Name used in verbose logging.
	Verbose bool   // Set to enable verbose logging.

	Acc   Value // Accumulator register.
	Bak   Value // Backup register, only reachable through SWP and SAV.
	Pc    int   // Index of the next instruction to execute.
	Ticks int   // Instructions executed.

	program *Program
	port    [4]Port
}

// NewCore creates a core with zeroed registers and disconnected ports.
func NewCore(prog *Program) (core *Core) {
	core = &Core{
		program: prog,
	}

	return
}

// Load replaces the program. The program counter is left untouched.
//
// Load must not be called while the core's Cycle loop is running.
func (core *Core) Load(prog *Program) {
	core.program = prog
}

// Program returns the loaded program.
func (core *Core) Program() *Program {
	return core.program
}

// Port returns the port facing dir.
func (core *Core) Port(dir Dir) *Port {
	return &core.port[dir]
}

// Bind connects the port of core facing dir with the opposite port of other.
func (core *Core) Bind(dir Dir, other *Core) (err error) {
	err = Connect(&core.port[dir], &other.port[dir.Opposite()])
	if err != nil {
		err = fmt.Errorf("%v %v: %w", core.Name, dir, err)
	}
	return
}

// BindUp connects this core's UP port to other's DOWN port.
func (core *Core) BindUp(other *Core) error {
	return core.Bind(DIR_UP, other)
}

// BindDown connects this core's DOWN port to other's UP port.
func (core *Core) BindDown(other *Core) error {
	return core.Bind(DIR_DOWN, other)
}

// BindLeft connects this core's LEFT port to other's RIGHT port.
func (core *Core) BindLeft(other *Core) error {
	return core.Bind(DIR_LEFT, other)
}

// BindRight connects this core's RIGHT port to other's LEFT port.
func (core *Core) BindRight(other *Core) error {
	return core.Bind(DIR_RIGHT, other)
}

// Inject writes a value out of a port on behalf of an external driver.
func (core *Core) Inject(dir Dir, value Value) {
	core.port[dir].Write(value)
}

// Extract reads a value from a port on behalf of an external driver.
func (core *Core) Extract(dir Dir) Value {
	return core.port[dir].Read()
}

// String returns the current core state as a string.
func (core *Core) String() (text string) {
	text += fmt.Sprintf("% 6s: %v\n", "name", core.Name)
	text += fmt.Sprintf("% 6s: %d\n", "acc", core.Acc)
	text += fmt.Sprintf("% 6s: %d\n", "bak", core.Bak)
	text += fmt.Sprintf("% 6s: %d/%d\n", "pc", core.Pc, core.program.Len())
	for _, dir := range Dirs {
		state := "-"
		if core.port[dir].Connected() {
			state = "connected"
		}
		text += fmt.Sprintf("% 6s: %v\n", dir.String(), state)
	}

	return
}

// Cycle fetches the instruction at the program counter and executes it.
func (core *Core) Cycle() (err error) {
	if core.program.Len() == 0 {
		err = ErrProgramEmpty
		return
	}

	ins, ok := core.program.At(core.Pc)
	if !ok {
		err = ErrPcInvalid
		return
	}

	return core.Execute(ins)
}

// read returns the value of a source, blocking on ports.
func (core *Core) read(src Source) (value Value, err error) {
	switch src.Operand {
	case OPERAND_LITERAL:
		value = src.Literal
	case OPERAND_ACC:
		value = core.Acc
	case OPERAND_NIL:
		value = 0
	case OPERAND_UP, OPERAND_DOWN, OPERAND_LEFT, OPERAND_RIGHT:
		dir, _ := src.Operand.Dir()
		value = core.port[dir].Read()
	default:
		err = ErrSourceInvalid
	}

	return
}

// write stores a value to a destination, blocking on ports.
func (core *Core) write(dst Operand, value Value) (err error) {
	switch dst {
	case OPERAND_ACC:
		core.Acc = value
	case OPERAND_NIL:
		// drop-on-floor
	case OPERAND_UP, OPERAND_DOWN, OPERAND_LEFT, OPERAND_RIGHT:
		dir, _ := dst.Dir()
		core.port[dir].Write(value)
	default:
		err = ErrTargetInvalid
	}

	return
}

// Execute executes a single instruction and advances the program counter.
func (core *Core) Execute(ins Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(ins), err)
		}
	}()

	if core.Verbose {
		log.Printf("%v %02d: %v", core.Name, core.Pc, ins)
	}

	next_pc := core.Pc + 1

	var value Value
	switch ins.Op {
	case OP_NOP:
		// pass
	case OP_MOV:
		value, err = core.read(ins.Src)
		if err != nil {
			return
		}
		err = core.write(ins.Dst, value)
		if err != nil {
			return
		}
	case OP_ADD:
		value, err = core.read(ins.Src)
		if err != nil {
			return
		}
		core.Acc += value
	case OP_SUB:
		value, err = core.read(ins.Src)
		if err != nil {
			return
		}
		core.Acc -= value
	case OP_NEG:
		core.Acc = -core.Acc
	case OP_SWP:
		core.Acc, core.Bak = core.Bak, core.Acc
	case OP_SAV:
		core.Bak = core.Acc
	case OP_JMP:
		next_pc = ins.Target
	case OP_JEZ:
		if core.Acc == 0 {
			next_pc = ins.Target
		}
	case OP_JNZ:
		if core.Acc != 0 {
			next_pc = ins.Target
		}
	case OP_JGZ:
		if core.Acc > 0 {
			next_pc = ins.Target
		}
	case OP_JLZ:
		if core.Acc < 0 {
			next_pc = ins.Target
		}
	case OP_JRO:
		value, err = core.read(ins.Src)
		if err != nil {
			return
		}
		next_pc = core.Pc + int(value)
	default:
		err = ErrOpcodeInvalid
		return
	}

	if size := core.program.Len(); size > 0 {
		next_pc = Wrap(next_pc, size)
	}

	core.Pc = next_pc
	core.Ticks++

	return
}
