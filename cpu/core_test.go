package cpu

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCore(t *testing.T) {
	assert := assert.New(t)

	core := NewCore(nil)

	assert.Equal(Value(0), core.Acc)
	assert.Equal(Value(0), core.Bak)
	assert.Equal(0, core.Pc)
	assert.Equal(0, core.Program().Len())
	for _, dir := range Dirs {
		assert.False(core.Port(dir).Connected(), dir.String())
	}
}

func TestCore_Registers(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		ins  Instruction
		acc  Value
		bak  Value
		eAcc Value
		eBak Value
	}){
		{"add_literal", MakeAdd(Literal(16)), 16, 0, 32, 0},
		{"sub_literal", MakeSub(Literal(10)), 16, 0, 6, 0},
		{"add_acc", MakeAdd(From(OPERAND_ACC)), 8, 0, 16, 0},
		{"sub_acc", MakeSub(From(OPERAND_ACC)), 8, 0, 0, 0},
		{"add_nil", MakeAdd(From(OPERAND_NIL)), 16, 0, 16, 0},
		{"add_wrap", MakeAdd(Literal(1)), 32767, 0, -32768, 0},
		{"sub_wrap", MakeSub(Literal(1)), -32768, 0, 32767, 0},
		{"neg", MakeNeg(), 32, 0, -32, 0},
		{"neg_min", MakeNeg(), -32768, 0, -32768, 0},
		{"sav", MakeSav(), 16, 32, 16, 16},
		{"swp", MakeSwp(), 16, 32, 32, 16},
		{"mov_nil", MakeMov(Literal(16), OPERAND_NIL), 5, 7, 5, 7},
		{"mov_acc", MakeMov(Literal(-16), OPERAND_ACC), 5, 7, -16, 7},
		{"nop", MakeNop(), 5, 7, 5, 7},
	}

	for _, entry := range table {
		core := NewCore(NewProgram(entry.ins))
		core.Acc = entry.acc
		core.Bak = entry.bak

		err := core.Cycle()
		assert.NoError(err, entry.name)
		assert.Equal(entry.eAcc, core.Acc, entry.name)
		assert.Equal(entry.eBak, core.Bak, entry.name)
		assert.Equal(0, core.Pc, entry.name)
		assert.Equal(1, core.Ticks, entry.name)
	}
}

func TestCore_NegTwice(t *testing.T) {
	assert := assert.New(t)

	core := NewCore(NewProgram(MakeNeg(), MakeNeg()))
	core.Acc = 1234

	assert.NoError(core.Cycle())
	assert.Equal(Value(-1234), core.Acc)
	assert.NoError(core.Cycle())
	assert.Equal(Value(1234), core.Acc)
}

func TestCore_ConditionalBranch(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op    Op
		acc   Value
		taken bool
	}){
		{OP_JEZ, 0, true},
		{OP_JEZ, 1, false},
		{OP_JNZ, 0, false},
		{OP_JNZ, -1, true},
		{OP_JGZ, 1, true},
		{OP_JGZ, 0, false},
		{OP_JGZ, -1, false},
		{OP_JLZ, -1, true},
		{OP_JLZ, 0, false},
		{OP_JLZ, 1, false},
		{OP_JMP, 0, true},
		{OP_JMP, 5, true},
	}

	for _, entry := range table {
		core := NewCore(NewProgram(MakeJump(entry.op, 2), MakeNop(), MakeNop()))
		core.Acc = entry.acc

		err := core.Cycle()
		assert.NoError(err)
		if entry.taken {
			assert.Equal(2, core.Pc, "%v acc=%v", entry.op, entry.acc)
		} else {
			assert.Equal(1, core.Pc, "%v acc=%v", entry.op, entry.acc)
		}
	}
}

func TestCore_JezSelectsBranchThenNext(t *testing.T) {
	assert := assert.New(t)

	next := MakeMov(Literal(64), OPERAND_ACC)
	branch := MakeMov(Literal(32), OPERAND_ACC)

	core := NewCore(NewProgram(MakeJump(OP_JEZ, 2), next, branch))

	// acc == 0: the branch runs first.
	assert.NoError(core.Cycle())
	assert.NoError(core.Cycle())
	assert.Equal(Value(32), core.Acc)
	assert.Equal(0, core.Pc)

	// acc != 0: falls through to next.
	assert.NoError(core.Cycle())
	assert.Equal(1, core.Pc)
	assert.NoError(core.Cycle())
	assert.Equal(Value(64), core.Acc)
}

func TestCore_JroWraparound(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		pc     int
		offset Value
		expect int
	}){
		{0, 4, 4},
		{4, 4, 8},
		{0, 19, 9},
		{3, 19, 2},
		{0, -19, 1},
		{3, -19, 4},
		{5, 0, 5},
		{9, 1, 0},
		{0, -1, 9},
	}

	for _, entry := range table {
		var ins []Instruction
		for n := range 10 {
			ins = append(ins, MakeMov(Literal(Value(n)), OPERAND_ACC))
		}
		core := NewCore(NewProgram(ins...))
		core.Pc = entry.pc

		err := core.Execute(MakeJro(Literal(entry.offset)))
		assert.NoError(err)
		assert.Equal(entry.expect, core.Pc, "pc=%v offset=%v", entry.pc, entry.offset)

		// The landing instruction loads its own index.
		assert.NoError(core.Cycle())
		assert.Equal(Value(entry.expect), core.Acc)
	}
}

func TestCore_JroAcc(t *testing.T) {
	assert := assert.New(t)

	core := NewCore(NewProgram(MakeJro(From(OPERAND_ACC)), MakeNop(), MakeNop()))
	core.Acc = -1

	assert.NoError(core.Cycle())
	assert.Equal(2, core.Pc)
}

func TestCore_CycleErrors(t *testing.T) {
	assert := assert.New(t)

	core := NewCore(nil)
	err := core.Cycle()
	assert.ErrorIs(err, ErrProgramEmpty)
	assert.Equal(0, core.Ticks)

	core = NewCore(NewProgram(MakeNop(), MakeNop(), MakeNop()))
	core.Pc = 2
	core.Load(NewProgram(MakeNop()))
	assert.Equal(2, core.Pc)
	err = core.Cycle()
	assert.ErrorIs(err, ErrPcInvalid)
}

func TestCore_ExecuteErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		ins  Instruction
		err  error
	}){
		{"op", Instruction{Op: Op(99)}, ErrOpcodeInvalid},
		{"src", MakeAdd(From(Operand(42))), ErrSourceInvalid},
		{"dst", MakeMov(Literal(1), OPERAND_LITERAL), ErrTargetInvalid},
	}

	for _, entry := range table {
		core := NewCore(NewProgram(entry.ins))
		err := core.Cycle()
		assert.ErrorIs(err, entry.err, entry.name)
		assert.ErrorIs(err, ErrInstruction{}, entry.name)

		var ei ErrInstruction
		assert.True(errors.As(err, &ei), entry.name)
		assert.Equal(entry.ins, Instruction(ei), entry.name)
		assert.Equal(0, core.Pc, entry.name)
		assert.Equal(0, core.Ticks, entry.name)
	}
}

func TestCore_LoadKeepsPc(t *testing.T) {
	assert := assert.New(t)

	core := NewCore(NewProgram(MakeNop(), MakeNop(), MakeNop()))
	assert.NoError(core.Cycle())
	assert.Equal(1, core.Pc)

	prog := NewProgram(MakeAdd(Literal(1)), MakeAdd(Literal(2)))
	core.Load(prog)
	assert.Same(prog, core.Program())
	assert.Equal(1, core.Pc)

	assert.NoError(core.Cycle())
	assert.Equal(Value(2), core.Acc)
	assert.Equal(0, core.Pc)
}

func TestCore_BindVertical(t *testing.T) {
	assert := assert.New(t)

	a := NewCore(NewProgram(MakeMov(Literal(16), OPERAND_DOWN)))
	b := NewCore(NewProgram(MakeAdd(From(OPERAND_UP))))

	require.NoError(t, a.BindDown(b))
	assert.True(a.Port(DIR_DOWN).Connected())
	assert.True(b.Port(DIR_UP).Connected())
	assert.False(a.Port(DIR_UP).Connected())

	assert.NoError(a.Cycle())
	assert.NoError(b.Cycle())
	assert.Equal(Value(16), b.Acc)
}

func TestCore_BindHorizontal(t *testing.T) {
	assert := assert.New(t)

	a := NewCore(NewProgram(MakeMov(Literal(16), OPERAND_RIGHT)))
	b := NewCore(NewProgram(MakeAdd(From(OPERAND_LEFT))))

	require.NoError(t, a.BindRight(b))

	assert.NoError(a.Cycle())
	assert.NoError(b.Cycle())
	assert.Equal(Value(16), b.Acc)

	// And back the other way.
	c := NewCore(NewProgram(MakeMov(Literal(-3), OPERAND_UP)))
	d := NewCore(NewProgram(MakeSub(From(OPERAND_DOWN))))
	require.NoError(t, c.BindUp(d))
	assert.NoError(c.Cycle())
	assert.NoError(d.Cycle())
	assert.Equal(Value(3), d.Acc)

	e := NewCore(NewProgram(MakeMov(Literal(7), OPERAND_LEFT)))
	g := NewCore(NewProgram(MakeMov(From(OPERAND_RIGHT), OPERAND_ACC)))
	require.NoError(t, e.BindLeft(g))
	assert.NoError(e.Cycle())
	assert.NoError(g.Cycle())
	assert.Equal(Value(7), g.Acc)
}

func TestCore_BindTwice(t *testing.T) {
	assert := assert.New(t)

	a := NewCore(nil)
	b := NewCore(nil)
	c := NewCore(nil)

	require.NoError(t, a.BindDown(b))

	assert.ErrorIs(a.BindDown(c), ErrPortConnected)
	assert.ErrorIs(c.BindDown(b), ErrPortConnected)
	assert.ErrorIs(b.BindUp(a), ErrPortConnected)

	// The failed binds left c untouched, and a/b still talk to each other.
	assert.False(c.Port(DIR_UP).Connected())
	assert.False(c.Port(DIR_DOWN).Connected())

	a.Inject(DIR_DOWN, 5)
	assert.Equal(Value(5), b.Extract(DIR_UP))

	// b's lower port is still free.
	assert.NoError(c.BindUp(b))
	d := NewCore(nil)
	assert.ErrorIs(d.BindDown(b), ErrPortConnected)
	assert.False(d.Port(DIR_DOWN).Connected())

	b.Inject(DIR_DOWN, -3)
	assert.Equal(Value(-3), c.Extract(DIR_UP))
}

func TestCore_ReadBlocksUntilWrite(t *testing.T) {
	assert := assert.New(t)

	a := NewCore(NewProgram(MakeMov(Literal(16), OPERAND_DOWN)))
	b := NewCore(NewProgram(MakeAdd(From(OPERAND_UP))))
	require.NoError(t, a.BindDown(b))

	done := make(chan error)
	go func() {
		done <- b.Cycle()
	}()

	select {
	case <-done:
		t.Fatal("read completed before any write")
	case <-time.After(20 * time.Millisecond):
	}

	assert.NoError(a.Cycle())

	select {
	case err := <-done:
		assert.NoError(err)
	case <-time.After(time.Second):
		t.Fatal("read never completed")
	}
	assert.Equal(Value(16), b.Acc)
}

func TestCore_DisconnectedBlocksForever(t *testing.T) {
	table := [](struct {
		name string
		ins  Instruction
	}){
		{"read", MakeMov(From(OPERAND_LEFT), OPERAND_ACC)},
		{"write", MakeMov(Literal(1), OPERAND_RIGHT)},
		{"add", MakeAdd(From(OPERAND_UP))},
		{"jro", MakeJro(From(OPERAND_DOWN))},
	}

	for _, entry := range table {
		core := NewCore(NewProgram(entry.ins))

		done := make(chan struct{})
		go func() {
			core.Cycle()
			close(done)
		}()

		select {
		case <-done:
			t.Fatalf("%v: disconnected port did not block", entry.name)
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestCore_String(t *testing.T) {
	assert := assert.New(t)

	a := NewCore(NewProgram(MakeNop()))
	a.Name = "0.1"
	a.Acc = -7
	require.NoError(t, a.BindRight(NewCore(nil)))

	text := a.String()
	assert.Contains(text, "0.1")
	assert.Contains(text, "acc: -7")
	assert.Contains(text, "pc: 0/1")
	assert.Contains(text, "RIGHT: connected")
	assert.Contains(text, "LEFT: -")
}
