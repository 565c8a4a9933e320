package emulator

import (
	"errors"
	"strconv"

	"github.com/ezrec/tis100/translate"
)

var f = translate.From

var (
	ErrGridSize   = errors.New(f("grid size invalid"))
	ErrGridSide   = errors.New(f("grid side invalid"))
	ErrLayoutTape = errors.New(f("only one source may read the tape"))
	ErrNodeTwice  = errors.New(f("node declared twice"))
)

// ErrRuntime indicates the core and location of a runtime error.
type ErrRuntime struct {
	Core   string
	Pc     int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("core %v pc %v line %v %v", err.Core, strconv.Itoa(err.Pc), strconv.Itoa(err.LineNo), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrGridPosition is a position outside of the grid.
type ErrGridPosition Position

func (err ErrGridPosition) Error() string {
	return f("position %v outside of grid", Position(err).String())
}

// ErrLayout identifies the layout entry that could not be built.
type ErrLayout struct {
	Entry string
	Err   error
}

func (err *ErrLayout) Error() string {
	return f("%v: %v", err.Entry, err.Err)
}

func (err *ErrLayout) Unwrap() error {
	return err.Err
}

// ErrLayoutSide is an unknown side name.
type ErrLayoutSide string

func (err ErrLayoutSide) Error() string {
	return f("side '%v' invalid", string(err))
}

// ErrValueRange is a value that does not fit in a core register.
type ErrValueRange int64

func (err ErrValueRange) Error() string {
	return f("value %v out of range", strconv.FormatInt(int64(err), 10))
}

// ErrExpr is an expression that does not evaluate to a sequence of integers.
type ErrExpr string

func (err ErrExpr) Error() string {
	return f("$(%v) is not a sequence of integers", string(err))
}
