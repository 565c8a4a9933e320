package emulator

import (
	"math"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/tis100/cpu"
)

// EvalValues evaluates a Starlark expression to a list of values.
func EvalValues(expr string) (values []cpu.Value, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, nil)
	if err != nil {
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrExpr(expr)
		return
	}
	st_iter, ok := st_rc.(starlark.Iterable)
	if !ok {
		err = ErrExpr(expr)
		return
	}

	iter := st_iter.Iterate()
	defer iter.Done()

	values = []cpu.Value{}
	var st_value starlark.Value
	for iter.Next(&st_value) {
		st_int, ok := st_value.(starlark.Int)
		if !ok {
			return nil, ErrExpr(expr)
		}
		st_int64, ok := st_int.Int64()
		if !ok {
			return nil, ErrExpr(expr)
		}
		if st_int64 < math.MinInt16 || st_int64 > math.MaxInt16 {
			return nil, ErrValueRange(st_int64)
		}
		values = append(values, cpu.Value(st_int64))
	}

	return
}
