// Package io provides the value streams that feed and record a fabric.
package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"sync"

	"github.com/ezrec/tis100/cpu"
)

// Tape provides sequential I/O of values.
// Input is read as whitespace separated base-10 integers, and observations
// are written to Output one per line.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	mutex sync.Mutex
	err   error
}

// Values returns an iterator over the integers of the input stream.
// Iteration stops at the end of input, or at the first token that is not
// an int16; Err reports the latter.
func (tc *Tape) Values() iter.Seq[cpu.Value] {
	return func(yield func(value cpu.Value) bool) {
		if tc.Input == nil {
			return
		}

		scanner := bufio.NewScanner(tc.Input)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			word := scanner.Text()
			v64, err := strconv.ParseInt(word, 10, 16)
			if err != nil {
				tc.setErr(ErrTapeValue(word))
				return
			}
			if !yield(cpu.Value(v64)) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			tc.setErr(err)
		}
	}
}

// Record writes a named observation to the output stream.
// It may be called from several goroutines.
func (tc *Tape) Record(name string, value cpu.Value) (err error) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.Output == nil {
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%v %d\n", name, value)
	return
}

// Err returns the first error found while reading the input.
func (tc *Tape) Err() error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	return tc.err
}

func (tc *Tape) setErr(err error) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.err == nil {
		tc.err = err
	}
}
