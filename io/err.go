package io

import (
	"github.com/ezrec/tis100/translate"
)

var f = translate.From

// ErrTapeValue is a tape token that is not a value.
type ErrTapeValue string

func (err ErrTapeValue) Error() string {
	return f("tape: '%v' is not a value", string(err))
}
