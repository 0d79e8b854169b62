package core

import (
	"errors"
	"fmt"
)

// ErrITC is the root of the calculator's error taxonomy. Every error
// returned by this package and the facade wraps it, so callers can match
// the whole family with errors.Is(err, core.ErrITC) or a specific kind
// with its own sentinel.
var ErrITC = errors.New("scuba2-itc")

var (
	ErrUnknownFilter           = fmt.Errorf("%w: unknown filter", ErrITC)
	ErrUnknownMode             = fmt.Errorf("%w: unknown observing mode", ErrITC)
	ErrInvalidOpacity          = fmt.Errorf("%w: invalid opacity", ErrITC)
	ErrInvalidAirmass          = fmt.Errorf("%w: invalid airmass", ErrITC)
	ErrUnobservableDeclination = fmt.Errorf("%w: declination never rises above horizon", ErrITC)
	ErrMissingSamplingFactor   = fmt.Errorf("%w: missing sampling factor", ErrITC)
	ErrInvalidParameter        = fmt.Errorf("%w: invalid parameter", ErrITC)
)
