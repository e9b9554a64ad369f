package valve

import (
	"errors"
	"fmt"

	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
)

// ErrRateUnset is wrapped by [UnsetRateError]. It lets callers test for the
// condition with errors.Is without caring which valve was affected.
var ErrRateUnset = errors.New("flow rate not assigned")

// FormatError reports a record line that does not follow the grammar
//
//	Valve <ID> has flow rate=<N>; tunnel(s) lead(s) to valve(s) <ID>[, <ID>...]
//
// A FormatError aborts the whole parse.
type FormatError struct {
	Line   int    // 1-based line number, 0 when unknown
	Text   string // Offending line as read
	Reason string // Which clause failed and why
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// Code classifies the error for pkg/errors.
func (e *FormatError) Code() pkgerrors.Code { return pkgerrors.ErrCodeInvalidFormat }

// UnsetRateError is returned by [Record.Valve] for a valve that was only
// ever mentioned as a tunnel target and never described by its own line.
type UnsetRateError struct {
	ID string
}

func (e *UnsetRateError) Error() string {
	return fmt.Sprintf("valve %s: %v", e.ID, ErrRateUnset)
}

// Unwrap returns [ErrRateUnset].
func (e *UnsetRateError) Unwrap() error { return ErrRateUnset }

// Code classifies the error for pkg/errors.
func (e *UnsetRateError) Code() pkgerrors.Code { return pkgerrors.ErrCodeInvalidFormat }
