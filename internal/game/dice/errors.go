package dice

import (
	"errors"
	"fmt"
)

// ErrInvalidFormula is matched by every *InvalidFormulaError via errors.Is.
var ErrInvalidFormula = errors.New("invalid dice formula")

// InvalidFormulaError reports a formula that cannot be parsed or that names an
// out-of-range dice count, die size or modifier value.
type InvalidFormulaError struct {
	Formula string
	Reason  string
}

// Error implements error.
func (e *InvalidFormulaError) Error() string {
	return fmt.Sprintf("dice: invalid formula %q: %s", e.Formula, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidFormula) succeed.
func (e *InvalidFormulaError) Unwrap() error {
	return ErrInvalidFormula
}

func invalidf(formula, format string, args ...any) *InvalidFormulaError {
	return &InvalidFormulaError{Formula: formula, Reason: fmt.Sprintf(format, args...)}
}
