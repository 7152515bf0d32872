package dice

import "go.uber.org/zap"

// Roller binds a Source to a logger so every evaluation leaves a debug
// record. Treasure generation holds one Roller for the whole assembly.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller panics if src or logger is nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil || logger == nil {
		panic("dice: NewLoggedRoller precondition violated: src and logger must be non-nil")
	}
	return &Roller{src: src, logger: logger}
}

// Roll is the package-level Roll against r's Source. Failed rolls are not
// logged; the caller owns the error.
func (r *Roller) Roll(expr Expression) (RollResult, error) {
	result, err := Roll(expr, r.src)
	if err != nil {
		return RollResult{}, err
	}
	r.logger.Debug("dice roll",
		zap.String("formula", result.Formula),
		zap.Ints("rolls", result.Rolls),
		zap.Int("total", result.Total),
		zap.Int("parts", len(result.Parts)),
	)
	return result, nil
}

// RollExpr parses and rolls formula.
//
// Postcondition: Returns a RollResult or an *InvalidFormulaError.
func (r *Roller) RollExpr(formula string) (RollResult, error) {
	e, err := Parse(formula)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e)
}
