// Package dice provides the dice-notation expression engine: parsing formulas
// such as "2d6+3", "4d6K3" or "1d6*1000", and rolling them against an
// injected randomness Source with a full audit trail.
package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// RollResult holds the full audit trail for a single formula evaluation.
//
// Postcondition: Total equals the combination of every part's Subtotal by the
// formula's operators; Rolls is the concatenation of every part's Kept pool.
type RollResult struct {
	Formula   string       // original formula string, e.g. "2d6+3"
	Total     int          // final value after all operators
	Rolls     []int        // working-pool dice of every dice part, in formula order
	Parts     []PartResult // per-term detail, in formula order
	Breakdown string       // human-readable trace, e.g. "2d6+3 → 2d6[4 5] + 3 = 12"
}

// String returns the breakdown trace.
func (r RollResult) String() string {
	return r.Breakdown
}

// PartResult is the outcome of a single term of a formula.
type PartResult struct {
	Term     string // canonical term text, e.g. "4d6K3" or "3"
	Negative bool   // term is subtracted in an additive chain
	Sides    int    // die size; 0 for a constant term
	Rolled   []int  // dice as first rolled, before the modifier
	Kept     []int  // working pool after the modifier
	Dropped  []int  // dice removed by keep/drop, or replaced by a reroll
	Subtotal int    // sum of Kept, or the constant value
}

// String renders the part as it appears in a breakdown:
//
//	"3"  "2d6[4 5]"  "4d6K3[6 2 5 1 → 6 2 5]"
func (p PartResult) String() string {
	if p.Sides == 0 {
		return strconv.Itoa(p.Subtotal)
	}
	if sameInts(p.Rolled, p.Kept) {
		return fmt.Sprintf("%s[%s]", p.Term, joinInts(p.Kept))
	}
	return fmt.Sprintf("%s[%s → %s]", p.Term, joinInts(p.Rolled), joinInts(p.Kept))
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
