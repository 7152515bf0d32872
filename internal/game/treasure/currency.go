package treasure

import (
	"fmt"
	"strings"
)

// scaleMarker is the fixed ×10 post-multiplier suffix used by coin formulas.
const scaleMarker = "x10"

// splitScale strips a trailing x10 marker from formula.
//
// Postcondition: scale is 10 if the marker was present, otherwise 1.
func splitScale(formula string) (rest string, scale int) {
	f := strings.TrimSpace(formula)
	if strings.HasSuffix(strings.ToLower(f), scaleMarker) {
		return strings.TrimSpace(f[:len(f)-len(scaleMarker)]), 10
	}
	return f, 1
}

// gate applies a chance gate. A nil chance always passes; a chance <= 0 fails
// without consuming a roll.
//
// Postcondition: note describes the gate, or is empty for a nil chance.
func gate(r Roller, chance *int) (passed bool, note string, err error) {
	if chance == nil {
		return true, "", nil
	}
	if *chance <= 0 {
		return false, "chance 0%", nil
	}
	roll, err := percentile(r)
	if err != nil {
		return false, "", err
	}
	return roll <= *chance, fmt.Sprintf("chance %d%%, rolled %d", *chance, roll), nil
}

// evaluateAmount rolls an amount formula, honouring the x10 marker.
//
// Postcondition: amount >= 0, or a non-nil error.
func evaluateAmount(r Roller, formula string) (amount int, trace string, err error) {
	f, scale := splitScale(formula)
	res, err := r.RollExpr(f)
	if err != nil {
		return 0, "", fmt.Errorf("rolling amount %q: %w", formula, err)
	}
	amount = res.Total * scale
	trace = res.Breakdown
	if scale != 1 {
		trace = fmt.Sprintf("%s, %s = %d", trace, scaleMarker, amount)
	}
	if amount < 0 {
		return 0, "", fmt.Errorf("treasure: amount %q produced negative value %d", formula, amount)
	}
	return amount, trace, nil
}

// gatedAmount applies e's chance gate (skipped when mandatory) and rolls its
// amount.
//
// Postcondition: generated is false when e is absent or the gate failed; line
// is the breakdown entry, empty only when e is absent.
func gatedAmount(r Roller, label string, e Entry, mandatory bool) (amount int, generated bool, line string, err error) {
	if e.Absent() {
		return 0, false, "", nil
	}
	note := ""
	if !mandatory {
		passed, n, err := gate(r, e.Chance)
		if err != nil {
			return 0, false, "", err
		}
		note = n
		if !passed {
			return 0, false, fmt.Sprintf("%s: %s: none", label, note), nil
		}
	}
	amount, trace, err := evaluateAmount(r, e.Amount)
	if err != nil {
		return 0, false, "", fmt.Errorf("%s: %w", label, err)
	}
	if note != "" {
		return amount, true, fmt.Sprintf("%s: %s: %s", label, note, trace), nil
	}
	return amount, true, fmt.Sprintf("%s: %s", label, trace), nil
}

// RollCurrency generates the amount of denomination d for entry e.
//
// Precondition: e.Amount is "0" or a formula that parses after stripping x10.
// Postcondition: amount >= 0; line is empty only when e is absent.
func RollCurrency(r Roller, d Denomination, e Entry, mandatory bool) (amount int, line string, err error) {
	amount, _, line, err = gatedAmount(r, d.String(), e, mandatory)
	return amount, line, err
}
