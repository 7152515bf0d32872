package dice

import (
	"fmt"
	"sort"
	"strings"
)

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: every element of result.Rolls lies in [1, sides] of the part
// that produced it; result.Total is the sum of the signed part subtotals with
// every Scalar applied in order, division flooring toward negative infinity.
func Roll(expr Expression, src Source) (RollResult, error) {
	if src == nil {
		panic("dice: Roll precondition violated: src must be non-nil")
	}
	if len(expr.Terms) == 0 {
		return RollResult{}, invalidf(expr.Raw, "expression has no terms")
	}

	result := RollResult{Formula: expr.Raw}
	total := 0
	for _, t := range expr.Terms {
		part := rollTerm(t, src)
		if part.Negative {
			total -= part.Subtotal
		} else {
			total += part.Subtotal
		}
		result.Rolls = append(result.Rolls, part.Kept...)
		result.Parts = append(result.Parts, part)
	}
	for _, sc := range expr.Scalars {
		switch sc.Op {
		case '*':
			total *= sc.Operand
		case '/':
			total = floorDiv(total, sc.Operand)
		}
	}

	result.Total = total
	result.Breakdown = breakdown(expr, result.Parts, total)
	return result, nil
}

// RollExpr parses formula and rolls it using src in a single call.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a RollResult or an *InvalidFormulaError.
func RollExpr(formula string, src Source) (RollResult, error) {
	e, err := Parse(formula)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src)
}

func rollTerm(t Term, src Source) PartResult {
	part := PartResult{Term: t.String(), Negative: t.Negative}
	if !t.IsDice() {
		part.Subtotal = t.Constant
		return part
	}

	part.Sides = t.Sides
	part.Rolled = make([]int, t.Count)
	for i := range part.Rolled {
		part.Rolled[i] = rollDie(src, t.Sides)
	}

	n := len(part.Rolled)
	switch t.Modifier {
	case ModKeepHighest:
		part.Kept, part.Dropped = selectDice(part.Rolled, t.ModValue, true)
	case ModKeepLowest:
		part.Kept, part.Dropped = selectDice(part.Rolled, t.ModValue, false)
	case ModDropHighest:
		part.Kept, part.Dropped = selectDice(part.Rolled, n-t.ModValue, false)
	case ModDropLowest:
		part.Kept, part.Dropped = selectDice(part.Rolled, n-t.ModValue, true)
	case ModExplode:
		part.Kept = append([]int(nil), part.Rolled...)
		for _, d := range part.Rolled {
			if d != t.Sides {
				continue
			}
			for i := 0; i < t.ModValue; i++ {
				part.Kept = append(part.Kept, rollDie(src, t.Sides))
			}
		}
	case ModReroll:
		part.Kept = append([]int(nil), part.Rolled...)
		for i, d := range part.Kept {
			if d == t.ModValue {
				part.Dropped = append(part.Dropped, d)
				part.Kept[i] = rollDie(src, t.Sides)
			}
		}
	default:
		part.Kept = append([]int(nil), part.Rolled...)
	}

	for _, d := range part.Kept {
		part.Subtotal += d
	}
	return part
}

// selectDice keeps the keep highest (or lowest) dice of rolled. Both returned
// pools preserve roll order; ties are broken by roll order.
//
// Precondition: 0 <= keep <= len(rolled).
// Postcondition: len(kept) == keep; with highest, every kept die >= every dropped die.
func selectDice(rolled []int, keep int, highest bool) (kept, dropped []int) {
	idx := make([]int, len(rolled))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if highest {
			return rolled[idx[a]] > rolled[idx[b]]
		}
		return rolled[idx[a]] < rolled[idx[b]]
	})

	keepSet := make(map[int]bool, keep)
	for _, i := range idx[:keep] {
		keepSet[i] = true
	}
	kept = make([]int, 0, keep)
	for i, d := range rolled {
		if keepSet[i] {
			kept = append(kept, d)
		} else {
			dropped = append(dropped, d)
		}
	}
	return kept, dropped
}

func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func breakdown(expr Expression, parts []PartResult, total int) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(expr.Raw))
	b.WriteString(" → ")
	for i, p := range parts {
		switch {
		case p.Negative && i == 0:
			b.WriteString("-")
		case p.Negative:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		b.WriteString(p.String())
	}
	for _, sc := range expr.Scalars {
		fmt.Fprintf(&b, " %c %d", sc.Op, sc.Operand)
	}
	fmt.Fprintf(&b, " = %d", total)
	return b.String()
}
