package treasure

import (
	"fmt"

	"github.com/cory-johannsen/hoard/internal/game/dice"
)

// Roller evaluates dice formulas. *dice.Roller satisfies it.
type Roller interface {
	RollExpr(formula string) (dice.RollResult, error)
}

// band maps the inclusive percentile range [Low, High] to a value.
type band[T any] struct {
	Low, High int
	Value     T
}

// bandTable is an ordered list of percentile bands.
//
// Invariant (checked by validate): the bands partition [1, 100] in order.
type bandTable[T any] []band[T]

// lookup returns the value of the band containing roll.
func (bt bandTable[T]) lookup(roll int) (T, error) {
	for _, b := range bt {
		if roll >= b.Low && roll <= b.High {
			return b.Value, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("treasure: percentile %d is outside every band", roll)
}

// validate checks that the bands cover 1-100 exactly, without gaps or overlaps.
func (bt bandTable[T]) validate() error {
	next := 1
	for i, b := range bt {
		if b.Low != next {
			return fmt.Errorf("band %d starts at %d, want %d", i, b.Low, next)
		}
		if b.High < b.Low {
			return fmt.Errorf("band %d ends at %d before it starts at %d", i, b.High, b.Low)
		}
		next = b.High + 1
	}
	if next != 101 {
		return fmt.Errorf("bands end at %d, want 100", next-1)
	}
	return nil
}

// percentile rolls 1d100 through r.
func percentile(r Roller) (int, error) {
	res, err := r.RollExpr("1d100")
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

// pick selects an element of list uniformly by rolling 1d<len(list)>.
func pick(r Roller, list []string) (string, error) {
	if len(list) == 0 {
		return "", fmt.Errorf("treasure: cannot pick from an empty catalogue")
	}
	res, err := r.RollExpr(fmt.Sprintf("1d%d", len(list)))
	if err != nil {
		return "", err
	}
	return list[res.Total-1], nil
}
