// Package treasure generates treasure hoards from declarative, chance-gated
// tables: coins in five denominations, gems, jewelry and magic items.
package treasure

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a treasure generation regime.
type Category int

const (
	CategoryUnknown Category = iota
	// CategoryLair is a monster lair hoard keyed by letter; every element is chance-gated.
	CategoryLair
	// CategoryIndividual is carried treasure keyed by letter; coins are mandatory
	// unless the entry carries an explicit chance.
	CategoryIndividual
	// CategoryUnguarded is dungeon treasure keyed by level 1-8; every element is chance-gated.
	CategoryUnguarded
)

// String returns the display name of c.
func (c Category) String() string {
	switch c {
	case CategoryLair:
		return "Lair"
	case CategoryIndividual:
		return "Individual"
	case CategoryUnguarded:
		return "Unguarded"
	default:
		return "Unknown"
	}
}

func (c Category) valid() bool {
	return c == CategoryLair || c == CategoryIndividual || c == CategoryUnguarded
}

// ParseCategory maps a case-insensitive category name to a Category.
//
// Postcondition: Returns a valid Category or an *UnknownTreasureTypeError.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lair":
		return CategoryLair, nil
	case "individual":
		return CategoryIndividual, nil
	case "unguarded":
		return CategoryUnguarded, nil
	default:
		return CategoryUnknown, &UnknownTreasureTypeError{Category: s}
	}
}

// ErrUnknownTreasureType is matched by every *UnknownTreasureTypeError via errors.Is.
var ErrUnknownTreasureType = errors.New("unknown treasure type")

// UnknownTreasureTypeError reports a category/subtype pair with no table entry.
type UnknownTreasureTypeError struct {
	Category string
	Subtype  string
}

// Error implements error.
func (e *UnknownTreasureTypeError) Error() string {
	if e.Subtype == "" {
		return fmt.Sprintf("treasure: unknown treasure category %q", e.Category)
	}
	return fmt.Sprintf("treasure: unknown treasure type %q for category %s", e.Subtype, e.Category)
}

// Unwrap lets errors.Is(err, ErrUnknownTreasureType) succeed.
func (e *UnknownTreasureTypeError) Unwrap() error {
	return ErrUnknownTreasureType
}
