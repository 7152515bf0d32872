package treasure

import (
	"fmt"
	"math"
)

// Item is one generated gem, piece of jewelry or magic item.
type Item struct {
	Description string // e.g. "Ruby (5000 gp)"
	Trace       string // the rolls that produced it
}

type gemType struct {
	Name string
	Base int // value in gp
}

var gemBands = bandTable[gemType]{
	{1, 12, gemType{"Agate", 10}},
	{13, 22, gemType{"Turquoise", 10}},
	{23, 32, gemType{"Malachite", 10}},
	{33, 42, gemType{"Bloodstone", 50}},
	{43, 52, gemType{"Carnelian", 50}},
	{53, 62, gemType{"Onyx", 50}},
	{63, 69, gemType{"Amber", 100}},
	{70, 76, gemType{"Jade", 100}},
	{77, 82, gemType{"Pearl", 100}},
	{83, 87, gemType{"Garnet", 500}},
	{88, 92, gemType{"Topaz", 500}},
	{93, 96, gemType{"Emerald", 1000}},
	{97, 98, gemType{"Sapphire", 1000}},
	{99, 100, gemType{"Ruby", 5000}},
}

// gemMultiplier maps a 2d6 value-adjustment roll to a multiplier of the base value.
func gemMultiplier(sum int) float64 {
	switch sum {
	case 2:
		return 0.25
	case 3:
		return 0.5
	case 4:
		return 0.75
	case 10:
		return 1.5
	case 11:
		return 2
	case 12:
		return 4
	default:
		return 1
	}
}

// GenerateGem rolls a gem type on 1d100 and adjusts its value with 2d6.
//
// Postcondition: Description is "<gem> (<value> gp)" with value ==
// round(base × multiplier) > 0.
func GenerateGem(r Roller) (Item, error) {
	roll, err := percentile(r)
	if err != nil {
		return Item{}, err
	}
	gem, err := gemBands.lookup(roll)
	if err != nil {
		return Item{}, err
	}
	adj, err := r.RollExpr("2d6")
	if err != nil {
		return Item{}, err
	}
	mult := gemMultiplier(adj.Total)
	value := int(math.Round(float64(gem.Base) * mult))
	return Item{
		Description: fmt.Sprintf("%s (%d gp)", gem.Name, value),
		Trace:       fmt.Sprintf("gem: 1d100=%d %s %d gp, 2d6=%d ×%g = %d gp", roll, gem.Name, gem.Base, adj.Total, mult, value),
	}, nil
}
