package treasure

// Denomination is one of the five coin types.
type Denomination int

const (
	Copper Denomination = iota
	Silver
	Electrum
	Gold
	Platinum
)

// Denominations lists every denomination from lowest to highest value.
var Denominations = []Denomination{Copper, Silver, Electrum, Gold, Platinum}

var denominationInfo = map[Denomination]struct {
	name   string
	abbrev string
	copper int
}{
	Copper:   {"copper", "cp", 1},
	Silver:   {"silver", "sp", 10},
	Electrum: {"electrum", "ep", 50},
	Gold:     {"gold", "gp", 100},
	Platinum: {"platinum", "pp", 500},
}

// String returns the lower-case name, e.g. "gold".
func (d Denomination) String() string {
	return denominationInfo[d].name
}

// Abbrev returns the coin abbreviation, e.g. "gp".
func (d Denomination) Abbrev() string {
	return denominationInfo[d].abbrev
}

// CopperValue returns how many copper pieces one coin of d is worth.
func (d Denomination) CopperValue() int {
	return denominationInfo[d].copper
}

// Result is one fully assembled treasure.
//
// Invariant: every coin field is >= 0; every description is non-empty.
type Result struct {
	ID             string
	Category       Category
	Level          string
	Copper         int
	Silver         int
	Electrum       int
	Gold           int
	Platinum       int
	GemsAndJewelry []string
	MagicItems     []string
	Description    string
	Breakdown      []string
}

// Coins returns the amount of d in r.
func (r Result) Coins(d Denomination) int {
	switch d {
	case Copper:
		return r.Copper
	case Silver:
		return r.Silver
	case Electrum:
		return r.Electrum
	case Gold:
		return r.Gold
	case Platinum:
		return r.Platinum
	}
	return 0
}

func (r *Result) setCoins(d Denomination, amount int) {
	switch d {
	case Copper:
		r.Copper = amount
	case Silver:
		r.Silver = amount
	case Electrum:
		r.Electrum = amount
	case Gold:
		r.Gold = amount
	case Platinum:
		r.Platinum = amount
	}
}

// CoinValueCopper returns the value of every coin in r expressed in copper pieces.
func (r Result) CoinValueCopper() int {
	total := 0
	for _, d := range Denominations {
		total += r.Coins(d) * d.CopperValue()
	}
	return total
}

// IsEmpty reports whether r holds no coins and no items.
func (r Result) IsEmpty() bool {
	return r.CoinValueCopper() == 0 && len(r.GemsAndJewelry) == 0 && len(r.MagicItems) == 0
}
