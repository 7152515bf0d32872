package treasure

import "fmt"

var jewelryCatalogue = []string{
	"Anklet", "Armband", "Belt", "Bracelet", "Brooch", "Buckle", "Chain",
	"Choker", "Circlet", "Clasp", "Comb", "Crown", "Earring", "Goblet",
	"Locket", "Medallion", "Necklace", "Pendant", "Ring", "Scarab",
	"Sceptre", "Tiara",
}

// GenerateJewelry picks a jewelry item uniformly and values it at 2d8 × 100 gp.
//
// Postcondition: Description is "<item> (<value> gp)" with value in [200, 1600].
func GenerateJewelry(r Roller) (Item, error) {
	name, err := pick(r, jewelryCatalogue)
	if err != nil {
		return Item{}, err
	}
	res, err := r.RollExpr("2d8")
	if err != nil {
		return Item{}, err
	}
	value := res.Total * 100
	return Item{
		Description: fmt.Sprintf("%s (%d gp)", name, value),
		Trace:       fmt.Sprintf("jewelry: %s, 2d8=%d ×100 = %d gp", name, res.Total, value),
	}, nil
}
