package treasure

import "fmt"

// MagicCategory is the first-roll classification of a magic item.
type MagicCategory int

const (
	MagicWeapon MagicCategory = iota
	MagicArmor
	MagicScroll
	MagicWandStaffRod
	MagicMiscellaneous
	MagicRare
)

// String returns the display name of c.
func (c MagicCategory) String() string {
	switch c {
	case MagicWeapon:
		return "Weapon"
	case MagicArmor:
		return "Armor"
	case MagicScroll:
		return "Scroll"
	case MagicWandStaffRod:
		return "Wand/Staff/Rod"
	case MagicMiscellaneous:
		return "Miscellaneous"
	case MagicRare:
		return "Rare"
	default:
		return "Unknown"
	}
}

var magicBands = bandTable[MagicCategory]{
	{1, 25, MagicWeapon},
	{26, 70, MagicArmor},
	{71, 79, MagicScroll},
	{80, 86, MagicWandStaffRod},
	{87, 96, MagicMiscellaneous},
	{97, 100, MagicRare},
}

// enchantment is a bonus tier; vsEnemy tiers name a foe picked from enemies.
type enchantment struct {
	label   string
	vsEnemy bool
}

var weaponEnchantments = bandTable[enchantment]{
	{1, 40, enchantment{"+1", false}},
	{41, 60, enchantment{"+2", false}},
	{61, 70, enchantment{"+3", false}},
	{71, 85, enchantment{"+1, +3 vs %s", true}},
	{86, 95, enchantment{"+2, +4 vs %s", true}},
	{96, 100, enchantment{"-1, cursed", false}},
}

var armorEnchantments = bandTable[enchantment]{
	{1, 50, enchantment{"+1", false}},
	{51, 75, enchantment{"+2", false}},
	{76, 85, enchantment{"+3", false}},
	{86, 95, enchantment{"+1, +3 vs %s", true}},
	{96, 100, enchantment{"-2, cursed", false}},
}

var enemies = []string{
	"Dragons", "Enchanted Monsters", "Giants", "Lycanthropes",
	"Regenerating Monsters", "Spell-users", "Undead",
}

var magicWeapons = []string{
	"Battle Axe", "Crossbow", "Dagger", "Hand Axe", "Lance", "Long Bow",
	"Mace", "Short Bow", "Short Sword", "Sling", "Spear", "Sword",
	"Two-handed Sword", "War Hammer",
}

var magicArmor = []string{
	"Banded Mail", "Chain Mail", "Leather Armor", "Plate Mail", "Scale Mail",
	"Shield",
}

var magicCatalogues = map[MagicCategory][]string{
	MagicScroll: {
		"Scroll of 1 Spell", "Scroll of 2 Spells", "Scroll of 3 Spells",
		"Scroll of Protection from Lycanthropes", "Scroll of Protection from Magic",
		"Scroll of Protection from Undead", "Cursed Scroll", "Treasure Map",
	},
	MagicWandStaffRod: {
		"Wand of Cold", "Wand of Enemy Detection", "Wand of Fire Balls",
		"Wand of Illusion", "Wand of Lightning Bolts", "Wand of Magic Detection",
		"Wand of Paralyzation", "Staff of Healing", "Staff of Striking",
		"Snake Staff", "Rod of Cancellation",
	},
	MagicMiscellaneous: {
		"Bag of Holding", "Boots of Levitation", "Boots of Speed", "Crystal Ball",
		"Elven Boots", "Elven Cloak", "Gauntlets of Ogre Power", "Helm of Telepathy",
		"Potion of Giant Strength", "Potion of Healing", "Potion of Invisibility",
		"Ring of Invisibility", "Ring of Protection +1", "Ring of Water Walking",
		"Rope of Climbing",
	},
	MagicRare: {
		"Carpet of Flying", "Deck of Many Things", "Girdle of Giant Strength",
		"Helm of Brilliance", "Ring of Regeneration", "Ring of Wishes",
		"Rod of Resurrection", "Sphere of Annihilation", "Staff of Power",
		"Staff of Wizardry",
	},
}

// GenerateMagicItem rolls a magic item category on 1d100. Weapons and armor
// get a uniformly picked base item and a second 1d100 enchantment roll; every
// other category picks uniformly from its catalogue.
//
// Postcondition: Description is non-empty.
func GenerateMagicItem(r Roller) (Item, error) {
	roll, err := percentile(r)
	if err != nil {
		return Item{}, err
	}
	category, err := magicBands.lookup(roll)
	if err != nil {
		return Item{}, err
	}

	switch category {
	case MagicWeapon:
		return enchantedItem(r, roll, category, magicWeapons, weaponEnchantments)
	case MagicArmor:
		return enchantedItem(r, roll, category, magicArmor, armorEnchantments)
	}

	name, err := pick(r, magicCatalogues[category])
	if err != nil {
		return Item{}, err
	}
	return Item{
		Description: name,
		Trace:       fmt.Sprintf("magic: 1d100=%d %s, %s", roll, category, name),
	}, nil
}

func enchantedItem(r Roller, roll int, category MagicCategory, bases []string, tiers bandTable[enchantment]) (Item, error) {
	base, err := pick(r, bases)
	if err != nil {
		return Item{}, err
	}
	tierRoll, err := percentile(r)
	if err != nil {
		return Item{}, err
	}
	tier, err := tiers.lookup(tierRoll)
	if err != nil {
		return Item{}, err
	}
	label := tier.label
	if tier.vsEnemy {
		enemy, err := pick(r, enemies)
		if err != nil {
			return Item{}, err
		}
		label = fmt.Sprintf(tier.label, enemy)
	}
	desc := base + " " + label
	return Item{
		Description: desc,
		Trace:       fmt.Sprintf("magic: 1d100=%d %s, %s, bonus 1d100=%d %s", roll, category, base, tierRoll, label),
	}, nil
}
