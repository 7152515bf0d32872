package treasure

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stage is a step of treasure assembly. Stages run strictly in order.
type stage int

const (
	stageSelectCategory stage = iota
	stageSelectSubtype
	stageGenerateCurrencies
	stageGenerateGemsAndJewelry
	stageGenerateMagicItems
	stageDone
)

func (s stage) String() string {
	switch s {
	case stageSelectCategory:
		return "SelectCategory"
	case stageSelectSubtype:
		return "SelectSubtype"
	case stageGenerateCurrencies:
		return "GenerateCurrencies"
	case stageGenerateGemsAndJewelry:
		return "GenerateGemsAndJewelry"
	case stageGenerateMagicItems:
		return "GenerateMagicItems"
	case stageDone:
		return "Done"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// assembly is the working state of one Generate call.
type assembly struct {
	category Category
	subtype  string
	config   Config
	result   Result
}

func (a *assembly) trace(line string) {
	if line != "" {
		a.result.Breakdown = append(a.result.Breakdown, line)
	}
}

// Generator assembles treasure from Tables using a Roller.
//
// Generator holds no mutable state and is safe for concurrent use when its
// Roller is.
type Generator struct {
	roller Roller
	tables *Tables
	logger *zap.Logger
	newID  func() string
}

// NewGenerator creates a Generator.
//
// Precondition: roller, tables and logger must be non-nil; tables must have
// passed Validate.
func NewGenerator(roller Roller, tables *Tables, logger *zap.Logger) *Generator {
	if roller == nil || tables == nil || logger == nil {
		panic("treasure: NewGenerator precondition violated: roller, tables and logger must be non-nil")
	}
	return &Generator{
		roller: roller,
		tables: tables,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// Tables returns the tables g draws from.
func (g *Generator) Tables() *Tables {
	return g.tables
}

// Generate assembles one treasure of the given category and subtype. Subtypes
// are letters for Lair and Individual and levels "1".."8" for Unguarded.
//
// Postcondition: Returns a fully populated Result, or an error and no partial
// result. Unknown category or subtype yields an *UnknownTreasureTypeError.
func (g *Generator) Generate(category Category, subtype string) (Result, error) {
	a := &assembly{category: category, subtype: subtype}
	for st := stageSelectCategory; st != stageDone; st++ {
		if err := g.run(st, a); err != nil {
			g.logger.Debug("treasure generation failed",
				zap.Stringer("stage", st),
				zap.Stringer("category", category),
				zap.String("subtype", subtype),
				zap.Error(err),
			)
			return Result{}, err
		}
	}

	r := a.result
	g.logger.Debug("treasure generated",
		zap.String("id", r.ID),
		zap.Stringer("category", r.Category),
		zap.String("level", r.Level),
		zap.Int("copper", r.Copper),
		zap.Int("silver", r.Silver),
		zap.Int("electrum", r.Electrum),
		zap.Int("gold", r.Gold),
		zap.Int("platinum", r.Platinum),
		zap.Int("gems_and_jewelry", len(r.GemsAndJewelry)),
		zap.Int("magic_items", len(r.MagicItems)),
	)
	return r, nil
}

// GenerateUnguarded is Generate for the unguarded table of a dungeon level.
func (g *Generator) GenerateUnguarded(level int) (Result, error) {
	return g.Generate(CategoryUnguarded, fmt.Sprint(level))
}

func (g *Generator) run(st stage, a *assembly) error {
	switch st {
	case stageSelectCategory:
		return g.selectCategory(a)
	case stageSelectSubtype:
		return g.selectSubtype(a)
	case stageGenerateCurrencies:
		return g.generateCurrencies(a)
	case stageGenerateGemsAndJewelry:
		return g.generateGemsAndJewelry(a)
	case stageGenerateMagicItems:
		return g.generateMagicItems(a)
	}
	return fmt.Errorf("treasure: no handler for stage %s", st)
}

func (g *Generator) selectCategory(a *assembly) error {
	if !a.category.valid() {
		return &UnknownTreasureTypeError{Category: a.category.String(), Subtype: a.subtype}
	}
	return nil
}

func (g *Generator) selectSubtype(a *assembly) error {
	key, cfg, err := g.tables.Lookup(a.category, a.subtype)
	if err != nil {
		return err
	}
	a.config = cfg
	a.result = Result{
		ID:          g.newID(),
		Category:    a.category,
		Level:       key,
		Description: describe(a.category, key),
	}
	return nil
}

func describe(c Category, key string) string {
	if c == CategoryUnguarded {
		return fmt.Sprintf("Unguarded Treasure (Level %s)", key)
	}
	return fmt.Sprintf("%s Treasure Type %s", c, key)
}

func (g *Generator) generateCurrencies(a *assembly) error {
	for _, d := range Denominations {
		e := a.config.Coin(d)
		// Individual coins are carried unconditionally unless the table says otherwise.
		mandatory := a.category == CategoryIndividual && e.Chance == nil
		amount, line, err := RollCurrency(g.roller, d, e, mandatory)
		if err != nil {
			return err
		}
		a.result.setCoins(d, amount)
		a.trace(line)
	}
	return nil
}

func (g *Generator) generateGemsAndJewelry(a *assembly) error {
	if err := g.generateItems(a, "gems", a.config.Gems, GenerateGem); err != nil {
		return err
	}
	return g.generateItems(a, "jewelry", a.config.Jewelry, GenerateJewelry)
}

func (g *Generator) generateItems(a *assembly, label string, e Entry, generate func(Roller) (Item, error)) error {
	count, generated, line, err := gatedAmount(g.roller, label, e, false)
	if err != nil {
		return err
	}
	a.trace(line)
	if !generated {
		return nil
	}
	for i := 0; i < count; i++ {
		item, err := generate(g.roller)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		a.result.GemsAndJewelry = append(a.result.GemsAndJewelry, item.Description)
		a.trace(item.Trace)
	}
	return nil
}

func (g *Generator) generateMagicItems(a *assembly) error {
	m := a.config.Magic
	if m.Amount == 0 {
		return nil
	}
	passed, note, err := gate(g.roller, m.Chance)
	if err != nil {
		return err
	}
	if !passed {
		a.trace(fmt.Sprintf("magic: %s: none", note))
		return nil
	}
	count := fmt.Sprintf("%d item", m.Amount)
	if m.Amount != 1 {
		count += "s"
	}
	if note != "" {
		a.trace(fmt.Sprintf("magic: %s: %s", note, count))
	} else {
		a.trace("magic: " + count)
	}
	for i := 0; i < m.Amount; i++ {
		item, err := GenerateMagicItem(g.roller)
		if err != nil {
			return fmt.Errorf("magic: %w", err)
		}
		a.result.MagicItems = append(a.result.MagicItems, item.Description)
		a.trace(item.Trace)
	}
	return nil
}
