package treasure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/hoard/internal/game/dice"
	"github.com/cory-johannsen/hoard/internal/game/treasure"
)

func defaultGenerator(t testing.TB, roller treasure.Roller) *treasure.Generator {
	t.Helper()
	tables, err := treasure.DefaultTables()
	require.NoError(t, err)
	return treasure.NewGenerator(roller, tables, zap.NewNop())
}

func customGenerator(t testing.TB, roller treasure.Roller, doc string) *treasure.Generator {
	t.Helper()
	tables, err := treasure.LoadTables([]byte(doc))
	require.NoError(t, err)
	return treasure.NewGenerator(roller, tables, zap.NewNop())
}

const lairX = `
lair:
  X:
    gold:  { chance: 50, amount: "1d6*100" }
    gems:  { chance: 50, amount: "1d2" }
    magic: { chance: 50, amount: 1 }
`

func TestGenerate_ScriptedLair(t *testing.T) {
	r, src := scriptedRoller(10, 5, 20, 1, 99, 3, 4, 30, 71, 1)
	g := customGenerator(t, r, lairX)

	res, err := g.Generate(treasure.CategoryLair, "x")
	require.NoError(t, err)

	assert.Equal(t, treasure.CategoryLair, res.Category)
	assert.Equal(t, "X", res.Level)
	assert.Equal(t, "Lair Treasure Type X", res.Description)
	assert.Equal(t, 500, res.Gold)
	assert.Zero(t, res.Copper+res.Silver+res.Electrum+res.Platinum)
	assert.Equal(t, []string{"Ruby (5000 gp)"}, res.GemsAndJewelry)
	assert.Equal(t, []string{"Scroll of 1 Spell"}, res.MagicItems)
	assert.Equal(t, []string{
		"gold: chance 50%, rolled 10: 1d6*100 → 1d6[5] * 100 = 500",
		"gems: chance 50%, rolled 20: 1d2 → 1d2[1] = 1",
		"gem: 1d100=99 Ruby 5000 gp, 2d6=7 ×1 = 5000 gp",
		"magic: chance 50%, rolled 30: 1 item",
		"magic: 1d100=71 Scroll, Scroll of 1 Spell",
	}, res.Breakdown)
	assert.Equal(t, 10, src.Calls())
}

func TestGenerate_ScriptedLairAllGatesFail(t *testing.T) {
	r, src := scriptedRoller(51, 51, 51)
	g := customGenerator(t, r, lairX)

	res, err := g.Generate(treasure.CategoryLair, "X")
	require.NoError(t, err)
	assert.True(t, res.IsEmpty())
	assert.Equal(t, []string{
		"gold: chance 50%, rolled 51: none",
		"gems: chance 50%, rolled 51: none",
		"magic: chance 50%, rolled 51: none",
	}, res.Breakdown)
	assert.Equal(t, 3, src.Calls())
}

func TestGenerate_LairHNeverYieldsCoinsOrGems(t *testing.T) {
	g := defaultGenerator(t, seededRoller(7))
	sawMagic := false
	for i := 0; i < 500; i++ {
		res, err := g.Generate(treasure.CategoryLair, "H")
		require.NoError(t, err)
		assert.Zero(t, res.CoinValueCopper())
		assert.Empty(t, res.GemsAndJewelry)
		n := len(res.MagicItems)
		require.True(t, n == 0 || n == 6, "magic items must be all or nothing, got %d", n)
		sawMagic = sawMagic || n == 6
	}
	assert.True(t, sawMagic, "15%% magic chance never hit in 500 runs")
}

func TestGenerate_IndividualCoinsAreMandatory(t *testing.T) {
	g := defaultGenerator(t, seededRoller(42))
	for i := 0; i < 200; i++ {
		res, err := g.Generate(treasure.CategoryIndividual, "P")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Copper, 3)
		assert.LessOrEqual(t, res.Copper, 24)
		assert.Zero(t, res.Silver+res.Electrum+res.Gold+res.Platinum)
		assert.Empty(t, res.GemsAndJewelry)
		assert.Empty(t, res.MagicItems)
		assert.Equal(t, "Individual Treasure Type P", res.Description)
	}
}

func TestGenerate_IndividualHonoursExplicitChance(t *testing.T) {
	r, src := scriptedRoller(90)
	g := customGenerator(t, r, "individual:\n  W:\n    gold: { chance: 20, amount: \"1d4\" }\n")

	res, err := g.Generate(treasure.CategoryIndividual, "W")
	require.NoError(t, err)
	assert.Zero(t, res.Gold)
	assert.Equal(t, []string{"gold: chance 20%, rolled 90: none"}, res.Breakdown)
	assert.Equal(t, 1, src.Calls())
}

func TestGenerate_UnguardedGoldFrequency(t *testing.T) {
	g := defaultGenerator(t, seededRoller(20240607))
	const runs = 1000
	withGold := 0
	for i := 0; i < runs; i++ {
		res, err := g.GenerateUnguarded(1)
		require.NoError(t, err)
		assert.Equal(t, "Unguarded Treasure (Level 1)", res.Description)
		assert.Zero(t, res.Platinum, "level 1 platinum chance is 0")
		if res.Gold > 0 {
			withGold++
			assert.Zero(t, res.Gold%10)
		}
	}
	assert.InDelta(t, 0.07, float64(withGold)/runs, 0.03)
}

func TestGenerate_UnknownTypes(t *testing.T) {
	g := defaultGenerator(t, seededRoller(1))

	_, err := g.Generate(treasure.CategoryUnknown, "A")
	assert.ErrorIs(t, err, treasure.ErrUnknownTreasureType)

	_, err = g.Generate(treasure.CategoryLair, "Z")
	var typeErr *treasure.UnknownTreasureTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "Lair", typeErr.Category)
	assert.Equal(t, "Z", typeErr.Subtype)

	_, err = g.GenerateUnguarded(9)
	assert.ErrorIs(t, err, treasure.ErrUnknownTreasureType)
}

func TestGenerate_NegativeAmountAbortsWithoutPartialResult(t *testing.T) {
	r, _ := scriptedRoller(1)
	g := customGenerator(t, r, "lair:\n  X:\n    copper: { amount: \"1d6\" }\n    gold: { amount: \"1d4-10\" }\n")

	res, err := g.Generate(treasure.CategoryLair, "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gold")
	assert.Equal(t, treasure.Result{}, res)
}

func TestGenerate_AssignsUniqueIDs(t *testing.T) {
	g := defaultGenerator(t, seededRoller(3))
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		res, err := g.Generate(treasure.CategoryIndividual, "Q")
		require.NoError(t, err)
		require.NotEmpty(t, res.ID)
		assert.False(t, seen[res.ID], "duplicate id %s", res.ID)
		seen[res.ID] = true
	}
}

func TestGenerate_LogsResult(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tables, err := treasure.DefaultTables()
	require.NoError(t, err)
	g := treasure.NewGenerator(seededRoller(5), tables, zap.New(core))

	res, err := g.Generate(treasure.CategoryIndividual, "S")
	require.NoError(t, err)

	entries := logs.FilterMessage("treasure generated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, res.ID, fields["id"])
	assert.Equal(t, "S", fields["level"])
	assert.EqualValues(t, res.Gold, fields["gold"])

	_, err = g.Generate(treasure.CategoryLair, "Z")
	require.Error(t, err)
	failed := logs.FilterMessage("treasure generation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "SelectSubtype", failed[0].ContextMap()["stage"])
}

func TestGenerate_ResultsAreWellFormed_Property(t *testing.T) {
	tables, err := treasure.DefaultTables()
	require.NoError(t, err)
	type target struct {
		category treasure.Category
		subtypes []string
	}
	targets := []target{
		{treasure.CategoryLair, tables.Subtypes(treasure.CategoryLair)},
		{treasure.CategoryIndividual, tables.Subtypes(treasure.CategoryIndividual)},
		{treasure.CategoryUnguarded, tables.Subtypes(treasure.CategoryUnguarded)},
	}

	rapid.Check(t, func(rt *rapid.T) {
		tg := rapid.SampledFrom(targets).Draw(rt, "category")
		subtype := rapid.SampledFrom(tg.subtypes).Draw(rt, "subtype")
		g := treasure.NewGenerator(seededRoller(rapid.Int64().Draw(rt, "seed")), tables, zap.NewNop())

		res, err := g.Generate(tg.category, subtype)
		require.NoError(rt, err)
		assert.Equal(rt, tg.category, res.Category)
		for _, d := range treasure.Denominations {
			assert.GreaterOrEqual(rt, res.Coins(d), 0)
		}
		for _, item := range append(append([]string{}, res.GemsAndJewelry...), res.MagicItems...) {
			assert.NotEmpty(rt, item)
		}
		_, cfg, err := tables.Lookup(tg.category, subtype)
		require.NoError(rt, err)
		n := len(res.MagicItems)
		assert.True(rt, n == 0 || n == cfg.Magic.Amount)
	})
}

func TestNewGenerator_PanicsOnNil(t *testing.T) {
	tables, err := treasure.DefaultTables()
	require.NoError(t, err)
	r := seededRoller(1)

	assert.Panics(t, func() { treasure.NewGenerator(nil, tables, zap.NewNop()) })
	assert.Panics(t, func() { treasure.NewGenerator(r, nil, zap.NewNop()) })
	assert.Panics(t, func() { treasure.NewGenerator(r, tables, nil) })
}

// failingRoller fails every roll, for checking error propagation.
type failingRoller struct{}

func (failingRoller) RollExpr(formula string) (dice.RollResult, error) {
	return dice.RollResult{}, &dice.InvalidFormulaError{Formula: formula, Reason: "no dice"}
}

func TestGenerate_PropagatesRollerErrors(t *testing.T) {
	g := defaultGenerator(t, failingRoller{})
	_, err := g.Generate(treasure.CategoryIndividual, "P")
	assert.ErrorIs(t, err, dice.ErrInvalidFormula)
}
