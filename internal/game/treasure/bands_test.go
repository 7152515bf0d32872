package treasure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandTables_PartitionPercentiles(t *testing.T) {
	require.NoError(t, gemBands.validate(), "gem bands")
	require.NoError(t, magicBands.validate(), "magic bands")
	require.NoError(t, weaponEnchantments.validate(), "weapon enchantments")
	require.NoError(t, armorEnchantments.validate(), "armor enchantments")
}

func TestBandTables_EveryPercentileResolves(t *testing.T) {
	for roll := 1; roll <= 100; roll++ {
		_, err := gemBands.lookup(roll)
		assert.NoError(t, err, "gem %d", roll)
		_, err = magicBands.lookup(roll)
		assert.NoError(t, err, "magic %d", roll)
		_, err = weaponEnchantments.lookup(roll)
		assert.NoError(t, err, "weapon %d", roll)
		_, err = armorEnchantments.lookup(roll)
		assert.NoError(t, err, "armor %d", roll)
	}
}

func TestGemBands_FourteenTypes(t *testing.T) {
	assert.Len(t, gemBands, 14)
}

func TestMagicBands_Widths(t *testing.T) {
	want := []struct {
		low, high int
		category  MagicCategory
	}{
		{1, 25, MagicWeapon},
		{26, 70, MagicArmor},
		{71, 79, MagicScroll},
		{80, 86, MagicWandStaffRod},
		{87, 96, MagicMiscellaneous},
		{97, 100, MagicRare},
	}
	require.Len(t, magicBands, len(want))
	for i, w := range want {
		assert.Equal(t, w.low, magicBands[i].Low)
		assert.Equal(t, w.high, magicBands[i].High)
		assert.Equal(t, w.category, magicBands[i].Value)
	}
}

func TestMagicCatalogues_NonEmpty(t *testing.T) {
	for _, c := range []MagicCategory{MagicScroll, MagicWandStaffRod, MagicMiscellaneous, MagicRare} {
		assert.NotEmpty(t, magicCatalogues[c], c.String())
	}
	assert.NotEmpty(t, magicWeapons)
	assert.NotEmpty(t, magicArmor)
	assert.NotEmpty(t, enemies)
	assert.NotEmpty(t, jewelryCatalogue)
}

func TestBandTable_ValidateDetectsGap(t *testing.T) {
	bt := bandTable[string]{{1, 50, "a"}, {52, 100, "b"}}
	assert.Error(t, bt.validate())
}

func TestBandTable_ValidateDetectsOverlap(t *testing.T) {
	bt := bandTable[string]{{1, 50, "a"}, {50, 100, "b"}}
	assert.Error(t, bt.validate())
}

func TestBandTable_ValidateDetectsShortCoverage(t *testing.T) {
	bt := bandTable[string]{{1, 50, "a"}, {51, 99, "b"}}
	assert.Error(t, bt.validate())
}

func TestBandTable_ValidateDetectsInvertedBand(t *testing.T) {
	bt := bandTable[string]{{1, 50, "a"}, {51, 40, "b"}}
	assert.Error(t, bt.validate())
}

func TestBandTable_LookupOutOfRange(t *testing.T) {
	_, err := magicBands.lookup(0)
	assert.Error(t, err)
	_, err = magicBands.lookup(101)
	assert.Error(t, err)
}

func TestGemMultiplier(t *testing.T) {
	want := map[int]float64{2: 0.25, 3: 0.5, 4: 0.75, 5: 1, 6: 1, 7: 1, 8: 1, 9: 1, 10: 1.5, 11: 2, 12: 4}
	for sum, mult := range want {
		assert.Equal(t, mult, gemMultiplier(sum), "2d6 = %d", sum)
	}
}

func TestSplitScale(t *testing.T) {
	f, scale := splitScale("2d6x10")
	assert.Equal(t, "2d6", f)
	assert.Equal(t, 10, scale)

	f, scale = splitScale(" 1d4X10 ")
	assert.Equal(t, "1d4", f)
	assert.Equal(t, 10, scale)

	f, scale = splitScale("1d6*1000")
	assert.Equal(t, "1d6*1000", f)
	assert.Equal(t, 1, scale)
}
