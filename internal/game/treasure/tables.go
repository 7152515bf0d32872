package treasure

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/hoard/internal/game/dice"
)

// MaxUnguardedLevel is the deepest dungeon level with an unguarded table.
const MaxUnguardedLevel = 8

//go:embed tables.yaml
var defaultTablesYAML []byte

// Entry gates and sizes one treasure element.
type Entry struct {
	// Chance is the percentile threshold; nil means "always".
	Chance *int `yaml:"chance"`
	// Amount is a dice formula, optionally suffixed with the x10 scale marker.
	// "0" means the element is absent.
	Amount string `yaml:"amount"`
}

// Absent reports whether e can never produce anything.
func (e Entry) Absent() bool {
	return strings.TrimSpace(e.Amount) == "0"
}

// MagicEntry gates a fixed number of magic items.
type MagicEntry struct {
	Chance *int `yaml:"chance"`
	Amount int  `yaml:"amount"`
}

// Config is the declarative table for one treasure type.
type Config struct {
	Copper   Entry      `yaml:"copper"`
	Silver   Entry      `yaml:"silver"`
	Electrum Entry      `yaml:"electrum"`
	Gold     Entry      `yaml:"gold"`
	Platinum Entry      `yaml:"platinum"`
	Gems     Entry      `yaml:"gems"`
	Jewelry  Entry      `yaml:"jewelry"`
	Magic    MagicEntry `yaml:"magic"`
}

// Coin returns the entry for denomination d.
func (c Config) Coin(d Denomination) Entry {
	switch d {
	case Copper:
		return c.Copper
	case Silver:
		return c.Silver
	case Electrum:
		return c.Electrum
	case Gold:
		return c.Gold
	case Platinum:
		return c.Platinum
	}
	return Entry{Amount: "0"}
}

func (c *Config) normalize() {
	for _, e := range []*Entry{&c.Copper, &c.Silver, &c.Electrum, &c.Gold, &c.Platinum, &c.Gems, &c.Jewelry} {
		e.Amount = strings.TrimSpace(e.Amount)
		if e.Amount == "" {
			e.Amount = "0"
		}
	}
}

// Tables holds every treasure table, keyed by category and subtype.
//
// Tables is read-only after loading.
type Tables struct {
	Lair       map[string]Config `yaml:"lair"`
	Individual map[string]Config `yaml:"individual"`
	Unguarded  map[int]Config    `yaml:"unguarded"`
}

// Lookup returns the table for category c and subtype key. Letter keys are
// case-insensitive; unguarded keys are decimal levels.
//
// Postcondition: Returns the normalized key and its Config, or an
// *UnknownTreasureTypeError.
func (t *Tables) Lookup(c Category, subtype string) (string, Config, error) {
	key := strings.ToUpper(strings.TrimSpace(subtype))
	var (
		cfg Config
		ok  bool
	)
	switch c {
	case CategoryLair:
		cfg, ok = t.Lair[key]
	case CategoryIndividual:
		cfg, ok = t.Individual[key]
	case CategoryUnguarded:
		if level, err := strconv.Atoi(key); err == nil {
			cfg, ok = t.Unguarded[level]
			key = strconv.Itoa(level)
		}
	}
	if !ok {
		return "", Config{}, &UnknownTreasureTypeError{Category: c.String(), Subtype: subtype}
	}
	return key, cfg, nil
}

// Subtypes returns the sorted subtype keys available for category c.
func (t *Tables) Subtypes(c Category) []string {
	switch c {
	case CategoryLair:
		return slices.Sorted(maps.Keys(t.Lair))
	case CategoryIndividual:
		return slices.Sorted(maps.Keys(t.Individual))
	case CategoryUnguarded:
		keys := make([]string, 0, len(t.Unguarded))
		for _, level := range slices.Sorted(maps.Keys(t.Unguarded)) {
			keys = append(keys, strconv.Itoa(level))
		}
		return keys
	}
	return nil
}

// Validate checks every table invariant.
//
// Postcondition: Returns nil if every chance is in [0, 100], every amount is a
// valid formula, every magic count is >= 0 and every unguarded level is in
// [1, MaxUnguardedLevel]; otherwise an error describing all violations.
func (t *Tables) Validate() error {
	var errs []string
	for _, key := range slices.Sorted(maps.Keys(t.Lair)) {
		errs = append(errs, validateConfig("lair."+key, t.Lair[key])...)
	}
	for _, key := range slices.Sorted(maps.Keys(t.Individual)) {
		errs = append(errs, validateConfig("individual."+key, t.Individual[key])...)
	}
	for _, level := range slices.Sorted(maps.Keys(t.Unguarded)) {
		name := fmt.Sprintf("unguarded.%d", level)
		if level < 1 || level > MaxUnguardedLevel {
			errs = append(errs, fmt.Sprintf("%s: level must be 1-%d", name, MaxUnguardedLevel))
		}
		errs = append(errs, validateConfig(name, t.Unguarded[level])...)
	}
	if len(t.Lair)+len(t.Individual)+len(t.Unguarded) == 0 {
		errs = append(errs, "tables must define at least one treasure type")
	}
	if len(errs) > 0 {
		return fmt.Errorf("treasure table validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateConfig(name string, c Config) []string {
	var errs []string
	entries := []struct {
		field string
		entry Entry
	}{
		{"copper", c.Copper}, {"silver", c.Silver}, {"electrum", c.Electrum},
		{"gold", c.Gold}, {"platinum", c.Platinum}, {"gems", c.Gems}, {"jewelry", c.Jewelry},
	}
	for _, e := range entries {
		if err := validateChance(e.entry.Chance); err != nil {
			errs = append(errs, fmt.Sprintf("%s.%s: %v", name, e.field, err))
		}
		formula, _ := splitScale(e.entry.Amount)
		if _, err := dice.Parse(formula); err != nil {
			errs = append(errs, fmt.Sprintf("%s.%s: %v", name, e.field, err))
		}
	}
	if err := validateChance(c.Magic.Chance); err != nil {
		errs = append(errs, fmt.Sprintf("%s.magic: %v", name, err))
	}
	if c.Magic.Amount < 0 {
		errs = append(errs, fmt.Sprintf("%s.magic: amount must be >= 0, got %d", name, c.Magic.Amount))
	}
	return errs
}

func validateChance(chance *int) error {
	if chance != nil && (*chance < 0 || *chance > 100) {
		return fmt.Errorf("chance must be 0-100, got %d", *chance)
	}
	return nil
}

// LoadTables parses and validates treasure tables from YAML bytes.
//
// Precondition: data must be YAML with top-level lair, individual and/or
// unguarded mappings.
// Postcondition: Returns validated Tables or a non-nil error.
func LoadTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing treasure tables YAML: %w", err)
	}
	t.Lair = normalizeLetters(t.Lair)
	t.Individual = normalizeLetters(t.Individual)
	for level, cfg := range t.Unguarded {
		cfg.normalize()
		t.Unguarded[level] = cfg
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTablesFromFile reads and validates treasure tables from a YAML file.
//
// Postcondition: Returns validated Tables or a non-nil error.
func LoadTablesFromFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading treasure tables %s: %w", path, err)
	}
	t, err := LoadTables(data)
	if err != nil {
		return nil, fmt.Errorf("loading treasure tables %s: %w", path, err)
	}
	return t, nil
}

// DefaultTables returns the built-in treasure tables.
//
// Postcondition: Returns a fresh, validated copy on every call.
func DefaultTables() (*Tables, error) {
	return LoadTables(defaultTablesYAML)
}

func normalizeLetters(in map[string]Config) map[string]Config {
	out := make(map[string]Config, len(in))
	for key, cfg := range in {
		cfg.normalize()
		out[strings.ToUpper(strings.TrimSpace(key))] = cfg
	}
	return out
}
