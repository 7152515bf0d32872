// Package main provides the hoard CLI: dice rolling and treasure generation.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hoard/internal/config"
	"github.com/cory-johannsen/hoard/internal/game/dice"
	"github.com/cory-johannsen/hoard/internal/game/treasure"
	"github.com/cory-johannsen/hoard/internal/observability"
)

// app carries the state shared by every subcommand once the root
// PersistentPreRunE has run.
type app struct {
	configPath string
	seed       int64
	seedSet    bool

	cfg    config.Config
	logger *zap.Logger
	roller *dice.Roller
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "hoard",
		Short:         "hoard - dice roller and treasure generator",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.seedSet = cmd.Flags().Changed("seed")
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to configuration file")
	root.PersistentFlags().Int64Var(&a.seed, "seed", 0, "seed for reproducible rolls (forces the seeded source)")

	root.AddCommand(newRollCmd(a), newTreasureCmd(a), newTablesCmd(a))
	return root
}

// setup loads configuration and builds the logger and roller.
//
// Postcondition: a.cfg, a.logger and a.roller are set, or a non-nil error.
func (a *app) setup(stderr io.Writer) error {
	var overrides map[string]any
	if a.seedSet {
		overrides = map[string]any{
			"dice.source": config.SourceSeeded,
			"dice.seed":   a.seed,
		}
	}
	cfg, err := config.LoadWithOverrides(a.configPath, overrides)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.Logging, stderr)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	a.logger = logger

	src, err := a.source()
	if err != nil {
		return err
	}
	a.roller = dice.NewLoggedRoller(src, logger)
	return nil
}

func (a *app) source() (dice.Source, error) {
	if a.cfg.Dice.Source != config.SourceSeeded {
		return dice.NewCryptoSource(), nil
	}
	seed := a.cfg.Dice.Seed
	if seed == 0 && !a.seedSet {
		s, err := dice.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("generating seed: %w", err)
		}
		seed = s
	}
	a.logger.Info("using seeded dice source", zap.Int64("seed", seed))
	return dice.NewSeededSource(seed), nil
}

func (a *app) tables() (*treasure.Tables, error) {
	if a.cfg.Treasure.TablesFile == "" {
		return treasure.DefaultTables()
	}
	a.logger.Debug("loading treasure tables", zap.String("path", a.cfg.Treasure.TablesFile))
	return treasure.LoadTablesFromFile(a.cfg.Treasure.TablesFile)
}

func newRollCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roll <formula>...",
		Short: "Roll one or more dice formulas",
		Example: "  hoard roll 3d6\n" +
			"  hoard roll 4d6K3 1d20+5 '2d6*1000'",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, formula := range args {
				res, err := a.roller.RollExpr(formula)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, res.Breakdown)
			}
			return nil
		},
	}
}

func newTreasureCmd(a *app) *cobra.Command {
	var (
		count     int
		breakdown bool
	)
	cmd := &cobra.Command{
		Use:   "treasure <category> <subtype>",
		Short: "Generate treasure (categories: lair, individual, unguarded)",
		Example: "  hoard treasure lair A\n" +
			"  hoard treasure individual P --count 5\n" +
			"  hoard treasure unguarded 3 --breakdown",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be >= 1, got %d", count)
			}
			category, err := treasure.ParseCategory(args[0])
			if err != nil {
				return err
			}
			tables, err := a.tables()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("breakdown") {
				breakdown = a.cfg.Treasure.Breakdown
			}

			g := treasure.NewGenerator(a.roller, tables, a.logger)
			format := treasure.FormatResult
			if breakdown {
				format = treasure.FormatResultWithBreakdown
			}
			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				res, err := g.Generate(category, args[1])
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, format(res))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of treasures to generate")
	cmd.Flags().BoolVarP(&breakdown, "breakdown", "b", false, "include the roll trace")
	return cmd
}

func newTablesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect treasure tables",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configured treasure tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.tables()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tables OK: %d lair, %d individual, %d unguarded\n",
				len(tables.Lair), len(tables.Individual), len(tables.Unguarded))
			return nil
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "List the subtypes of every category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.tables()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range []treasure.Category{treasure.CategoryLair, treasure.CategoryIndividual, treasure.CategoryUnguarded} {
				fmt.Fprintf(out, "%s: %s\n", c, strings.Join(tables.Subtypes(c), " "))
			}
			return nil
		},
	})
	return cmd
}
