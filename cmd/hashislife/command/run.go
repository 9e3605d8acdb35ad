package command

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lu4/hashislife/bigint"
	"github.com/lu4/hashislife/clog"
	"github.com/lu4/hashislife/hashlife"
	"github.com/lu4/hashislife/pattern"
)

const (
	keyGenerations = "run.generations"
	keyRule        = "run.rule"
)

func NewRunCmd() *cobra.Command {
	var rows, cols int
	var rowOff, colOff string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Advance a pattern by a number of generations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			load, _ := cmd.Flags().GetString(flagLoad)
			if load == "" && len(args) == 1 {
				load = args[0]
			}
			if load == "" {
				return errors.New("one pattern file must be specified")
			}
			dump, _ := cmd.Flags().GetString(flagDump)
			if dump == "" {
				dump = "-"
			}
			loadf, _ := cmd.Flags().GetString(flagLoadFormat)
			dumpf, _ := cmd.Flags().GetString(flagDumpFormat)

			t, err := parseGenerations(viper.GetString(keyGenerations))
			if err != nil {
				return err
			}
			g, err := loadGrid(load, loadf)
			if err != nil {
				return err
			}
			ruleStr := viper.GetString(keyRule)
			if ruleStr == "" {
				ruleStr = g.Rule
			}
			if ruleStr == "" {
				ruleStr = "B3/S23"
			}
			rule, err := hashlife.ParseRule(ruleStr)
			if err != nil {
				return err
			}

			store := hashlife.NewStore(rule)
			q := store.FromGrid(g)
			res, off := store.Destiny(q, t)
			if clog.V(1) {
				clog.Infof("advanced %v generations; %d canonical nodes", t, store.Len())
			}

			if rows == 0 {
				rows = g.Rows
			}
			if cols == 0 {
				cols = g.Cols
			}
			rmin, err := windowMin(off, rowOff)
			if err != nil {
				return err
			}
			cmin, err := windowMin(off, colOff)
			if err != nil {
				return err
			}
			out := pattern.NewGrid(rows, cols)
			out.Rule = rule.String()
			store.ToGrid(out, 0, 0, rmin, cmin, rows, cols, res)
			return dumpGrid(dump, dumpf, out)
		},
	}
	registerLoadFlags(cmd)
	registerDumpFlags(cmd)
	cmd.Flags().StringP("generations", "g", "1", `generations to advance (decimal, or "2^k")`)
	cmd.Flags().String("rule", "", "override the pattern's rule (B/S notation)")
	cmd.Flags().IntVar(&rows, "rows", 0, "rows of the extracted window (default: input height)")
	cmd.Flags().IntVar(&cols, "cols", 0, "columns of the extracted window (default: input width)")
	cmd.Flags().StringVar(&rowOff, "row", "0", "row of the window's corner in input coordinates")
	cmd.Flags().StringVar(&colOff, "col", "0", "column of the window's corner in input coordinates")
	viper.BindPFlag(keyGenerations, cmd.Flags().Lookup("generations"))
	viper.BindPFlag(keyRule, cmd.Flags().Lookup("rule"))
	return cmd
}

// parseGenerations accepts a decimal count or the "2^k" shorthand for the
// deep skips the engine is built for.
func parseGenerations(s string) (bigint.Int, error) {
	if strings.HasPrefix(s, "2^") {
		e, err := strconv.Atoi(s[2:])
		if err != nil || e < 0 {
			return bigint.Zero(), errors.New("generations: bad exponent in " + s)
		}
		return bigint.PowerOf2(e), nil
	}
	return bigint.FromString(s)
}

// windowMin offsets the destiny translation by a window corner given in
// input-plane coordinates.
func windowMin(off bigint.Int, corner string) (bigint.Int, error) {
	c, err := bigint.FromString(corner)
	if err != nil {
		return bigint.Zero(), err
	}
	return off.Add(c), nil
}
