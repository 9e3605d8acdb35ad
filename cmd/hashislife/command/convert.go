package command

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/lu4/hashislife/clog"
)

func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert",
		Aliases: []string{"conv"},
		Short:   "Convert pattern files between supported formats.",
		RunE: func(cmd *cobra.Command, args []string) error {
			load, _ := cmd.Flags().GetString(flagLoad)
			dump, _ := cmd.Flags().GetString(flagDump)
			if load == "" && len(args) > 0 {
				load, args = args[0], args[1:]
			}
			if dump == "" && len(args) > 0 {
				dump, args = args[0], args[1:]
			}
			if load == "" || dump == "" {
				return errors.New("both input and output files must be specified")
			}
			loadf, _ := cmd.Flags().GetString(flagLoadFormat)
			dumpf, _ := cmd.Flags().GetString(flagDumpFormat)
			g, err := loadGrid(load, loadf)
			if err != nil {
				return err
			}
			if clog.V(1) {
				clog.Infof("read %dx%d pattern from %q", g.Rows, g.Cols, load)
			}
			return dumpGrid(dump, dumpf, g)
		},
	}
	registerLoadFlags(cmd)
	registerDumpFlags(cmd)
	return cmd
}
