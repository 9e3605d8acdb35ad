package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lu4/hashislife/clog"
	_ "github.com/lu4/hashislife/clog/glog"
	"github.com/lu4/hashislife/cmd/hashislife/command"

	// Load all supported pattern formats.
	_ "github.com/lu4/hashislife/pattern/cells"
	_ "github.com/lu4/hashislife/pattern/rle"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "hashislife",
		Short:         "An engine for very large, very old Life patterns.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	var quiet bool
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "hide all log output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if quiet {
			clog.SetV(-1)
		}
	}
	rootCmd.AddCommand(
		command.NewConvertCmd(),
		command.NewRunCmd(),
		command.NewSelfTestCmd(),
		command.NewVersionCmd(),
	)
	if err := rootCmd.Execute(); err != nil {
		clog.Errorf("%v", err)
		os.Exit(1)
	}
}
