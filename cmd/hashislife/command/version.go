package command

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lu4/hashislife/version"
)

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Version information.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("hashislife:")
			fmt.Println("  Version:  ", version.Version)
			fmt.Println("  Git hash: ", version.GitHash)
			if version.BuildDate != "" {
				fmt.Println("  Built:    ", version.BuildDate)
			}
			fmt.Println("  Go:       ", runtime.Version())
		},
	}
}
