package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lu4/hashislife/bigint"
)

func NewSelfTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the built-in big integer self-test.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bigint.SelfTest(); err != nil {
				return err
			}
			fmt.Println("bigint self-test passed")
			return nil
		},
	}
}
