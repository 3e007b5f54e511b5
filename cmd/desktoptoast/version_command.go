package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "v1.0.0"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "desktoptoast %s\n", version)
		},
	}
}
