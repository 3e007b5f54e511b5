package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "写入开始菜单快捷方式与激活器注册表项",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			app, err := ctx.runtime()
			if err != nil {
				return err
			}
			if err := app.register(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !app.manager.MustRegisterWithPlatform() {
				fmt.Fprintln(out, "Running packaged, registration is implicit")
				return nil
			}
			fmt.Fprintf(out, "Registered %s\n", app.cfg.App.Identity)
			fmt.Fprintf(out, "Shortcut:  %s\n", app.manager.ShortcutPath(app.cfg.App.DisplayName))
			fmt.Fprintf(out, "Activator: %s\n", app.activator.CLSID())
			return nil
		},
	}
}
