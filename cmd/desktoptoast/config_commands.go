package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"desktoptoast/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "配置工具",
	}

	configCmd.AddCommand(newConfigPathCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigSetHotkeyCommand(ctx))

	return configCmd
}

func newConfigPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "显示配置文件路径",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), ctx.configPath())
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "显示修正后的有效配置",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(ctx.configPath())
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigSetHotkeyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "set-hotkey <combo>",
		Short:   "设置发送测试通知的快捷键",
		Example: "  desktoptoast config set-hotkey ctrl+alt+t",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, key, err := config.ParseHotkey(args[0])
			if err != nil {
				return err
			}
			path := ctx.configPath()
			cfg, err := config.LoadFrom(path)
			if err != nil {
				return err
			}
			cfg.Hotkey = config.Hotkey{Modifiers: mods, Key: key}
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "快捷键已设置为: %s\n", cfg.GetHotkeyString())
			return nil
		},
	}
}
