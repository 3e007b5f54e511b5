package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"desktoptoast/internal/notify"
	"desktoptoast/internal/toast"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "查看或清理已投递的通知",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	historyCmd.AddCommand(newHistoryRemoveCommand(ctx))
	historyCmd.AddCommand(newHistoryRemoveGroupCommand(ctx))

	return historyCmd
}

// withHistory 注册后取得历史对象
func withHistory(cmd *cobra.Command, ctx *commandContext, fn func(*notify.History) error) error {
	defer ctx.close()

	app, err := ctx.runtime()
	if err != nil {
		return err
	}
	if err := app.register(cmd.Context()); err != nil {
		return err
	}
	history, err := app.manager.History()
	if err != nil {
		return err
	}
	return fn(history)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出本应用的通知",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, ctx, func(h *notify.History) error {
				records, err := h.List()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(records)
				}
				if len(records) == 0 {
					fmt.Fprintln(out, "No notifications")
					return nil
				}
				fmt.Fprintln(out, renderRecords(records))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出")
	return cmd
}

func renderRecords(records []toast.Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		delivered := ""
		if !r.Delivered.IsZero() {
			delivered = r.Delivered.Local().Format(time.DateTime)
		}
		rows = append(rows, []string{r.Tag, r.Group, r.Title, r.Message, delivered})
	}
	return renderTable([]string{"Tag", "Group", "Title", "Message", "Delivered"}, rows)
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "删除本应用的全部通知",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, ctx, func(h *notify.History) error {
				if err := h.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
				return nil
			})
		},
	}
}

func newHistoryRemoveCommand(ctx *commandContext) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "remove <tag>",
		Short: "按标签删除一条通知",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, ctx, func(h *notify.History) error {
				var err error
				if cmd.Flags().Changed("group") {
					err = h.RemoveWithGroup(args[0], group)
				} else {
					err = h.Remove(args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "分组")
	return cmd
}

func newHistoryRemoveGroupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-group <group>",
		Short: "删除同一分组的全部通知",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(cmd, ctx, func(h *notify.History) error {
				if err := h.RemoveGroup(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed group %s\n", args[0])
				return nil
			})
		},
	}
}
