package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"desktoptoast/internal/toast"
)

func newNotifyCommand(ctx *commandContext) *cobra.Command {
	var (
		n       toast.Notification
		actions []string
		sample  bool
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "发送一条通知",
		Example: `  desktoptoast notify --sample
  desktoptoast notify -t "Build finished" -m "All tests passed" --tag build --action "Open=action=open"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			if sample {
				n = sampleToast()
			} else {
				if strings.TrimSpace(n.Title) == "" {
					return fmt.Errorf("--title is required unless --sample is set")
				}
				parsed, err := parseActions(actions)
				if err != nil {
					return err
				}
				n.Actions = parsed
			}

			app, err := ctx.runtime()
			if err != nil {
				return err
			}
			if err := app.register(cmd.Context()); err != nil {
				return err
			}
			notifier, err := app.manager.CreateNotifier()
			if err != nil {
				return err
			}
			if err := notifier.Show(n); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Notification sent")
			return nil
		},
	}

	cmd.Flags().StringVarP(&n.Title, "title", "t", "", "标题")
	cmd.Flags().StringVarP(&n.Message, "message", "m", "", "正文")
	cmd.Flags().StringVar(&n.Icon, "icon", "", "图标路径")
	cmd.Flags().StringVar(&n.Arguments, "arguments", "", "点击通知时传给激活器的参数")
	cmd.Flags().StringVar(&n.Tag, "tag", "", "标签，同标签同分组的通知会被替换")
	cmd.Flags().StringVar(&n.Group, "group", "", "分组")
	cmd.Flags().StringArrayVar(&actions, "action", nil, "按钮，格式为 标签=参数，可重复")
	cmd.Flags().BoolVar(&sample, "sample", false, "发送示例会话通知")

	return cmd
}

// parseActions 解析 "Label=arguments"，参数本身可以包含 =
func parseActions(values []string) ([]toast.Action, error) {
	actions := make([]toast.Action, 0, len(values))
	for _, v := range values {
		label, args, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("invalid --action %q, expected Label=arguments", v)
		}
		actions = append(actions, toast.Action{Label: strings.TrimSpace(label), Arguments: args})
	}
	return actions, nil
}
