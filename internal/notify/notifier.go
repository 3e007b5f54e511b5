package notify

import (
	"desktoptoast/internal/toast"
)

// Notifier 投递通知，AUMID 与激活协议在创建时确定
type Notifier struct {
	identity string
	scheme   string
	platform toast.Platform
}

// Identity 通知归属的 AUMID，打包应用为空
func (n *Notifier) Identity() string {
	return n.identity
}

// Show 投递通知
//
// 未打包应用的激活参数会加上 <scheme>: 前缀，点击后由协议处理器
// 以 -ToastActivated 拉起本程序。
func (n *Notifier) Show(t toast.Notification) error {
	t.Arguments = n.launch(t.Arguments)
	if len(t.Actions) > 0 {
		actions := make([]toast.Action, len(t.Actions))
		for i, a := range t.Actions {
			actions[i] = toast.Action{Label: a.Label, Arguments: n.launch(a.Arguments)}
		}
		t.Actions = actions
	}
	return n.platform.Show(n.identity, t)
}

func (n *Notifier) launch(args string) string {
	if n.scheme == "" {
		return args
	}
	return n.scheme + ":" + args
}
