package main

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"desktoptoast/internal/activation"
	"desktoptoast/internal/clipboard"
	"desktoptoast/internal/notify"
	"desktoptoast/internal/toast"
)

const (
	conversationTag   = "conversation-5"
	conversationGroup = "chat"
)

// sampleToast 示例会话通知，按钮通过参数区分动作
func sampleToast() toast.Notification {
	return toast.Notification{
		Title:     "Andrew sent you a picture",
		Message:   "Check this out, Happy Canyon in Utah!",
		Arguments: "action=viewConversation&conversationId=5",
		Actions: []toast.Action{
			{Label: "Like", Arguments: "action=like&conversationId=5"},
			{Label: "Reply", Arguments: "action=reply&conversationId=5"},
			{Label: "Copy link", Arguments: "action=copy&conversationId=5"},
		},
		Tag:   conversationTag,
		Group: conversationGroup,
	}
}

// demoActivator 处理示例通知的点击
type demoActivator struct {
	clsid   uuid.UUID
	manager *notify.Manager
	clip    clipboard.Clipboard
	log     zerolog.Logger

	mu   sync.Mutex
	seen []activation.Activation
}

func newDemoActivator(clsid uuid.UUID, manager *notify.Manager, clip clipboard.Clipboard, log zerolog.Logger) *demoActivator {
	return &demoActivator{
		clsid:   clsid,
		manager: manager,
		clip:    clip,
		log:     log.With().Str("component", "activator").Logger(),
	}
}

func (d *demoActivator) CLSID() uuid.UUID {
	return d.clsid
}

func (d *demoActivator) OnActivated(ctx context.Context, a activation.Activation) {
	d.mu.Lock()
	d.seen = append(d.seen, a)
	d.mu.Unlock()

	q := a.Query()
	action := q.Get("action")
	d.log.Info().
		Str("action", action).
		Str("conversation", q.Get("conversationId")).
		Str("arguments", a.Arguments).
		Msg("toast activated")

	if ctx.Err() != nil {
		return
	}

	switch action {
	case "like":
		d.followUp(toast.Notification{
			Title:   "Liked",
			Message: "You liked Andrew's picture.",
			Tag:     conversationTag,
			Group:   conversationGroup,
		})
	case "reply":
		text := a.UserInput["tbReply"]
		if text == "" {
			text = q.Get("text")
		}
		d.followUp(toast.Notification{
			Title:   "Reply sent",
			Message: text,
			Tag:     conversationTag,
			Group:   conversationGroup,
		})
	case "copy":
		link := "https://contoso.example/conversations/" + q.Get("conversationId")
		if err := d.clip.SetText(link); err != nil {
			d.log.Warn().Err(err).Msg("copy link")
		}
	case "viewConversation", "":
		// 打开会话窗口，示例里只清理这条通知
		history, err := d.manager.History()
		if err != nil {
			d.log.Warn().Err(err).Msg("history unavailable")
			return
		}
		if err := history.RemoveWithGroup(conversationTag, conversationGroup); err != nil {
			d.log.Warn().Err(err).Msg("remove conversation toast")
		}
	default:
		d.log.Warn().Str("action", action).Msg("unknown action")
	}
}

func (d *demoActivator) followUp(t toast.Notification) {
	notifier, err := d.manager.CreateNotifier()
	if err != nil {
		d.log.Warn().Err(err).Msg("cannot create notifier")
		return
	}
	if err := notifier.Show(t); err != nil {
		d.log.Warn().Err(err).Msg("show follow-up toast")
	}
}

// activations 收到过的激活，按到达顺序
func (d *demoActivator) activations() []activation.Activation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]activation.Activation(nil), d.seen...)
}
