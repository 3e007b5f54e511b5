package tray

import (
	"github.com/getlantern/systray"
)

// Tray 系统托盘
type Tray struct {
	title      string
	hotkeyText string

	onSendTest  func()
	onClear     func()
	onSetHotkey func()
	onQuit      func()
}

// NewTray 创建系统托盘
func NewTray(title string) *Tray {
	return &Tray{
		title:      title,
		hotkeyText: "Ctrl+Alt+T",
	}
}

// SetHotkeyText 设置快捷键显示文本
func (t *Tray) SetHotkeyText(text string) {
	t.hotkeyText = text
}

// SetOnSendTest 设置发送测试通知回调
func (t *Tray) SetOnSendTest(fn func()) {
	t.onSendTest = fn
}

// SetOnClear 设置清除通知历史回调
func (t *Tray) SetOnClear(fn func()) {
	t.onClear = fn
}

// SetOnSetHotkey 设置修改快捷键回调
func (t *Tray) SetOnSetHotkey(fn func()) {
	t.onSetHotkey = fn
}

// SetOnQuit 设置退出回调
func (t *Tray) SetOnQuit(fn func()) {
	t.onQuit = fn
}

// Run 运行系统托盘（阻塞）
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

// Quit 退出托盘循环
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(getIcon())
	systray.SetTitle(t.title)
	systray.SetTooltip(t.title + " - 桌面通知示例")

	mSend := systray.AddMenuItem("发送测试通知 ("+t.hotkeyText+")", "发送一条可回复的通知")
	mClear := systray.AddMenuItem("清除通知历史", "从操作中心移除本应用的通知")
	systray.AddSeparator()
	mHotkey := systray.AddMenuItem("设置快捷键", "修改发送测试通知的快捷键")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("退出", "退出程序")

	go func() {
		for {
			select {
			case <-mSend.ClickedCh:
				call(t.onSendTest)
			case <-mClear.ClickedCh:
				call(t.onClear)
			case <-mHotkey.ClickedCh:
				call(t.onSetHotkey)
			case <-mQuit.ClickedCh:
				call(t.onQuit)
				systray.Quit()
				return
			}
		}
	}()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
