//go:build windows

package hotkey

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.design/x/hotkey"
)

// Manager 全局热键，按下时发送一条测试通知
type Manager struct {
	hk       *hotkey.Hotkey
	callback func()
	log      zerolog.Logger
}

// NewManager 创建热键管理器
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{log: log.With().Str("component", "hotkey").Logger()}
}

func parseModifiers(mods []string) []hotkey.Modifier {
	var result []hotkey.Modifier
	for _, mod := range mods {
		switch strings.ToLower(mod) {
		case "ctrl", "control":
			result = append(result, hotkey.ModCtrl)
		case "alt", "option":
			result = append(result, hotkey.ModAlt)
		case "shift":
			result = append(result, hotkey.ModShift)
		case "win", "cmd", "command", "super":
			result = append(result, hotkey.ModWin)
		}
	}
	return result
}

func parseKey(key string) (hotkey.Key, bool) {
	key = strings.ToUpper(key)

	// 字母、数字
	if len(key) == 1 && ((key[0] >= 'A' && key[0] <= 'Z') || (key[0] >= '0' && key[0] <= '9')) {
		return hotkey.Key(key[0]), true
	}

	switch key {
	case "F1":
		return hotkey.KeyF1, true
	case "F2":
		return hotkey.KeyF2, true
	case "F3":
		return hotkey.KeyF3, true
	case "F4":
		return hotkey.KeyF4, true
	case "F5":
		return hotkey.KeyF5, true
	case "F6":
		return hotkey.KeyF6, true
	case "F7":
		return hotkey.KeyF7, true
	case "F8":
		return hotkey.KeyF8, true
	case "F9":
		return hotkey.KeyF9, true
	case "F10":
		return hotkey.KeyF10, true
	case "F11":
		return hotkey.KeyF11, true
	case "F12":
		return hotkey.KeyF12, true
	}
	return 0, false
}

// Register 注册热键
func (m *Manager) Register(modifiers []string, key string, callback func()) error {
	k, ok := parseKey(key)
	if !ok {
		return fmt.Errorf("无法注册热键: 不支持的主键 %q", key)
	}
	mods := parseModifiers(modifiers)

	m.log.Debug().Strs("modifiers", modifiers).Str("key", key).Msg("注册热键")

	m.hk = hotkey.New(mods, k)
	m.callback = callback

	if err := m.hk.Register(); err != nil {
		return fmt.Errorf("无法注册热键: %w", err)
	}
	return nil
}

// Unregister 注销热键
func (m *Manager) Unregister() error {
	if m.hk != nil {
		return m.hk.Unregister()
	}
	return nil
}

// ListenAsync 异步监听热键
func (m *Manager) ListenAsync() {
	go func() {
		for range m.hk.Keydown() {
			if m.callback != nil {
				m.callback()
			}
		}
	}()
}
