//go:build !windows

package hotkey

import (
	"errors"

	"github.com/rs/zerolog"
)

var errUnsupported = errors.New("当前平台不支持全局热键")

// Manager 非 Windows 平台上的空实现
type Manager struct{}

// NewManager 创建热键管理器
func NewManager(zerolog.Logger) *Manager {
	return &Manager{}
}

// Register 总是返回错误
func (m *Manager) Register([]string, string, func()) error {
	return errUnsupported
}

// Unregister 不做任何事
func (m *Manager) Unregister() error {
	return nil
}

// ListenAsync 不做任何事
func (m *Manager) ListenAsync() {}
