package clipboard

import "sync"

// Clipboard 剪贴板接口
type Clipboard interface {
	SetText(text string) error
	GetText() (string, error)
}

// Memory 进程内剪贴板，用于没有系统剪贴板的平台
type Memory struct {
	mu   sync.Mutex
	text string
}

// SetText 设置文本
func (m *Memory) SetText(text string) error {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}

// GetText 读取文本
func (m *Memory) GetText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}
