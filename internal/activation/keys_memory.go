package activation

import (
	"strings"
	"sync"
)

// MemoryKeys 进程内的注册表替代，键名大小写不敏感
type MemoryKeys struct {
	mu     sync.Mutex
	values map[string]map[string]string
}

// NewMemoryKeys 创建空的内存注册表
func NewMemoryKeys() *MemoryKeys {
	return &MemoryKeys{values: make(map[string]map[string]string)}
}

// SetString 写入字符串值
func (m *MemoryKeys) SetString(path, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := strings.ToLower(path)
	if m.values[k] == nil {
		m.values[k] = make(map[string]string)
	}
	m.values[k][strings.ToLower(name)] = value
	return nil
}

// GetString 读取字符串值
func (m *MemoryKeys) GetString(path, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vals, ok := m.values[strings.ToLower(path)]
	if !ok {
		return "", ErrKeyNotFound
	}
	v, ok := vals[strings.ToLower(name)]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Len 已写入的值数量
func (m *MemoryKeys) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, vals := range m.values {
		n += len(vals)
	}
	return n
}
