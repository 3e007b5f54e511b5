//go:build !windows

package activation

// NewKeys 非 Windows 平台没有注册表，使用进程内实现
func NewKeys() Keys {
	return NewMemoryKeys()
}
