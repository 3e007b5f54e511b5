//go:build !windows

package clipboard

// NewClipboard 创建剪贴板实例
func NewClipboard() Clipboard {
	return &Memory{}
}
