//go:build !windows

package shortcut

// NewInstaller 返回当前平台的快捷方式安装器
func NewInstaller() Installer {
	return FileInstaller{}
}
