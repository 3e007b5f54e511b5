package shortcut

import (
	"path/filepath"

	"github.com/google/uuid"
)

// Installer 创建或覆盖开始菜单快捷方式
type Installer interface {
	// Install 在 path 写入指向 exePath 的快捷方式，
	// 并写入 AppUserModel_ID 与 AppUserModel_ToastActivatorCLSID 两个属性
	Install(path, exePath, appUserModelID string, activator uuid.UUID) error
}

// DefaultPath 返回 <appData>\Microsoft\Windows\Start Menu\Programs\<displayName>.lnk
func DefaultPath(appData, displayName string) string {
	return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs", displayName+".lnk")
}
