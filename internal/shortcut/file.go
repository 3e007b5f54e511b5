package shortcut

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// Link 快捷方式中记录的内容
type Link struct {
	Target              string
	AppUserModelID      string
	ToastActivatorCLSID uuid.UUID
}

type descriptor struct {
	Target              string `toml:"target"`
	AppUserModelID      string `toml:"app_user_model_id"`
	ToastActivatorCLSID string `toml:"toast_activator_clsid"`
}

// FileInstaller 把快捷方式写成 TOML 描述文件，用于没有 Shell 链接对象的平台
type FileInstaller struct{}

// Install 覆盖写入描述文件，父目录必须已存在
func (FileInstaller) Install(path, exePath, appUserModelID string, activator uuid.UUID) error {
	data, err := toml.Marshal(descriptor{
		Target:              exePath,
		AppUserModelID:      appUserModelID,
		ToastActivatorCLSID: activator.String(),
	})
	if err != nil {
		return fmt.Errorf("encode shortcut: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write shortcut: %w", err)
	}
	return nil
}

// Read 读取 FileInstaller 写入的描述文件
func Read(path string) (Link, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Link{}, err
	}

	var d descriptor
	if err := toml.Unmarshal(data, &d); err != nil {
		return Link{}, fmt.Errorf("decode shortcut: %w", err)
	}
	clsid, err := uuid.Parse(d.ToastActivatorCLSID)
	if err != nil {
		return Link{}, fmt.Errorf("decode shortcut clsid: %w", err)
	}

	return Link{
		Target:              d.Target,
		AppUserModelID:      d.AppUserModelID,
		ToastActivatorCLSID: clsid,
	}, nil
}
