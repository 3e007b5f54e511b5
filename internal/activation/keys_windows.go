//go:build windows

package activation

import (
	"errors"

	"golang.org/x/sys/windows/registry"
)

// registryKeys 写入 HKEY_CURRENT_USER，不需要管理员权限
type registryKeys struct {
	root registry.Key
}

// NewKeys 返回当前平台的注册表
func NewKeys() Keys {
	return registryKeys{root: registry.CURRENT_USER}
}

func (r registryKeys) SetString(path, name, value string) error {
	key, _, err := registry.CreateKey(r.root, path, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()

	return key.SetStringValue(name, value)
}

func (r registryKeys) GetString(path, name string) (string, error) {
	key, err := registry.OpenKey(r.root, path, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	defer key.Close()

	v, _, err := key.GetStringValue(name)
	if errors.Is(err, registry.ErrNotExist) {
		return "", ErrKeyNotFound
	}
	return v, err
}
