//go:build !windows

package main

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"desktoptoast/internal/config"
	"desktoptoast/internal/storage"
	"desktoptoast/internal/toast"
)

// openPlatform 没有操作中心的平台把通知记到本地数据库
func openPlatform(_ *config.Config, stateDir string, log zerolog.Logger) (toast.Platform, func() error, error) {
	journal, err := storage.Open(filepath.Join(stateDir, "history.db"), log)
	if err != nil {
		return nil, nil, err
	}
	return journal, journal.Close, nil
}
