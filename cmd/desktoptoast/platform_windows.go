//go:build windows

package main

import (
	"github.com/rs/zerolog"

	"desktoptoast/internal/config"
	"desktoptoast/internal/toast"
)

func openPlatform(_ *config.Config, _ string, log zerolog.Logger) (toast.Platform, func() error, error) {
	return toast.NewScriptPlatform(log), func() error { return nil }, nil
}
