//go:build windows

package main

import (
	"context"

	"golang.design/x/hotkey/mainthread"

	"desktoptoast/internal/hotkey"
	"desktoptoast/internal/tray"
)

// runUI 热键与托盘，阻塞到用户退出或 ctx 取消
func runUI(ctx context.Context, app *appRuntime) error {
	mainthread.Init(func() {
		hk := hotkey.NewManager(app.log.Logger)
		register := func() {
			if err := hk.Register(app.cfg.Hotkey.Modifiers, app.cfg.Hotkey.Key, func() { onSend(app) }); err != nil {
				app.log.Warn().Err(err).Msg("请检查快捷键是否被其他程序占用")
				return
			}
			hk.ListenAsync()
		}
		register()
		defer hk.Unregister()

		t := tray.NewTray(app.cfg.App.DisplayName)
		t.SetHotkeyText(app.cfg.GetHotkeyString())
		t.SetOnSendTest(func() { onSend(app) })
		t.SetOnClear(func() {
			if err := clearHistory(app); err != nil {
				app.log.Warn().Err(err).Msg("clear history")
			}
		})
		t.SetOnSetHotkey(func() {
			mods, key, ok, err := hotkey.ShowSetter(app.cfg.GetHotkeyString())
			if err != nil {
				app.log.Warn().Err(err).Msg("set hotkey")
				return
			}
			if !ok {
				return
			}
			app.cfg.Hotkey.Modifiers, app.cfg.Hotkey.Key = mods, key
			if err := app.cfg.SaveTo(app.configPath); err != nil {
				app.log.Warn().Err(err).Msg("save config")
			}
			_ = hk.Unregister()
			register()
			app.log.Info().Str("hotkey", app.cfg.GetHotkeyString()).Msg("快捷键已更新，托盘菜单在重启后显示新值")
		})

		go func() {
			<-ctx.Done()
			t.Quit()
		}()

		t.Run()
	})
	return nil
}

func onSend(app *appRuntime) {
	if err := sendSample(app); err != nil {
		app.log.Warn().Err(err).Msg("send toast")
	}
}
