package main

import (
	"context"
	"errors"

	"desktoptoast/internal/bridge"
	"desktoptoast/internal/instance"
)

var errAlreadyRunning = errors.New("desktoptoast is already running")

// runHost 常驻运行：注册、接收转发的激活、显示托盘
func runHost(ctx context.Context, c *commandContext) error {
	defer c.close()

	app, err := c.runtime()
	if err != nil {
		return err
	}

	guard, primary, err := instance.Acquire(app.lockPath())
	if err != nil {
		return err
	}
	if !primary {
		return errAlreadyRunning
	}
	defer guard.Release()

	if err := app.register(ctx); err != nil {
		return err
	}

	srv, err := bridge.Listen(app.bridgeAddrPath(), app.registrar, app.log.Logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	go func() {
		if err := srv.Serve(); err != nil {
			app.log.Error().Err(err).Msg("activation bridge stopped")
		}
	}()

	app.log.Info().
		Str("identity", app.cfg.App.Identity).
		Str("bridge", srv.Addr()).
		Str("hotkey", app.cfg.GetHotkeyString()).
		Msg("desktoptoast started")

	if app.cfg.Behavior.WelcomeToast {
		if err := sendSample(app); err != nil {
			app.log.Warn().Err(err).Msg("welcome toast")
		}
	}

	if !app.cfg.Behavior.ShowTray {
		<-ctx.Done()
		return nil
	}
	return runUI(ctx, app)
}

// sendSample 发送示例会话通知
func sendSample(app *appRuntime) error {
	notifier, err := app.manager.CreateNotifier()
	if err != nil {
		return err
	}
	return notifier.Show(sampleToast())
}

// clearHistory 清除本应用的全部通知
func clearHistory(app *appRuntime) error {
	history, err := app.manager.History()
	if err != nil {
		return err
	}
	return history.Clear()
}
