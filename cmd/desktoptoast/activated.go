package main

import (
	"context"
	"time"

	"desktoptoast/internal/activation"
	"desktoptoast/internal/bridge"
	"desktoptoast/internal/instance"
)

const forwardTimeout = 5 * time.Second

// runActivated 处理由通知点击拉起的进程
//
// 已有实例在运行时转发给它；否则在本进程注册并直接分发，不启动托盘。
func runActivated(ctx context.Context, c *commandContext, a activation.Activation) error {
	defer c.close()

	app, err := c.runtime()
	if err != nil {
		return err
	}
	if a.AppUserModelID == "" {
		a.AppUserModelID = app.cfg.App.Identity
	}
	clsid := app.activator.CLSID()

	guard, primary, err := instance.Acquire(app.lockPath())
	if err != nil {
		return err
	}
	defer guard.Release()

	if !primary {
		fctx, cancel := context.WithTimeout(ctx, forwardTimeout)
		defer cancel()

		err := bridge.Forward(fctx, app.bridgeAddrPath(), bridge.Envelope{CLSID: clsid, Activation: a})
		if err == nil {
			app.log.Debug().Str("arguments", a.Arguments).Msg("activation forwarded to running instance")
			return nil
		}
		app.log.Warn().Err(err).Msg("forward failed, handling activation locally")
	}

	if err := app.register(ctx); err != nil {
		return err
	}
	return app.registrar.Dispatch(ctx, clsid, a)
}
