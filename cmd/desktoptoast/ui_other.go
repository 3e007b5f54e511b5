//go:build !windows

package main

import "context"

// runUI 没有托盘的平台只等待退出信号
func runUI(ctx context.Context, app *appRuntime) error {
	app.log.Info().Msg("no tray on this platform, press Ctrl+C to exit")
	<-ctx.Done()
	return nil
}
