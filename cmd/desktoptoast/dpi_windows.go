//go:build windows

package main

import "golang.org/x/sys/windows"

// 托盘菜单在高分屏上需要 DPI 感知，必须在任何 Win32 调用之前设置
func init() {
	user32 := windows.NewLazySystemDLL("user32.dll")

	// Windows 10 1703+，DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 = -4
	ctx := user32.NewProc("SetProcessDpiAwarenessContext")
	if ctx.Find() == nil {
		if r, _, _ := ctx.Call(^uintptr(3)); r != 0 {
			return
		}
	}

	// Windows 8.1+，PROCESS_PER_MONITOR_DPI_AWARE
	awareness := windows.NewLazySystemDLL("shcore.dll").NewProc("SetProcessDpiAwareness")
	if awareness.Find() == nil {
		awareness.Call(2)
		return
	}

	user32.NewProc("SetProcessDPIAware").Call()
}
