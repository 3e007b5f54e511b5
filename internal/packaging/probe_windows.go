//go:build windows

package packaging

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                      = windows.NewLazySystemDLL("kernel32.dll")
	procGetCurrentPackageFullName = kernel32.NewProc("GetCurrentPackageFullName")
)

type windowsSystem struct{}

// NewSystem 返回真实的 Windows 系统调用
func NewSystem() System {
	return windowsSystem{}
}

func (windowsSystem) Version() (uint32, uint32) {
	v := windows.RtlGetVersion()
	return v.MajorVersion, v.MinorVersion
}

func (windowsSystem) CurrentPackageFullName(length *uint32, buf []uint16) uint32 {
	// Windows 8 之前 kernel32 没有这个导出
	if err := procGetCurrentPackageFullName.Find(); err != nil {
		return errNoPackage
	}

	var p uintptr
	if len(buf) > 0 {
		p = uintptr(unsafe.Pointer(&buf[0]))
	}
	r, _, _ := procGetCurrentPackageFullName.Call(uintptr(unsafe.Pointer(length)), p)
	return uint32(r)
}
