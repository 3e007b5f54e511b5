//go:build windows

package clipboard

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	openClipboard    = user32.NewProc("OpenClipboard")
	closeClipboard   = user32.NewProc("CloseClipboard")
	emptyClipboard   = user32.NewProc("EmptyClipboard")
	setClipboardData = user32.NewProc("SetClipboardData")
	getClipboardData = user32.NewProc("GetClipboardData")

	globalAlloc  = kernel32.NewProc("GlobalAlloc")
	globalFree   = kernel32.NewProc("GlobalFree")
	globalLock   = kernel32.NewProc("GlobalLock")
	globalUnlock = kernel32.NewProc("GlobalUnlock")
)

const (
	cfUnicodeText = 13
	gmemMoveable  = 0x0002
)

type windowsClipboard struct{}

// NewClipboard 创建剪贴板实例
func NewClipboard() Clipboard {
	return windowsClipboard{}
}

// SetText 设置剪贴板文本，成功后内存归系统所有
func (windowsClipboard) SetText(text string) error {
	utf16, err := windows.UTF16FromString(text)
	if err != nil {
		return err
	}

	if r, _, err := openClipboard.Call(0); r == 0 {
		return err
	}
	defer closeClipboard.Call()

	emptyClipboard.Call()

	hMem, _, err := globalAlloc.Call(gmemMoveable, uintptr(len(utf16)*2))
	if hMem == 0 {
		return err
	}

	ptr, _, err := globalLock.Call(hMem)
	if ptr == 0 {
		globalFree.Call(hMem)
		return err
	}
	copy(unsafe.Slice((*uint16)(unsafe.Pointer(ptr)), len(utf16)), utf16)
	globalUnlock.Call(hMem)

	if r, _, err := setClipboardData.Call(cfUnicodeText, hMem); r == 0 {
		globalFree.Call(hMem)
		return err
	}
	return nil
}

// GetText 获取剪贴板文本
func (windowsClipboard) GetText() (string, error) {
	if r, _, err := openClipboard.Call(0); r == 0 {
		return "", err
	}
	defer closeClipboard.Call()

	hMem, _, _ := getClipboardData.Call(cfUnicodeText)
	if hMem == 0 {
		return "", nil
	}

	ptr, _, err := globalLock.Call(hMem)
	if ptr == 0 {
		return "", err
	}
	defer globalUnlock.Call(hMem)

	return windows.UTF16PtrToString((*uint16)(unsafe.Pointer(ptr))), nil
}
