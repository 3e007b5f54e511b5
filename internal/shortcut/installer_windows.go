//go:build windows

package shortcut

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"github.com/google/uuid"
)

var (
	clsidShellLink    = ole.NewGUID("{00021401-0000-0000-C000-000000000046}")
	iidShellLinkW     = ole.NewGUID("{000214F9-0000-0000-C000-000000000046}")
	iidPropertyStore  = ole.NewGUID("{886D8EEB-8CF2-4446-8D02-CDBA1DBDCF99}")
	iidPersistFile    = ole.NewGUID("{0000010B-0000-0000-C000-000000000046}")
	fmtidAppUserModel = ole.NewGUID("{9F4C2855-9F79-4B39-A8D0-E1D42DE1D5F3}")
)

// PKEY_AppUserModel_ID 与 PKEY_AppUserModel_ToastActivatorCLSID
var (
	pkeyAppUserModelID      = propertyKey{fmtid: *fmtidAppUserModel, pid: 5}
	pkeyToastActivatorCLSID = propertyKey{fmtid: *fmtidAppUserModel, pid: 26}
)

const (
	vtLPWSTR = 31
	vtCLSID  = 72
)

type propertyKey struct {
	fmtid ole.GUID
	pid   uint32
}

// PROPVARIANT 头部 8 字节 + 联合体
type propVariant struct {
	vt  uint16
	_   [3]uint16
	val uintptr
	_   uintptr
}

type shellLinkVtbl struct {
	ole.IUnknownVtbl
	GetPath             uintptr
	GetIDList           uintptr
	SetIDList           uintptr
	GetDescription      uintptr
	SetDescription      uintptr
	GetWorkingDirectory uintptr
	SetWorkingDirectory uintptr
	GetArguments        uintptr
	SetArguments        uintptr
	GetHotkey           uintptr
	SetHotkey           uintptr
	GetShowCmd          uintptr
	SetShowCmd          uintptr
	GetIconLocation     uintptr
	SetIconLocation     uintptr
	SetRelativePath     uintptr
	Resolve             uintptr
	SetPath             uintptr
}

type propertyStoreVtbl struct {
	ole.IUnknownVtbl
	GetCount uintptr
	GetAt    uintptr
	GetValue uintptr
	SetValue uintptr
	Commit   uintptr
}

type persistFileVtbl struct {
	ole.IUnknownVtbl
	GetClassID    uintptr
	IsDirty       uintptr
	Load          uintptr
	Save          uintptr
	SaveCompleted uintptr
	GetCurFile    uintptr
}

// shellLinkInstaller 通过 IShellLinkW / IPropertyStore / IPersistFile 写入 .lnk
type shellLinkInstaller struct{}

// NewInstaller 返回当前平台的快捷方式安装器
func NewInstaller() Installer {
	return shellLinkInstaller{}
}

// Install 创建 .lnk 并覆盖已有文件
func (shellLinkInstaller) Install(path, exePath, appUserModelID string, activator uuid.UUID) error {
	// COM 单线程套间要求调用始终在同一个系统线程上
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		// S_FALSE 表示本线程已初始化过，仍需配对 CoUninitialize
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
			return fmt.Errorf("CoInitializeEx: %w", err)
		}
	}
	defer ole.CoUninitialize()

	link, err := ole.CreateInstance(clsidShellLink, iidShellLinkW)
	if err != nil {
		return fmt.Errorf("create shell link: %w", err)
	}
	defer link.Release()

	target, err := syscall.UTF16PtrFromString(exePath)
	if err != nil {
		return err
	}
	vtbl := (*shellLinkVtbl)(unsafe.Pointer(link.RawVTable))
	if err := call(vtbl.SetPath, uintptr(unsafe.Pointer(link)), uintptr(unsafe.Pointer(target))); err != nil {
		return fmt.Errorf("IShellLinkW.SetPath: %w", err)
	}

	if err := setProperties(link, appUserModelID, activator); err != nil {
		return err
	}

	return save(link, path)
}

func setProperties(link *ole.IUnknown, appUserModelID string, activator uuid.UUID) error {
	disp, err := link.QueryInterface(iidPropertyStore)
	if err != nil {
		return fmt.Errorf("query IPropertyStore: %w", err)
	}
	store := &disp.IUnknown
	defer store.Release()

	vtbl := (*propertyStoreVtbl)(unsafe.Pointer(store.RawVTable))

	aumid, err := syscall.UTF16PtrFromString(appUserModelID)
	if err != nil {
		return err
	}
	idValue := propVariant{vt: vtLPWSTR, val: uintptr(unsafe.Pointer(aumid))}
	if err := call(vtbl.SetValue, uintptr(unsafe.Pointer(store)),
		uintptr(unsafe.Pointer(&pkeyAppUserModelID)), uintptr(unsafe.Pointer(&idValue))); err != nil {
		return fmt.Errorf("set AppUserModel_ID: %w", err)
	}

	clsid := ole.NewGUID(activator.String())
	if clsid == nil {
		return fmt.Errorf("invalid activator clsid %s", activator)
	}
	clsidValue := propVariant{vt: vtCLSID, val: uintptr(unsafe.Pointer(clsid))}
	if err := call(vtbl.SetValue, uintptr(unsafe.Pointer(store)),
		uintptr(unsafe.Pointer(&pkeyToastActivatorCLSID)), uintptr(unsafe.Pointer(&clsidValue))); err != nil {
		return fmt.Errorf("set AppUserModel_ToastActivatorCLSID: %w", err)
	}

	runtime.KeepAlive(aumid)
	runtime.KeepAlive(clsid)

	if err := call(vtbl.Commit, uintptr(unsafe.Pointer(store))); err != nil {
		return fmt.Errorf("IPropertyStore.Commit: %w", err)
	}
	return nil
}

func save(link *ole.IUnknown, path string) error {
	disp, err := link.QueryInterface(iidPersistFile)
	if err != nil {
		return fmt.Errorf("query IPersistFile: %w", err)
	}
	file := &disp.IUnknown
	defer file.Release()

	name, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	vtbl := (*persistFileVtbl)(unsafe.Pointer(file.RawVTable))
	// fRemember = TRUE
	if err := call(vtbl.Save, uintptr(unsafe.Pointer(file)), uintptr(unsafe.Pointer(name)), 1); err != nil {
		return fmt.Errorf("IPersistFile.Save %s: %w", path, err)
	}
	return nil
}

func call(fn uintptr, args ...uintptr) error {
	hr, _, _ := syscall.SyscallN(fn, args...)
	if hr != 0 {
		return ole.NewError(hr)
	}
	return nil
}
