package packaging

import (
	"sync"
)

// Windows 状态码
const (
	errInsufficientBuffer = 122   // ERROR_INSUFFICIENT_BUFFER
	errNoPackage          = 15700 // APPMODEL_ERROR_NO_PACKAGE
)

// System 探测所需的系统调用
type System interface {
	// Version 返回系统主/次版本号
	Version() (major, minor uint32)

	// CurrentPackageFullName 查询当前进程的包全名
	// buf 为 nil 时仅返回所需长度
	CurrentPackageFullName(length *uint32, buf []uint16) uint32
}

// Probe 判断当前进程是否运行在包容器中，结果在进程内缓存
type Probe struct {
	sys      System
	once     sync.Once
	packaged bool
}

// NewProbe 创建探测器
func NewProbe(sys System) *Probe {
	return &Probe{sys: sys}
}

// IsPackaged 当前进程是否为打包应用
func (p *Probe) IsPackaged() bool {
	p.once.Do(func() {
		p.packaged = p.query()
	})
	return p.packaged
}

func (p *Probe) query() bool {
	if p.sys == nil {
		return false
	}

	// Windows 7 及更早版本没有包身份
	major, minor := p.sys.Version()
	if major < 6 || (major == 6 && minor <= 1) {
		return false
	}

	// 第一次调用只为拿到缓冲区长度，预期返回 ERROR_INSUFFICIENT_BUFFER
	var length uint32
	p.sys.CurrentPackageFullName(&length, nil)

	buf := make([]uint16, length)
	rc := p.sys.CurrentPackageFullName(&length, buf)

	return rc != errNoPackage
}
