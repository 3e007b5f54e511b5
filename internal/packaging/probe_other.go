//go:build !windows

package packaging

// 非 Windows 平台不存在包容器
type otherSystem struct{}

// NewSystem 返回当前平台的系统调用
func NewSystem() System {
	return otherSystem{}
}

func (otherSystem) Version() (uint32, uint32) {
	return 0, 0
}

func (otherSystem) CurrentPackageFullName(length *uint32, buf []uint16) uint32 {
	return errNoPackage
}
