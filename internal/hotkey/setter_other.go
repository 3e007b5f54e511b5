//go:build !windows

package hotkey

// ShowSetter 非 Windows 平台没有输入框
func ShowSetter(string) ([]string, string, bool, error) {
	return nil, "", false, errUnsupported
}
