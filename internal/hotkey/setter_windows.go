//go:build windows

package hotkey

import (
	"fmt"
	"os/exec"
	"strings"

	"desktoptoast/internal/config"
)

// ShowSetter 用 PowerShell InputBox 询问新的快捷键，取消时返回 ok=false
func ShowSetter(current string) (modifiers []string, key string, ok bool, err error) {
	script := fmt.Sprintf(`
Add-Type -AssemblyName Microsoft.VisualBasic
$msg = "请输入新的快捷键组合" + [char]10 + [char]10 + "格式: 修饰键+主键" + [char]10 + "示例: ctrl+alt+t, alt+f9" + [char]10 + [char]10 + "支持的修饰键: ctrl, alt, shift, win" + [char]10 + "支持的主键: a-z, 0-9, f1-f12"
$result = [Microsoft.VisualBasic.Interaction]::InputBox($msg, "设置快捷键", "%s")
Write-Output $result
`, strings.ReplaceAll(current, `"`, ""))

	output, err := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script).Output()
	if err != nil {
		return nil, "", false, fmt.Errorf("powershell: %w", err)
	}

	input := strings.TrimSpace(string(output))
	if input == "" {
		return nil, "", false, nil
	}

	modifiers, key, err = config.ParseHotkey(input)
	if err != nil {
		return nil, "", false, err
	}
	return modifiers, key, true, nil
}
