//go:build windows

package toast

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	gotoast "github.com/go-toast/toast"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ScriptPlatform Windows 通知服务
//
// 普通通知交给 go-toast 投递；打包应用、带 Tag/Group 的通知与历史操作
// 通过同样的 PowerShell 方式直接调用 WinRT。
type ScriptPlatform struct {
	log zerolog.Logger
}

// NewScriptPlatform 创建 Windows 通知服务
func NewScriptPlatform(log zerolog.Logger) *ScriptPlatform {
	return &ScriptPlatform{
		log: log.With().Str("component", "toast").Logger(),
	}
}

// Show 投递通知
func (p *ScriptPlatform) Show(identity string, n Notification) error {
	// go-toast 必须指定 AppID，打包应用使用包默认的通知器
	if identity == "" || n.Tag != "" || n.Group != "" {
		script, err := RenderShow(identity, n)
		if err != nil {
			return err
		}
		_, err = p.run(script)
		return err
	}

	t := gotoast.Notification{
		AppID:               identity,
		Title:               n.Title,
		Message:             n.Message,
		Icon:                n.Icon,
		ActivationType:      "protocol",
		ActivationArguments: n.Arguments,
	}
	for _, a := range n.Actions {
		t.Actions = append(t.Actions, gotoast.Action{Type: "protocol", Label: a.Label, Arguments: a.Arguments})
	}
	if err := t.Push(); err != nil {
		return fmt.Errorf("push toast: %w", err)
	}

	p.log.Debug().Str("app_id", t.AppID).Str("title", n.Title).Msg("toast pushed")
	return nil
}

// Clear 清空历史
func (p *ScriptPlatform) Clear(identity string) error {
	_, err := p.run(RenderClear(identity))
	return err
}

// List 读取历史
func (p *ScriptPlatform) List(identity string) ([]Record, error) {
	out, err := p.run(RenderList(identity))
	if err != nil {
		return nil, err
	}
	return ParseList(out)
}

// Remove 按 Tag/Group 删除
func (p *ScriptPlatform) Remove(identity, tag, group string) error {
	_, err := p.run(RenderRemove(identity, tag, group))
	return err
}

// RemoveGroup 删除分组
func (p *ScriptPlatform) RemoveGroup(identity, group string) error {
	_, err := p.run(RenderRemoveGroup(identity, group))
	return err
}

// run 把脚本写入临时文件后执行，带 BOM 以便 PowerShell 5 按 UTF-8 读取
func (p *ScriptPlatform) run(script string) ([]byte, error) {
	file := filepath.Join(os.TempDir(), "desktoptoast-"+uuid.NewString()+".ps1")
	if err := os.WriteFile(file, append([]byte{0xEF, 0xBB, 0xBF}, script...), 0600); err != nil {
		return nil, fmt.Errorf("write script: %w", err)
	}
	defer os.Remove(file)

	cmd := exec.Command("PowerShell", "-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass", "-File", file)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("powershell: %w: %s", err, ee.Stderr)
		}
		return nil, fmt.Errorf("powershell: %w", err)
	}
	return out, nil
}
