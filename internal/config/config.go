package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// DefaultActivatorCLSID 示例激活器的类标识，复制本程序时请换成新的 GUID
const DefaultActivatorCLSID = "7956e95c-d42e-413b-9c8e-c173e6adf0c7"

// ErrInvalidHotkey 快捷键格式错误
var ErrInvalidHotkey = errors.New("invalid hotkey")

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

// App 向通知平台注册的应用信息
type App struct {
	Identity            string `toml:"identity"`              // AUMID
	DisplayName         string `toml:"display_name"`          // 开始菜单中的名称
	Logo                string `toml:"logo"`                  // 图标路径
	LogoBackgroundColor string `toml:"logo_background_color"` // transparent 或 #AARRGGBB
	ActivatorCLSID      string `toml:"activator_clsid"`       // 激活器类标识
}

// Hotkey 快捷键配置
type Hotkey struct {
	Modifiers []string `toml:"modifiers"` // ctrl, alt, shift, win
	Key       string   `toml:"key"`       // 主键，如 t, 1, f1
}

// Behavior 行为配置
type Behavior struct {
	ShowTray     bool `toml:"show_tray"`     // 显示托盘图标
	WelcomeToast bool `toml:"welcome_toast"` // 启动时发送一条通知
}

// Log 日志配置
type Log struct {
	Level string `toml:"level"` // trace, debug, info, warn, error
	File  string `toml:"file"`  // 为空时不写文件
}

// Config 主配置结构
type Config struct {
	App      App      `toml:"app"`
	Hotkey   Hotkey   `toml:"hotkey"`
	Behavior Behavior `toml:"behavior"`
	Log      Log      `toml:"log"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	// 日志默认写在 exe 同级目录
	exePath, _ := os.Executable()
	exeDir := filepath.Dir(exePath)

	return &Config{
		App: App{
			Identity:            "DesktopToast.Demo",
			DisplayName:         "Desktop Toast Demo",
			Logo:                filepath.Join(exeDir, "logo.png"),
			LogoBackgroundColor: "transparent",
			ActivatorCLSID:      DefaultActivatorCLSID,
		},
		Hotkey: Hotkey{
			Modifiers: []string{"ctrl", "alt"},
			Key:       "t",
		},
		Behavior: Behavior{
			ShowTray:     true,
			WelcomeToast: false,
		},
		Log: Log{
			Level: "info",
			File:  filepath.Join(exeDir, "desktoptoast.log"),
		},
	}
}

// GetConfigDir 获取配置目录，同时存放锁文件与通知历史
func GetConfigDir() string {
	var configDir string

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, "AppData", "Roaming")
		}
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "desktoptoast")
}

// GetConfigPath 获取配置文件路径
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.toml")
}

// RoamingAppData 返回 %APPDATA%，开始菜单快捷方式位于其下
func RoamingAppData() string {
	if dir := os.Getenv("APPDATA"); dir != "" {
		return dir
	}
	homeDir, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		return filepath.Join(homeDir, "AppData", "Roaming")
	}
	return filepath.Join(homeDir, ".local", "share")
}

// Load 加载配置
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom 从指定路径加载配置，不存在时写入默认配置
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		// 保存默认配置
		_ = cfg.SaveTo(path)
		return cfg, nil
	}
	if err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), err
	}

	// 验证并修正配置
	cfg.Validate()

	return cfg, nil
}

// Validate 验证并修正配置值
func (c *Config) Validate() {
	defaults := DefaultConfig()

	c.App.Identity = strings.TrimSpace(c.App.Identity)
	if c.App.Identity == "" {
		c.App.Identity = defaults.App.Identity
	}
	c.App.DisplayName = strings.TrimSpace(c.App.DisplayName)
	if c.App.DisplayName == "" {
		c.App.DisplayName = defaults.App.DisplayName
	}
	// 显示名称会作为文件名使用
	if strings.ContainsAny(c.App.DisplayName, `\/:*?"<>|`) || strings.Contains(c.App.DisplayName, "..") {
		c.App.DisplayName = defaults.App.DisplayName
	}
	if strings.TrimSpace(c.App.Logo) == "" {
		c.App.Logo = defaults.App.Logo
	}

	color := c.App.LogoBackgroundColor
	if !strings.EqualFold(color, "transparent") && !colorPattern.MatchString(color) {
		c.App.LogoBackgroundColor = defaults.App.LogoBackgroundColor
	}

	// 零值标识不能注册
	if id, err := uuid.Parse(c.App.ActivatorCLSID); err != nil || id == uuid.Nil {
		c.App.ActivatorCLSID = defaults.App.ActivatorCLSID
	}

	// 验证快捷键
	if c.Hotkey.Key == "" {
		c.Hotkey = defaults.Hotkey
	}

	// 验证修饰键
	validMods := map[string]bool{"ctrl": true, "alt": true, "shift": true, "win": true, "control": true, "option": true, "super": true, "cmd": true, "command": true}
	validatedMods := []string{}
	for _, mod := range c.Hotkey.Modifiers {
		if validMods[strings.ToLower(mod)] {
			validatedMods = append(validatedMods, strings.ToLower(mod))
		}
	}
	if len(validatedMods) == 0 {
		c.Hotkey.Modifiers = defaults.Hotkey.Modifiers
	} else {
		c.Hotkey.Modifiers = validatedMods
	}

	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error":
		c.Log.Level = strings.ToLower(c.Log.Level)
	default:
		c.Log.Level = defaults.Log.Level
	}
}

// ActivatorID 激活器类标识
func (c *Config) ActivatorID() uuid.UUID {
	id, err := uuid.Parse(c.App.ActivatorCLSID)
	if err != nil {
		return uuid.MustParse(DefaultActivatorCLSID)
	}
	return id
}

// SaveTo 保存到指定路径
func (c *Config) SaveTo(path string) error {
	// 确保目录存在
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetHotkeyString 获取快捷键的字符串表示
func (c *Config) GetHotkeyString() string {
	return strings.Join(append(append([]string{}, c.Hotkey.Modifiers...), c.Hotkey.Key), "+")
}

// ParseHotkey 解析快捷键字符串，如 "ctrl+alt+t"
func ParseHotkey(s string) (modifiers []string, key string, err error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return nil, "", fmt.Errorf("%w: 需要至少一个修饰键和一个主键", ErrInvalidHotkey)
	}

	for _, part := range parts[:len(parts)-1] {
		switch strings.TrimSpace(part) {
		case "ctrl", "control":
			modifiers = append(modifiers, "ctrl")
		case "alt", "option":
			modifiers = append(modifiers, "alt")
		case "shift":
			modifiers = append(modifiers, "shift")
		case "win", "cmd", "command", "super":
			modifiers = append(modifiers, "win")
		default:
			return nil, "", fmt.Errorf("%w: 未知的修饰键 %s", ErrInvalidHotkey, part)
		}
	}

	key = strings.TrimSpace(parts[len(parts)-1])
	if !validKey(key) {
		return nil, "", fmt.Errorf("%w: 无效的主键 %q (支持 a-z, 0-9, f1-f12)", ErrInvalidHotkey, key)
	}
	return modifiers, key, nil
}

func validKey(key string) bool {
	if len(key) == 1 {
		return (key[0] >= 'a' && key[0] <= 'z') || (key[0] >= '0' && key[0] <= '9')
	}
	if strings.HasPrefix(key, "f") {
		n, err := strconv.Atoi(key[1:])
		return err == nil && n >= 1 && n <= 12
	}
	return false
}
