package notify

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"desktoptoast/internal/activation"
	"desktoptoast/internal/shortcut"
	"desktoptoast/internal/toast"
)

var logoBackgroundPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

// Prober 判断进程是否运行在包容器中
type Prober interface {
	IsPackaged() bool
}

// Options 注册参数
type Options struct {
	// Identity 应用的 AUMID
	Identity    string
	DisplayName string
	Logo        string

	// LogoBackgroundColor 可选，"transparent" 或 #AARRGGBB
	LogoBackgroundColor string

	Handler activation.Handler
}

// Deps Manager 依赖的系统服务
type Deps struct {
	Probe     Prober
	Shortcuts shortcut.Installer
	Registrar *activation.Registrar
	Platform  toast.Platform

	// AppData 漫游应用数据目录（%APPDATA%）
	AppData string
	// ExePath 当前可执行文件
	ExePath string

	Log zerolog.Logger
}

// Manager 进程内唯一的通知注册上下文
//
// 由启动代码构造一次并传递给需要它的地方。状态只会从未注册变为已注册。
type Manager struct {
	probe     Prober
	shortcuts shortcut.Installer
	registrar *activation.Registrar
	platform  toast.Platform
	appData   string
	exePath   string
	log       zerolog.Logger

	mu         sync.Mutex
	registered bool
	identity   string
	scheme     string
}

// NewManager 创建 Manager
func NewManager(d Deps) *Manager {
	return &Manager{
		probe:     d.Probe,
		shortcuts: d.Shortcuts,
		registrar: d.Registrar,
		platform:  d.Platform,
		appData:   d.AppData,
		exePath:   d.ExePath,
		log:       d.Log.With().Str("component", "notify").Logger(),
	}
}

// MustRegisterWithPlatform 未打包的应用必须调用 Register
func (m *Manager) MustRegisterWithPlatform() bool {
	return !m.probe.IsPackaged()
}

// ShortcutPath 显示名称对应的开始菜单快捷方式
func (m *Manager) ShortcutPath(displayName string) string {
	return shortcut.DefaultPath(m.appData, displayName)
}

// Register 向通知平台注册应用，应在启动时、发送通知前调用
//
// 打包应用清空缓存的 AUMID 并在进程内登记激活器；未打包应用写入快捷方式、LocalServer32
// 和协议处理器并登记激活器。重复调用是安全的。
func (m *Manager) Register(ctx context.Context, opts Options) error {
	if err := validate(opts); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if m.probe.IsPackaged() {
		// 打包应用的身份与激活服务器来自清单，只需在进程内登记激活器
		if err := m.registrar.Bind(opts.Handler); err != nil {
			return err
		}
		m.commit("", "")

		m.log.Info().Msg("running packaged, registration is implicit")
		return nil
	}

	scheme := activation.Scheme(opts.Identity)
	if err := m.install(opts.DisplayName, opts.Identity, opts.Handler); err != nil {
		return err
	}
	if err := m.registrar.RegisterProtocol(scheme, opts.DisplayName, m.exePath); err != nil {
		return err
	}

	// 全部写入成功后才切换身份
	m.commit(opts.Identity, scheme)

	m.log.Info().
		Str("identity", opts.Identity).
		Str("shortcut", m.ShortcutPath(opts.DisplayName)).
		Stringer("clsid", opts.Handler.CLSID()).
		Msg("registered with notification platform")
	return nil
}

func (m *Manager) commit(identity, scheme string) {
	m.mu.Lock()
	m.identity = identity
	m.scheme = scheme
	m.registered = true
	m.mu.Unlock()
}

// CreateShortcutAndRegister 写入快捷方式并注册 COM 服务器与激活器，不改变注册状态
func (m *Manager) CreateShortcutAndRegister(displayName, identity string, h activation.Handler) error {
	if err := activation.Validate(h); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := required("identity", identity); err != nil {
		return err
	}
	if err := required("display name", displayName); err != nil {
		return err
	}
	return m.install(displayName, identity, h)
}

// RegisterComServerAndActivator 注册 LocalServer32 并登记激活器，exePath 为空时使用当前进程
func (m *Manager) RegisterComServerAndActivator(h activation.Handler, exePath string) error {
	if exePath == "" {
		exePath = m.exePath
	}
	if err := m.registrar.RegisterComServer(h, exePath); err != nil {
		return err
	}
	return m.registrar.RegisterClassFactory(h)
}

func (m *Manager) install(displayName, identity string, h activation.Handler) error {
	path := m.ShortcutPath(displayName)
	if err := m.shortcuts.Install(path, m.exePath, identity, h.CLSID()); err != nil {
		return fmt.Errorf("install shortcut %s: %w", path, err)
	}
	return m.RegisterComServerAndActivator(h, m.exePath)
}

// CreateNotifier 返回通知器，未注册且未打包时返回 ErrNotRegistered
func (m *Manager) CreateNotifier() (*Notifier, error) {
	identity, scheme, err := m.ensureRegistered()
	if err != nil {
		return nil, err
	}
	return &Notifier{
		identity: identity,
		scheme:   scheme,
		platform: m.platform,
	}, nil
}

// History 返回限定在当前 AUMID 下的通知历史
func (m *Manager) History() (*History, error) {
	identity, _, err := m.ensureRegistered()
	if err != nil {
		return nil, err
	}
	return &History{identity: identity, platform: m.platform}, nil
}

// Registered 是否已注册
func (m *Manager) Registered() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registered
}

// Identity 缓存的 AUMID，打包应用或未注册时返回 false
func (m *Manager) Identity() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity, m.identity != ""
}

func (m *Manager) ensureRegistered() (identity, scheme string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.registered {
		if !m.probe.IsPackaged() {
			return "", "", ErrNotRegistered
		}
		// 打包应用隐式注册
		m.registered = true
	}
	return m.identity, m.scheme, nil
}

func validate(opts Options) error {
	if err := activation.Validate(opts.Handler); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := required("identity", opts.Identity); err != nil {
		return err
	}
	if err := required("display name", opts.DisplayName); err != nil {
		return err
	}
	if err := required("logo", opts.Logo); err != nil {
		return err
	}

	c := opts.LogoBackgroundColor
	if c != "" && !strings.EqualFold(c, "transparent") && !logoBackgroundPattern.MatchString(c) {
		return fmt.Errorf("%w: logo background color %q must be \"transparent\" or #AARRGGBB", ErrInvalidArgument, c)
	}
	return nil
}

func required(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: you must provide a %s", ErrInvalidArgument, name)
	}
	return nil
}
