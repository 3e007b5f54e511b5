package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"desktoptoast/internal/activation"
	"desktoptoast/internal/clipboard"
	"desktoptoast/internal/config"
	"desktoptoast/internal/logging"
	"desktoptoast/internal/notify"
	"desktoptoast/internal/packaging"
	"desktoptoast/internal/shortcut"
)

// newPackagingSystem 测试中替换为假的系统调用
var newPackagingSystem = packaging.NewSystem

type commandContext struct {
	configFlag *string

	once sync.Once
	app  *appRuntime
	err  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return path
		}
	}
	return config.GetConfigPath()
}

// runtime 按需构造一次，子命令共享
func (c *commandContext) runtime() (*appRuntime, error) {
	c.once.Do(func() {
		c.app, c.err = newAppRuntime(c.configPath())
	})
	return c.app, c.err
}

func (c *commandContext) close() {
	if c.app != nil {
		_ = c.app.Close()
	}
}

// appRuntime 一次运行所需的全部组件
type appRuntime struct {
	cfg        *config.Config
	configPath string
	stateDir   string
	log        *logging.Logger

	registrar *activation.Registrar
	manager   *notify.Manager
	activator *demoActivator

	closePlatform func() error
}

func newAppRuntime(configPath string) (*appRuntime, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	log := logging.New(cfg.Log, os.Stderr)
	stateDir := filepath.Dir(configPath)

	exePath, err := os.Executable()
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	platform, closePlatform, err := openPlatform(cfg, stateDir, log.Logger)
	if err != nil {
		_ = log.Close()
		return nil, err
	}

	registrar := activation.NewRegistrar(activation.NewKeys(), log.Logger)
	manager := notify.NewManager(notify.Deps{
		Probe:     packaging.NewProbe(newPackagingSystem()),
		Shortcuts: shortcut.NewInstaller(),
		Registrar: registrar,
		Platform:  platform,
		AppData:   config.RoamingAppData(),
		ExePath:   exePath,
		Log:       log.Logger,
	})

	return &appRuntime{
		cfg:           cfg,
		configPath:    configPath,
		stateDir:      stateDir,
		log:           log,
		registrar:     registrar,
		manager:       manager,
		activator:     newDemoActivator(cfg.ActivatorID(), manager, clipboard.NewClipboard(), log.Logger),
		closePlatform: closePlatform,
	}, nil
}

// register 每次启动都要调用，重复写入相同的值没有副作用
func (a *appRuntime) register(ctx context.Context) error {
	return a.manager.Register(ctx, notify.Options{
		Identity:            a.cfg.App.Identity,
		DisplayName:         a.cfg.App.DisplayName,
		Logo:                a.cfg.App.Logo,
		LogoBackgroundColor: a.cfg.App.LogoBackgroundColor,
		Handler:             a.activator,
	})
}

func (a *appRuntime) lockPath() string {
	return filepath.Join(a.stateDir, "desktoptoast.lock")
}

func (a *appRuntime) bridgeAddrPath() string {
	return filepath.Join(a.stateDir, "activation.addr")
}

func (a *appRuntime) Close() error {
	return errors.Join(a.closePlatform(), a.log.Close())
}
