package activation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrServerNotRegistered 注册类工厂前必须先写入 LocalServer32
	ErrServerNotRegistered = errors.New("activation: com server not registered")
	// ErrNoFactory 没有与类标识对应的激活器
	ErrNoFactory = errors.New("activation: no class factory registered")
	// ErrKeyNotFound 注册表键或值不存在
	ErrKeyNotFound = errors.New("activation: registry key not found")
)

// Keys 当前用户注册表的最小抽象
type Keys interface {
	// SetString 创建 path 并写入字符串值，name 为空表示默认值
	SetString(path, name, value string) error
	// GetString 读取字符串值，不存在时返回 ErrKeyNotFound
	GetString(path, name string) (string, error)
}

// ServerKeyPath 返回 Software\Classes\CLSID\{clsid}\LocalServer32
func ServerKeyPath(clsid uuid.UUID) string {
	return `Software\Classes\CLSID\{` + strings.ToUpper(clsid.String()) + `}\LocalServer32`
}

// ProtocolKeyPath 返回 Software\Classes\<scheme>
func ProtocolKeyPath(scheme string) string {
	return `Software\Classes\` + scheme
}

// Registrar 发布激活器，并把进程内的激活请求分发给对应的处理器
type Registrar struct {
	keys Keys
	log  zerolog.Logger

	mu        sync.RWMutex
	factories map[uuid.UUID]Handler
}

// NewRegistrar 创建注册器
func NewRegistrar(keys Keys, log zerolog.Logger) *Registrar {
	return &Registrar{
		keys:      keys,
		log:       log.With().Str("component", "activation").Logger(),
		factories: make(map[uuid.UUID]Handler),
	}
}

// RegisterComServer 写入 LocalServer32，让系统在进程未运行时用激活标记重新拉起它
func (r *Registrar) RegisterComServer(h Handler, exePath string) error {
	if err := Validate(h); err != nil {
		return err
	}
	if strings.TrimSpace(exePath) == "" {
		return errors.New("activation: empty executable path")
	}

	path := ServerKeyPath(h.CLSID())
	if err := r.keys.SetString(path, "", CommandLine(exePath)); err != nil {
		return fmt.Errorf("register com server %s: %w", path, err)
	}

	r.log.Debug().Str("key", path).Str("exe", exePath).Msg("com server registered")
	return nil
}

// RegisterClassFactory 登记进程内激活器，必须在 RegisterComServer 之后调用
func (r *Registrar) RegisterClassFactory(h Handler) error {
	if err := Validate(h); err != nil {
		return err
	}

	path := ServerKeyPath(h.CLSID())
	cmd, err := r.keys.GetString(path, "")
	switch {
	case errors.Is(err, ErrKeyNotFound), err == nil && cmd == "":
		return fmt.Errorf("%w: %s", ErrServerNotRegistered, h.CLSID())
	case err != nil:
		return fmt.Errorf("read %s: %w", path, err)
	}

	r.bind(h)
	r.log.Debug().Stringer("clsid", h.CLSID()).Msg("class factory registered")
	return nil
}

// Bind 只在进程内登记激活器，用于激活服务器由包清单声明的情况
func (r *Registrar) Bind(h Handler) error {
	if err := Validate(h); err != nil {
		return err
	}
	r.bind(h)
	r.log.Debug().Stringer("clsid", h.CLSID()).Msg("activator bound")
	return nil
}

func (r *Registrar) bind(h Handler) {
	r.mu.Lock()
	r.factories[h.CLSID()] = h
	r.mu.Unlock()
}

// RegisterProtocol 注册 <scheme>: 协议，通知按钮通过它把参数带到命令行
func (r *Registrar) RegisterProtocol(scheme, displayName, exePath string) error {
	root := ProtocolKeyPath(scheme)
	values := []struct{ path, name, value string }{
		{root, "", "URL:" + displayName},
		{root, "URL Protocol", ""},
		{root + `\shell\open\command`, "", ProtocolCommandLine(exePath)},
	}
	for _, v := range values {
		if err := r.keys.SetString(v.path, v.name, v.value); err != nil {
			return fmt.Errorf("register protocol %s: %w", scheme, err)
		}
	}

	r.log.Debug().Str("scheme", scheme).Msg("protocol registered")
	return nil
}

// Factory 返回已登记的处理器
func (r *Registrar) Factory(clsid uuid.UUID) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.factories[clsid]
	return h, ok
}

// Dispatch 把激活请求交给类标识对应的处理器
func (r *Registrar) Dispatch(ctx context.Context, clsid uuid.UUID, a Activation) error {
	h, ok := r.Factory(clsid)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoFactory, clsid)
	}

	r.log.Info().Stringer("clsid", clsid).Str("arguments", a.Arguments).Msg("dispatching activation")
	h.OnActivated(ctx, a)
	return nil
}
