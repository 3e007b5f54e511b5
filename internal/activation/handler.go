package activation

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Flag 通过通知重新拉起进程时命令行携带的标记
const Flag = "-ToastActivated"

// COM 本地服务器启动时系统追加的参数
const embeddingFlag = "-Embedding"

// ErrInvalidHandler 处理器没有声明自己的类标识
var ErrInvalidHandler = errors.New("activation: handler must declare its own class id")

// Activation 用户点击通知时系统传入的参数
type Activation struct {
	Arguments      string            `json:"arguments"`
	UserInput      map[string]string `json:"userInput,omitempty"`
	AppUserModelID string            `json:"appUserModelId,omitempty"`
}

// Query 把 "action=reply&conversationId=5" 形式的参数解析为键值
func (a Activation) Query() url.Values {
	v, err := url.ParseQuery(a.Arguments)
	if err != nil {
		return url.Values{}
	}
	return v
}

// Handler 通知激活回调
//
// 实现必须返回一个唯一且非零的类标识，系统用它找到对应的激活器。
// 回调可能运行在任意 goroutine 上，界面相关的操作需要自行切回主线程。
type Handler interface {
	CLSID() uuid.UUID
	OnActivated(ctx context.Context, a Activation)
}

// Base 可嵌入的空实现，本身的类标识为零值，不能直接注册
type Base struct{}

// CLSID 零值标识
func (Base) CLSID() uuid.UUID { return uuid.Nil }

// OnActivated 不做任何事
func (Base) OnActivated(context.Context, Activation) {}

// Validate 检查处理器是否可以注册
func Validate(h Handler) error {
	if h == nil || h.CLSID() == uuid.Nil {
		return ErrInvalidHandler
	}
	return nil
}

// CommandLine 返回注册表中使用的启动命令："<exePath>" -ToastActivated
func CommandLine(exePath string) string {
	return `"` + exePath + `" ` + Flag
}

// ProtocolCommandLine 协议激活使用的启动命令，%1 为完整的协议地址
func ProtocolCommandLine(exePath string) string {
	return CommandLine(exePath) + ` "%1"`
}

// Scheme 由应用标识推导出协议名，只保留 RFC 3986 允许的字符
func Scheme(identity string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(identity) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '-', c == '.':
			b.WriteRune(c)
		}
	}
	s := b.String()
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		s = "toast-" + s
	}
	return s
}

// FromArgs 检查命令行是否由通知激活拉起
func FromArgs(args []string) (Activation, bool) {
	var (
		a         Activation
		activated bool
	)
	for _, arg := range args {
		switch {
		case strings.EqualFold(arg, Flag):
			activated = true
		case !activated:
			continue
		case strings.EqualFold(arg, embeddingFlag), strings.EqualFold(arg, "/Embedding"):
			continue
		case a.Arguments == "":
			a.Arguments = stripScheme(arg)
		}
	}
	return a, activated
}

func stripScheme(arg string) string {
	i := strings.IndexByte(arg, ':')
	if i <= 0 || !isScheme(arg[:i]) {
		return arg
	}
	return strings.TrimPrefix(arg[i+1:], "//")
}

func isScheme(s string) bool {
	if !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !(c >= '0' && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
