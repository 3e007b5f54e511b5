package bridge

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"

	"desktoptoast/internal/activation"
)

// Envelope 转发给正在运行实例的激活请求
type Envelope struct {
	CLSID      uuid.UUID             `json:"clsid"`
	Activation activation.Activation `json:"activation"`
}

// Reply 处理结果
type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Dispatcher 由 activation.Registrar 实现
type Dispatcher interface {
	Dispatch(ctx context.Context, clsid uuid.UUID, a activation.Activation) error
}

// readAddr 读取地址文件
func readAddr(addrFile string) (string, error) {
	data, err := os.ReadFile(addrFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
