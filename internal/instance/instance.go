package instance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Guard 单实例锁，持有者是负责注册与接收激活的主实例
type Guard struct {
	lock *flock.Flock
}

// Acquire 尝试获取锁，已被其他实例持有时返回 false
func Acquire(path string) (*Guard, bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, false, fmt.Errorf("无法创建目录: %w", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return &Guard{lock: lock}, true, nil
}

// Release 释放锁
func (g *Guard) Release() error {
	if g == nil {
		return nil
	}
	return g.lock.Unlock()
}
