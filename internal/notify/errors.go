package notify

import "errors"

var (
	// ErrInvalidArgument 调用方传入了空的标识、显示名称或图标
	ErrInvalidArgument = errors.New("notify: invalid argument")
	// ErrNotRegistered 未注册时创建通知器或读取历史
	ErrNotRegistered = errors.New("notify: you must call Register first")
)
