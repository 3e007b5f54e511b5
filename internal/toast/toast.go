package toast

import "time"

// Action 通知上的按钮
type Action struct {
	Label     string
	Arguments string
}

// Notification 要投递的通知
type Notification struct {
	Title   string
	Message string
	Icon    string

	// Arguments 点击通知正文时传给激活器的参数
	Arguments string
	Actions   []Action

	// Tag 与 Group 相同的通知会替换旧的一条
	Tag   string
	Group string
}

// Record 操作中心里已投递的通知
type Record struct {
	Tag       string    `json:"tag"`
	Group     string    `json:"group"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Arguments string    `json:"arguments,omitempty"`
	Delivered time.Time `json:"delivered,omitzero"`
}

// Platform 系统通知服务
//
// identity 为空表示不限定应用（打包应用由清单确定身份）。
// 删除不存在的通知不是错误。
type Platform interface {
	Show(identity string, n Notification) error
	Clear(identity string) error
	List(identity string) ([]Record, error)
	Remove(identity, tag, group string) error
	RemoveGroup(identity, group string) error
}
