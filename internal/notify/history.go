package notify

import (
	"desktoptoast/internal/toast"
)

// History 已投递通知的查询与删除，限定在注册时的 AUMID 下
type History struct {
	identity string
	platform toast.Platform
}

// Clear 删除本应用的全部通知
func (h *History) Clear() error {
	return h.platform.Clear(h.identity)
}

// List 返回当前历史的快照，每次调用都会重新查询
func (h *History) List() ([]toast.Record, error) {
	return h.platform.List(h.identity)
}

// Remove 按 Tag 删除一条通知，不存在时不报错
func (h *History) Remove(tag string) error {
	return h.platform.Remove(h.identity, tag, "")
}

// RemoveWithGroup 按 Tag 和 Group 删除一条通知
func (h *History) RemoveWithGroup(tag, group string) error {
	return h.platform.Remove(h.identity, tag, group)
}

// RemoveGroup 删除同一分组的全部通知
func (h *History) RemoveGroup(group string) error {
	return h.platform.RemoveGroup(h.identity, group)
}
