//go:build mobile

package utils

// IsMobile 移动端构建始终返回 true，游戏场景据此显示触摸摇杆和动作按钮
func IsMobile() bool {
	return true
}
