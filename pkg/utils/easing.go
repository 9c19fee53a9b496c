package utils

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 跳跃弧线由上升段的缓出和下落段的缓入拼成。
//
// 参考：https://easings.net/

// EaseOutQuad 二次方缓出
// 特点：开始较快，结束慢（起跳）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 特点：开始慢，结束较快（下落）
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// JumpArc 跳跃高度曲线
// 前半段以 EaseOutQuad 升到 1，后半段以 EaseInQuad 落回 0
// progress 超出 [0, 1] 时返回 0（在地面上）
func JumpArc(progress float64) float64 {
	if progress <= 0 || progress >= 1 {
		return 0
	}
	if progress < 0.5 {
		return EaseOutQuad(progress * 2)
	}
	return 1 - EaseInQuad((progress-0.5)*2)
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveToward 从 current 向 target 移动，单次最多移动 maxStep
func MoveToward(current, target, maxStep float64) float64 {
	if maxStep <= 0 {
		return current
	}
	delta := target - current
	if delta > maxStep {
		return current + maxStep
	}
	if delta < -maxStep {
		return current - maxStep
	}
	return target
}
