package utils

import "math"

// 进度与插值工具
//
// 动画层所有的 progress→视觉属性 映射都经过这里，
// 输入 progress 统一先夹到 [0, 1]。

// Clamp 把 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Clamp01 把 v 限制在 [0, 1]
// NaN 视为 0
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
