// Package animation 实现按挂钟时间推进的动画时间轴引擎
//
// 每个动画对象都暴露确定性的 Advance(now) -> (VisualState, done) 契约：
// 相同的 now 序列总是产生相同的视觉状态序列。
//
// 计时逻辑只存在于两处：
//   - Phased：阶段表驱动的连续动画（光眼、淡入淡出、消息）
//   - TextReveal：离散计数器驱动的逐字显示（附带血滴粒子）
package animation

import "time"

// 阶段名称常量
const (
	PhaseFadeIn  = "fade_in"
	PhaseBreathe = "breathe"
	PhaseFadeOut = "fade_out"
	PhaseHold    = "hold"
	PhaseFade    = "fade"
	PhaseBlank   = "blank"
	PhaseReveal  = "reveal"
)

// MaxAlpha 完全不透明时的 alpha 值
const MaxAlpha = 255.0

// VisualState 一次 Advance 产出的渲染参数快照
//
// 返回后不再修改；切片字段每次都是新分配的副本，渲染器可以放心持有。
type VisualState struct {
	// Phase 当前阶段名称
	Phase string

	// Progress 当前阶段内的归一化进度 [0, 1]
	Progress float64

	// Alpha 主体透明度 [0, 255]（光眼、消息、从黑场淡入的目标）
	Alpha float64

	// Scale 主体缩放（呼吸阶段在 1.0 附近波动）
	Scale float64

	// OverlayAlpha 黑色遮罩透明度 [0, 255]（淡出到黑场）
	OverlayAlpha float64

	// CharsRevealed 已显示的字符数（逐字显示）
	CharsRevealed int

	// Jitter 每个已显示字形的垂直抖动（像素）
	Jitter []float64

	// Drips 当前存活的血滴粒子副本
	Drips []Particle
}

// Animation 动画契约
type Animation interface {
	// Start 以 now 为起点重置动画
	Start(now time.Duration)

	// Advance 推进到 now 并返回视觉状态；done 为 true 表示动画已结束。
	// 结束后继续调用是无操作，持续返回终止状态。
	Advance(now time.Duration) (VisualState, bool)
}

func msOf(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
