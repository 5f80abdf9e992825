package animation

import (
	"math"
	"time"

	"github.com/decker502/ghosthorror/pkg/utils"
)

// GlowConfig 紫色光眼的三段计时
type GlowConfig struct {
	FadeIn  time.Duration // 淡入，默认 1000ms
	Breathe time.Duration // 呼吸，默认 2000ms
	FadeOut time.Duration // 淡出，默认 500ms

	// BreathHalfCycle 呼吸相位每经过该时长前进 π，默认 500ms（完整周期约 1 秒）
	BreathHalfCycle time.Duration

	// WholeCycles 为 true 时把呼吸时长向上取整到完整周期，避免在周期中途截断
	WholeCycles bool
}

// DefaultGlowConfig 返回默认计时
func DefaultGlowConfig() GlowConfig {
	return GlowConfig{
		FadeIn:          1000 * time.Millisecond,
		Breathe:         2000 * time.Millisecond,
		FadeOut:         500 * time.Millisecond,
		BreathHalfCycle: 500 * time.Millisecond,
	}
}

// 呼吸调制参数
const (
	breathBaseline   = 0.9
	breathAmplitude  = 0.1
	breathScaleDepth = 0.05
)

// BreathPhase 呼吸阶段的正弦相位
func BreathPhase(elapsed, halfCycle time.Duration) float64 {
	if halfCycle <= 0 {
		return 0
	}
	return float64(elapsed) / float64(halfCycle) * math.Pi
}

// BreathAlpha 呼吸阶段的 alpha：255*(0.9 + 0.1*sin(phase))
func BreathAlpha(phase float64) float64 {
	return MaxAlpha * (breathBaseline + breathAmplitude*math.Sin(phase))
}

// BreathScale 呼吸阶段的缩放：1.0 + 0.05*sin(phase)
func BreathScale(phase float64) float64 {
	return 1 + breathScaleDepth*math.Sin(phase)
}

func fadeInMap(p float64, _ time.Duration) VisualState {
	return VisualState{Alpha: utils.Lerp(0, MaxAlpha, p), Scale: 1}
}

func fadeOutMap(p float64, _ time.Duration) VisualState {
	return VisualState{Alpha: utils.Lerp(MaxAlpha, 0, p), Scale: 1}
}

func holdMap(float64, time.Duration) VisualState {
	return VisualState{Alpha: MaxAlpha, Scale: 1}
}

// NewGlowPulse 创建光眼动画：淡入 → 呼吸 → 淡出
//
// 呼吸阶段按固定时长结束，alpha/scale 只取决于阶段内已过时间，
// 与 progress 无关；默认在周期中途直接切到淡出。
func NewGlowPulse(cfg GlowConfig) (*Phased, error) {
	half := cfg.BreathHalfCycle
	if half <= 0 {
		half = DefaultGlowConfig().BreathHalfCycle
	}

	breathe := cfg.Breathe
	if cfg.WholeCycles && breathe > 0 {
		cycle := 2 * half
		if rem := breathe % cycle; rem != 0 {
			breathe += cycle - rem
		}
	}

	return NewPhased(
		Phase{Name: PhaseFadeIn, Duration: cfg.FadeIn, Map: fadeInMap},
		Phase{
			Name:     PhaseBreathe,
			Duration: breathe,
			Map: func(_ float64, elapsed time.Duration) VisualState {
				phase := BreathPhase(elapsed, half)
				return VisualState{Alpha: BreathAlpha(phase), Scale: BreathScale(phase)}
			},
		},
		Phase{Name: PhaseFadeOut, Duration: cfg.FadeOut, Map: fadeOutMap},
	)
}
