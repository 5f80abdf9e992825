package animation

import "time"

// MessageTiming 消息的三段计时
type MessageTiming struct {
	FadeIn  time.Duration
	Hold    time.Duration
	FadeOut time.Duration
}

// Total 消息总时长
func (m MessageTiming) Total() time.Duration {
	return m.FadeIn + m.Hold + m.FadeOut
}

// FarewellTiming 告别消息计时（800 / 2500 / 800）
var FarewellTiming = MessageTiming{
	FadeIn:  800 * time.Millisecond,
	Hold:    2500 * time.Millisecond,
	FadeOut: 800 * time.Millisecond,
}

// RejectionTiming 拒绝消息计时（400 / 1200 / 400）
var RejectionTiming = MessageTiming{
	FadeIn:  400 * time.Millisecond,
	Hold:    1200 * time.Millisecond,
	FadeOut: 400 * time.Millisecond,
}

// NewMessage 创建消息动画：淡入 → 停留（alpha=255）→ 淡出
// alpha 规律与光眼的淡入/淡出相同，但没有呼吸阶段
func NewMessage(timing MessageTiming) (*Phased, error) {
	return NewPhased(
		Phase{Name: PhaseFadeIn, Duration: timing.FadeIn, Map: fadeInMap},
		Phase{Name: PhaseHold, Duration: timing.Hold, Map: holdMap},
		Phase{Name: PhaseFadeOut, Duration: timing.FadeOut, Map: fadeOutMap},
	)
}
