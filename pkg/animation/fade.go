package animation

import (
	"time"

	"github.com/decker502/ghosthorror/pkg/utils"
)

// FadeDirection 淡变方向
type FadeDirection int

const (
	// FadeToBlack 当前画面逐渐被黑色遮罩覆盖
	FadeToBlack FadeDirection = iota
	// FadeFromBlack 目标画面从黑场中逐渐显现
	FadeFromBlack
)

// String 返回方向名称
func (d FadeDirection) String() string {
	if d == FadeFromBlack {
		return "from_black"
	}
	return "to_black"
}

// NewFade 创建单阶段淡变动画
//
//   - FadeToBlack:   OverlayAlpha = 255*progress，底图保持不透明
//   - FadeFromBlack: Alpha = 255*progress，目标居中绘制
func NewFade(dir FadeDirection, d time.Duration) (*Phased, error) {
	mapping := func(p float64, _ time.Duration) VisualState {
		if dir == FadeFromBlack {
			return VisualState{Alpha: utils.Lerp(0, MaxAlpha, p), Scale: 1}
		}
		return VisualState{Alpha: MaxAlpha, OverlayAlpha: utils.Lerp(0, MaxAlpha, p), Scale: 1}
	}
	return NewPhased(Phase{Name: PhaseFade, Duration: d, Map: mapping})
}
