package animation

import (
	"errors"
	"fmt"
	"time"

	"github.com/decker502/ghosthorror/pkg/utils"
)

// ErrInvalidTiming 动画计时配置非法（零或负时长、空阶段表）
// 属于构造期错误，运行期的 Advance 永远不会失败
var ErrInvalidTiming = errors.New("invalid animation timing")

// MapFunc 把阶段内进度映射为视觉状态
//
// 参数：
//   - progress: 阶段内归一化进度 [0, 1]
//   - elapsed: 阶段内已经过时间（供不按进度计算的阶段使用，如呼吸）
type MapFunc func(progress float64, elapsed time.Duration) VisualState

// Phase 一个具名的阶段
type Phase struct {
	// Name 阶段名称
	Name string

	// Duration 阶段时长，必须 > 0（除非设置了 Until）
	Duration time.Duration

	// Map 进度到视觉状态的映射
	Map MapFunc

	// Until 可选的结束条件；设置后阶段在 Until(elapsed) 为真时结束，
	// 用于"直到外部信号"一类的阶段
	Until func(elapsed time.Duration) bool
}

func (p Phase) ended(elapsed time.Duration) bool {
	if p.Until != nil {
		return p.Until(elapsed)
	}
	return elapsed >= p.Duration
}

func (p Phase) progress(elapsed time.Duration) float64 {
	if p.Duration <= 0 {
		return 0
	}
	return utils.Clamp01(float64(elapsed) / float64(p.Duration))
}

func (p Phase) state(progress float64, elapsed time.Duration) VisualState {
	st := p.Map(progress, elapsed)
	st.Phase = p.Name
	st.Progress = progress
	return st
}

// Phased 阶段表驱动的动画
//
// 不变式：
//   - index 在一次运行内单调不减
//   - 只有当 elapsed >= Duration 时才切换阶段
//   - index == len(phases) 时为终止状态
type Phased struct {
	phases     []Phase
	index      int
	phaseStart time.Duration
	terminal   VisualState
}

// NewPhased 根据阶段表创建动画
func NewPhased(phases ...Phase) (*Phased, error) {
	if len(phases) == 0 {
		return nil, fmt.Errorf("%w: no phases", ErrInvalidTiming)
	}
	for i, p := range phases {
		if p.Map == nil {
			return nil, fmt.Errorf("%w: phase %d (%q) has no mapping", ErrInvalidTiming, i, p.Name)
		}
		if p.Duration <= 0 && p.Until == nil {
			return nil, fmt.Errorf("%w: phase %d (%q) duration %v", ErrInvalidTiming, i, p.Name, p.Duration)
		}
	}

	table := make([]Phase, len(phases))
	copy(table, phases)
	last := table[len(table)-1]

	return &Phased{
		phases:   table,
		terminal: last.state(1, last.Duration),
	}, nil
}

// Start 重置到第一个阶段
func (a *Phased) Start(now time.Duration) {
	a.index = 0
	a.phaseStart = now
}

// Advance 推进动画
//
// 每次调用最多切换一个阶段；切换时 phaseStart 直接重置为 now，不携带超出部分。
func (a *Phased) Advance(now time.Duration) (VisualState, bool) {
	if a.index >= len(a.phases) {
		return a.terminal, true
	}

	phase := a.phases[a.index]
	elapsed := now - a.phaseStart
	if elapsed < 0 {
		elapsed = 0
	}

	if phase.ended(elapsed) {
		a.index++
		a.phaseStart = now
		if a.index >= len(a.phases) {
			return a.terminal, true
		}
		phase = a.phases[a.index]
		elapsed = 0
	}

	return phase.state(phase.progress(elapsed), elapsed), false
}

// Done 是否已经结束
func (a *Phased) Done() bool {
	return a.index >= len(a.phases)
}

// PhaseIndex 当前阶段下标（结束后等于阶段数）
func (a *Phased) PhaseIndex() int {
	return a.index
}

// CurrentPhase 当前阶段名称，结束后返回空串
func (a *Phased) CurrentPhase() string {
	if a.Done() {
		return ""
	}
	return a.phases[a.index].Name
}

// PhaseStart 当前阶段的起始时刻
func (a *Phased) PhaseStart() time.Duration {
	return a.phaseStart
}

// TotalDuration 所有定长阶段的总时长
func (a *Phased) TotalDuration() time.Duration {
	var total time.Duration
	for _, p := range a.phases {
		total += p.Duration
	}
	return total
}

// constant 返回一个只产生固定状态的映射
func constant(st VisualState) MapFunc {
	return func(float64, time.Duration) VisualState {
		return st
	}
}

// NewPause 创建空白停顿
func NewPause(d time.Duration) (*Phased, error) {
	return NewPhased(Phase{
		Name:     PhaseBlank,
		Duration: d,
		Map:      constant(VisualState{Scale: 1}),
	})
}
