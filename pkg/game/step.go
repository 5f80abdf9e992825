package game

import (
	"time"

	"github.com/decker502/ghosthorror/pkg/animation"
	"github.com/decker502/ghosthorror/pkg/input"
	"github.com/decker502/ghosthorror/pkg/render"
)

// Frame 一帧的输入
type Frame struct {
	Now    time.Duration
	Events []input.Event
}

// Step 时间轴上的一个步骤
//
// 时间轴保证同一时刻只有一个步骤在运行：
// Begin 在该步骤第一次被更新前调用一次，之后每帧 Update 一次，直到返回 true。
type Step interface {
	// Name 步骤名称（日志用）
	Name() string

	// Cue 开始时播放的音效提示点，可为空
	Cue() string

	// Begin 以 now 为起点开始
	Begin(now time.Duration)

	// Update 推进一帧，返回是否结束
	Update(f Frame) bool

	// Draw 绘制当前状态
	Draw(s render.Surface, now time.Duration)
}

// Painter 把动画状态画到表面上
type Painter func(s render.Surface, st animation.VisualState)

// AnimateStep 运行一个动画直到结束
type AnimateStep struct {
	name  string
	cue   string
	anim  animation.Animation
	paint Painter
	last  animation.VisualState
}

// NewAnimateStep 创建动画步骤；paint 为 nil 时不绘制（空白停顿）
func NewAnimateStep(name string, anim animation.Animation, paint Painter) *AnimateStep {
	return &AnimateStep{name: name, anim: anim, paint: paint}
}

// WithCue 设置音效提示点
func (a *AnimateStep) WithCue(cue string) *AnimateStep {
	a.cue = cue
	return a
}

// Name 步骤名称
func (a *AnimateStep) Name() string { return a.name }

// Cue 音效提示点
func (a *AnimateStep) Cue() string { return a.cue }

// Begin 启动动画
func (a *AnimateStep) Begin(now time.Duration) {
	a.anim.Start(now)
	a.last = animation.VisualState{}
}

// Update 推进动画
func (a *AnimateStep) Update(f Frame) bool {
	st, done := a.anim.Advance(f.Now)
	a.last = st
	return done
}

// Draw 绘制最近一次的状态
func (a *AnimateStep) Draw(s render.Surface, _ time.Duration) {
	if a.paint != nil {
		a.paint(s, a.last)
	}
}

// State 最近一次的视觉状态
func (a *AnimateStep) State() animation.VisualState {
	return a.last
}

// refresh 在不改变结束状态的前提下继续推进动画（停留阶段让血滴继续下落）
func (a *AnimateStep) refresh(now time.Duration) {
	a.last, _ = a.anim.Advance(now)
}

// HoldStep 在一段时间内继续显示上一个动画
type HoldStep struct {
	prev  *AnimateStep
	timer *animation.Phased
}

// NewHoldStep 创建停留步骤
func NewHoldStep(d time.Duration, prev *AnimateStep) (*HoldStep, error) {
	timer, err := animation.NewPause(d)
	if err != nil {
		return nil, err
	}
	return &HoldStep{prev: prev, timer: timer}, nil
}

// Name 步骤名称
func (h *HoldStep) Name() string { return "hold:" + h.prev.Name() }

// Cue 无音效
func (h *HoldStep) Cue() string { return "" }

// Begin 开始计时
func (h *HoldStep) Begin(now time.Duration) {
	h.timer.Start(now)
}

// Update 推进计时，同时刷新上一个动画
func (h *HoldStep) Update(f Frame) bool {
	h.prev.refresh(f.Now)
	_, done := h.timer.Advance(f.Now)
	return done
}

// Draw 绘制上一个动画
func (h *HoldStep) Draw(s render.Surface, now time.Duration) {
	h.prev.Draw(s, now)
}

// FadeStep 淡变步骤
//
// 淡出到黑场时在上一个动画的最后一帧（冻结）上叠加遮罩；
// 从黑场淡入时以 alpha 绘制目标。
type FadeStep struct {
	*AnimateStep
	under *AnimateStep
}

// NewFadeToBlackStep 在 under 的最后一帧上淡出到黑场
func NewFadeToBlackStep(d time.Duration, under *AnimateStep) (*FadeStep, error) {
	fade, err := animation.NewFade(animation.FadeToBlack, d)
	if err != nil {
		return nil, err
	}
	step := &FadeStep{under: under}
	step.AnimateStep = NewAnimateStep("fade_to_black", fade, func(s render.Surface, st animation.VisualState) {
		if step.under != nil {
			step.under.Draw(s, 0)
		}
		render.DrawOverlay(s, st.OverlayAlpha)
	})
	return step, nil
}

// NewFadeFromBlackStep 从黑场淡入，paint 以当前 alpha 绘制内容
func NewFadeFromBlackStep(d time.Duration, paint func(s render.Surface, alpha float64)) (*FadeStep, error) {
	fade, err := animation.NewFade(animation.FadeFromBlack, d)
	if err != nil {
		return nil, err
	}
	step := &FadeStep{}
	step.AnimateStep = NewAnimateStep("fade_from_black", fade, func(s render.Surface, st animation.VisualState) {
		paint(s, st.Alpha)
	})
	return step, nil
}

// BlankStep 清屏一帧
type BlankStep struct{}

// Name 步骤名称
func (BlankStep) Name() string { return "blank" }

// Cue 无音效
func (BlankStep) Cue() string { return "" }

// Begin 无操作
func (BlankStep) Begin(time.Duration) {}

// Update 立即结束
func (BlankStep) Update(Frame) bool { return true }

// Draw 不绘制（表面已被清屏）
func (BlankStep) Draw(render.Surface, time.Duration) {}

// PromptStep 退出提示
//
// 没有自己的计时阶段，直到提交、Esc 或退出请求才结束。
type PromptStep struct {
	prompt *input.Prompt
	style  render.TextStyle
}

// NewPromptStep 创建提示步骤
func NewPromptStep(prompt *input.Prompt, style render.TextStyle) *PromptStep {
	return &PromptStep{prompt: prompt, style: style}
}

// Name 步骤名称
func (p *PromptStep) Name() string { return "prompt" }

// Cue 无音效
func (p *PromptStep) Cue() string { return "" }

// Begin 清空输入
func (p *PromptStep) Begin(now time.Duration) {
	p.prompt.Start(now)
}

// Update 处理本帧事件
func (p *PromptStep) Update(f Frame) bool {
	return p.prompt.HandleAll(f.Events, f.Now) != input.Pending
}

// Draw 绘制提示和输入
func (p *PromptStep) Draw(s render.Surface, now time.Duration) {
	render.DrawPrompt(s, p.prompt, now, p.style)
}

// Result 提示结果
func (p *PromptStep) Result() input.Result {
	return p.prompt.Result()
}

// Answer 提交的回答
func (p *PromptStep) Answer() string {
	return p.prompt.Answer()
}
