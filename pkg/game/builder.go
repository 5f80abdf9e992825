package game

import (
	"fmt"

	"github.com/decker502/ghosthorror/pkg/animation"
	"github.com/decker502/ghosthorror/pkg/config"
	"github.com/decker502/ghosthorror/pkg/input"
	"github.com/decker502/ghosthorror/pkg/render"
)

// Builder 根据时间轴配置和渲染表面构建各段序列
//
// 字号和布局在构建时按表面尺寸计算，所以每次进入序列前重新构建。
type Builder struct {
	cfg     *config.TimelineConfig
	surface render.Surface
}

// NewBuilder 创建构建器
func NewBuilder(cfg *config.TimelineConfig, surface render.Surface) *Builder {
	return &Builder{cfg: cfg, surface: surface}
}

func (b *Builder) style(scale float64, horror bool) render.TextStyle {
	_, h := b.surface.Size()
	return render.TextStyle{Size: render.FontSizeFor(h, scale), Horror: horror}
}

func (b *Builder) pause(ms config.Millis) (*AnimateStep, error) {
	p, err := animation.NewPause(ms.Duration())
	if err != nil {
		return nil, err
	}
	return NewAnimateStep("pause", p, nil), nil
}

// Reveal 构建血字步骤
func (b *Builder) Reveal() (*AnimateStep, error) {
	rc := b.cfg.Intro.Reveal
	style := b.style(rc.FontScale, true)

	cfg := animation.DefaultTextRevealConfig(rc.Text)
	cfg.CharDelay = rc.CharDelayMs.Duration()
	cfg.JitterAmplitude = rc.JitterAmplitude
	cfg.JitterPeriod = rc.JitterPeriodMs.Duration()
	cfg.Spawn = animation.EveryNthGlyph(rc.DripEveryNth)
	cfg.Drips = animation.DripConfig{
		SpeedPerFrame:    rc.Drips.SpeedPerFrame,
		DecayPerFrame:    rc.Drips.DecayPerFrame,
		AlphaDecayFactor: rc.Drips.AlphaDecayFactor,
		InitialRadius:    rc.Drips.InitialRadius,
		InitialAlpha:     animation.MaxAlpha,
		MinRadius:        1,
		TickRate:         b.cfg.TickRate,
		Capacity:         rc.Drips.Capacity,
	}

	tr, err := animation.NewTextReveal(cfg, render.RevealLayout(b.surface, style))
	if err != nil {
		return nil, fmt.Errorf("failed to build text reveal: %w", err)
	}
	step := NewAnimateStep("reveal", tr, func(s render.Surface, st animation.VisualState) {
		render.DrawTextReveal(s, tr, st, style)
	})
	return step.WithCue(CueIntroReveal), nil
}

// Eyes 构建光眼步骤
func (b *Builder) Eyes() (*AnimateStep, error) {
	ec := b.cfg.Intro.Eyes
	glow, err := animation.NewGlowPulse(animation.GlowConfig{
		FadeIn:          ec.FadeInMs.Duration(),
		Breathe:         ec.BreatheMs.Duration(),
		FadeOut:         ec.FadeOutMs.Duration(),
		BreathHalfCycle: ec.BreathHalfCycleMs.Duration(),
		WholeCycles:     ec.WholeCycles,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build glow pulse: %w", err)
	}
	layout := render.NewEyesLayout(b.surface, ec.SizeScale)
	step := NewAnimateStep("eyes", glow, func(s render.Surface, st animation.VisualState) {
		render.DrawEyes(s, layout, st)
	})
	return step.WithCue(CueIntroEyes), nil
}

// Intro 构建开场序列：
// 黑屏停顿 → 血字 → 停留 → 淡出到黑场 → 停顿 → 光眼 → 黑屏
func (b *Builder) Intro() (*Timeline, error) {
	ic := b.cfg.Intro

	pause, err := b.pause(ic.PauseMs)
	if err != nil {
		return nil, fmt.Errorf("failed to build intro pause: %w", err)
	}
	reveal, err := b.Reveal()
	if err != nil {
		return nil, err
	}
	hold, err := NewHoldStep(ic.HoldMs.Duration(), reveal)
	if err != nil {
		return nil, fmt.Errorf("failed to build intro hold: %w", err)
	}
	fade, err := NewFadeToBlackStep(ic.FadeToBlackMs.Duration(), reveal)
	if err != nil {
		return nil, fmt.Errorf("failed to build intro fade: %w", err)
	}
	afterFade, err := b.pause(ic.AfterFadeMs)
	if err != nil {
		return nil, fmt.Errorf("failed to build intro pause: %w", err)
	}
	eyes, err := b.Eyes()
	if err != nil {
		return nil, err
	}

	return NewTimeline(pause, reveal, hold, fade, afterFade, eyes, BlankStep{}), nil
}

// Prompt 构建退出提示步骤
func (b *Builder) Prompt() *PromptStep {
	pc := b.cfg.Exit.Prompt
	p := input.NewPrompt(pc.Text)
	p.MaxLength = pc.MaxLength
	p.SetBlinkInterval(pc.CursorBlinkMs.Duration())
	return NewPromptStep(p, b.style(pc.FontScale, true))
}

// Exit 构建退出序列的前半段；分支消息在提交后由 Sequencer 追加
//
// 配置了 fadeInMs 时，问题先从黑场淡入。
func (b *Builder) Exit() (*Timeline, *PromptStep, error) {
	prompt := b.Prompt()
	pc := b.cfg.Exit.Prompt
	if pc.FadeInMs <= 0 {
		return NewTimeline(prompt), prompt, nil
	}

	style := b.style(pc.FontScale, true)
	fade, err := NewFadeFromBlackStep(pc.FadeInMs.Duration(), func(s render.Surface, alpha float64) {
		render.DrawQuestion(s, pc.Text, style, alpha)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build prompt fade: %w", err)
	}
	return NewTimeline(fade, prompt), prompt, nil
}

// Message 构建消息步骤
func (b *Builder) Message(name string, mc config.MessageConfig) (*AnimateStep, error) {
	msg, err := animation.NewMessage(mc.Timing())
	if err != nil {
		return nil, fmt.Errorf("failed to build %s message: %w", name, err)
	}
	style := b.style(mc.FontScale, true)
	c := mc.Color.Color()
	text := mc.Text
	return NewAnimateStep(name, msg, func(s render.Surface, st animation.VisualState) {
		render.DrawCentered(s, text, style, c, st.Alpha)
	}), nil
}

// Farewell 告别消息
func (b *Builder) Farewell() (*AnimateStep, error) {
	step, err := b.Message("farewell", b.cfg.Exit.Farewell)
	if err != nil {
		return nil, err
	}
	return step.WithCue(CueFarewell), nil
}

// Rejection 拒绝消息
func (b *Builder) Rejection() (*AnimateStep, error) {
	step, err := b.Message("rejection", b.cfg.Exit.Rejection)
	if err != nil {
		return nil, err
	}
	return step.WithCue(CueRejection), nil
}

// Affirmatives 肯定回答集合
func (b *Builder) Affirmatives() input.AffirmativeSet {
	return input.NewAffirmativeSet(b.cfg.Exit.Affirmatives...)
}
