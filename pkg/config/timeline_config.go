package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/ghosthorror/pkg/animation"
	"github.com/decker502/ghosthorror/pkg/embedded"
)

// DefaultTimelinePath 内置时间轴配置路径
const DefaultTimelinePath = "data/timeline.yaml"

// Millis 以毫秒为单位的时长
type Millis int

// Duration 转换为 time.Duration
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// HexColor #rrggbb 格式的颜色
type HexColor color.RGBA

// UnmarshalYAML 解析 "#rrggbb"
func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	rgba, err := ParseHexColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = HexColor(rgba)
	return nil
}

// Color 转换为 color.RGBA
func (c HexColor) Color() color.RGBA {
	return color.RGBA(c)
}

// ParseHexColor 解析 "#rrggbb" 或 "rrggbb"
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// TimelineConfig 时间轴配置
//
// 配置文件位置: data/timeline.yaml
type TimelineConfig struct {
	// TickRate 帧率（也是血滴每帧参数换算的参考帧率）
	TickRate int `yaml:"tickRate"`

	Intro IntroConfig `yaml:"intro"`
	Exit  ExitConfig  `yaml:"exit"`
}

// IntroConfig 开场序列
type IntroConfig struct {
	// PauseMs 开场黑屏停顿
	PauseMs Millis `yaml:"pauseMs"`

	Reveal RevealConfig `yaml:"reveal"`

	// HoldMs 血字完成后的停留
	HoldMs Millis `yaml:"holdMs"`

	// FadeToBlackMs 淡出到黑场
	FadeToBlackMs Millis `yaml:"fadeToBlackMs"`

	// AfterFadeMs 淡出后的停顿
	AfterFadeMs Millis `yaml:"afterFadeMs"`

	Eyes EyesConfig `yaml:"eyes"`
}

// RevealConfig 血字逐字显示
type RevealConfig struct {
	Text            string     `yaml:"text"`
	FontScale       float64    `yaml:"fontScale"`
	CharDelayMs     Millis     `yaml:"charDelayMs"`
	JitterAmplitude float64    `yaml:"jitterAmplitude"`
	JitterPeriodMs  Millis     `yaml:"jitterPeriodMs"`
	DripEveryNth    int        `yaml:"dripEveryNth"`
	Drips           DripConfig `yaml:"drips"`
}

// DripConfig 血滴参数（每帧单位）
type DripConfig struct {
	SpeedPerFrame    float64 `yaml:"speedPerFrame"`
	DecayPerFrame    float64 `yaml:"decayPerFrame"`
	AlphaDecayFactor float64 `yaml:"alphaDecayFactor"`
	InitialRadius    float64 `yaml:"initialRadius"`
	Capacity         int     `yaml:"capacity"`
}

// EyesConfig 光眼
type EyesConfig struct {
	SizeScale         float64 `yaml:"sizeScale"`
	FadeInMs          Millis  `yaml:"fadeInMs"`
	BreatheMs         Millis  `yaml:"breatheMs"`
	FadeOutMs         Millis  `yaml:"fadeOutMs"`
	BreathHalfCycleMs Millis  `yaml:"breathHalfCycleMs"`
	WholeCycles       bool    `yaml:"wholeCycles"`
}

// ExitConfig 退出序列
type ExitConfig struct {
	Prompt       PromptConfig  `yaml:"prompt"`
	Affirmatives []string      `yaml:"affirmatives"`
	Farewell     MessageConfig `yaml:"farewell"`
	Rejection    MessageConfig `yaml:"rejection"`
}

// PromptConfig 退出提示
type PromptConfig struct {
	Text          string  `yaml:"text"`
	FontScale     float64 `yaml:"fontScale"`
	CursorBlinkMs Millis  `yaml:"cursorBlinkMs"`
	MaxLength     int     `yaml:"maxLength"`

	// FadeInMs 问题从黑场淡入的时长，0 表示直接显示
	FadeInMs Millis `yaml:"fadeInMs"`
}

// MessageConfig 淡入淡出消息
type MessageConfig struct {
	Text      string   `yaml:"text"`
	Color     HexColor `yaml:"color"`
	FontScale float64  `yaml:"fontScale"`
	FadeInMs  Millis   `yaml:"fadeInMs"`
	HoldMs    Millis   `yaml:"holdMs"`
	FadeOutMs Millis   `yaml:"fadeOutMs"`
}

// Total 消息总时长
func (m MessageConfig) Total() time.Duration {
	return (m.FadeInMs + m.HoldMs + m.FadeOutMs).Duration()
}

// Timing 转换为动画计时
func (m MessageConfig) Timing() animation.MessageTiming {
	return animation.MessageTiming{
		FadeIn:  m.FadeInMs.Duration(),
		Hold:    m.HoldMs.Duration(),
		FadeOut: m.FadeOutMs.Duration(),
	}
}

// millisOf 将 time.Duration 截断为毫秒
func millisOf(d time.Duration) Millis {
	return Millis(d / time.Millisecond)
}

// messageConfig 以动画计时为默认时长构造消息配置
func messageConfig(text string, c HexColor, scale float64, timing animation.MessageTiming) MessageConfig {
	return MessageConfig{
		Text:      text,
		Color:     c,
		FontScale: scale,
		FadeInMs:  millisOf(timing.FadeIn),
		HoldMs:    millisOf(timing.Hold),
		FadeOutMs: millisOf(timing.FadeOut),
	}
}

// DefaultTimelineConfig 返回内置默认值
// 配置文件只需覆盖想修改的字段
func DefaultTimelineConfig() *TimelineConfig {
	return &TimelineConfig{
		TickRate: 60,
		Intro: IntroConfig{
			PauseMs: 1000,
			Reveal: RevealConfig{
				Text:            "You Are Alone",
				FontScale:       0.12,
				CharDelayMs:     150,
				JitterAmplitude: 2,
				JitterPeriodMs:  200,
				DripEveryNth:    2,
				Drips: DripConfig{
					SpeedPerFrame:    2,
					DecayPerFrame:    0.02,
					AlphaDecayFactor: 100,
					InitialRadius:    4,
					Capacity:         64,
				},
			},
			HoldMs:        1500,
			FadeToBlackMs: 800,
			AfterFadeMs:   500,
			Eyes: EyesConfig{
				SizeScale:         0.08,
				FadeInMs:          1000,
				BreatheMs:         2000,
				FadeOutMs:         500,
				BreathHalfCycleMs: 500,
			},
		},
		Exit: ExitConfig{
			Prompt: PromptConfig{
				Text:          "You want to see the light?",
				FontScale:     0.06,
				CursorBlinkMs: 500,
				MaxLength:     64,
			},
			Affirmatives: []string{"yes", "y", "yeah", "yea", "yep"},
			Farewell: messageConfig("You live to see another day...",
				HexColor{138, 43, 226, 255}, 0.08, animation.FarewellTiming),
			Rejection: messageConfig("Then Return!",
				HexColor{139, 0, 0, 255}, 0.10, animation.RejectionTiming),
		},
	}
}

// ParseTimelineConfig 在默认值之上解析 YAML 并验证
func ParseTimelineConfig(data []byte) (*TimelineConfig, error) {
	config := DefaultTimelineConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timeline config: %w", err)
	}

	// 验证配置
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timeline config: %w", err)
	}

	return config, nil
}

// LoadTimelineConfig 加载时间轴配置
//
// 参数:
//   - path: 配置文件路径；为空时读取内置的 data/timeline.yaml
//
// 返回:
//   - *TimelineConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadTimelineConfig(path string) (*TimelineConfig, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = embedded.ReadFile(DefaultTimelinePath)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline config: %w", err)
	}
	return ParseTimelineConfig(data)
}

// Validate 验证配置有效性
//
// 所有时长必须为正（动画计时在构造期就拒绝非法值），
// 字号比例必须在 (0, 1] 内，消息文本不能为空。
func (c *TimelineConfig) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %d", c.TickRate)
	}

	durations := []struct {
		name string
		v    Millis
	}{
		{"intro.pauseMs", c.Intro.PauseMs},
		{"intro.reveal.charDelayMs", c.Intro.Reveal.CharDelayMs},
		{"intro.reveal.jitterPeriodMs", c.Intro.Reveal.JitterPeriodMs},
		{"intro.holdMs", c.Intro.HoldMs},
		{"intro.fadeToBlackMs", c.Intro.FadeToBlackMs},
		{"intro.afterFadeMs", c.Intro.AfterFadeMs},
		{"intro.eyes.fadeInMs", c.Intro.Eyes.FadeInMs},
		{"intro.eyes.breatheMs", c.Intro.Eyes.BreatheMs},
		{"intro.eyes.fadeOutMs", c.Intro.Eyes.FadeOutMs},
		{"intro.eyes.breathHalfCycleMs", c.Intro.Eyes.BreathHalfCycleMs},
		{"exit.prompt.cursorBlinkMs", c.Exit.Prompt.CursorBlinkMs},
		{"exit.farewell.fadeInMs", c.Exit.Farewell.FadeInMs},
		{"exit.farewell.holdMs", c.Exit.Farewell.HoldMs},
		{"exit.farewell.fadeOutMs", c.Exit.Farewell.FadeOutMs},
		{"exit.rejection.fadeInMs", c.Exit.Rejection.FadeInMs},
		{"exit.rejection.holdMs", c.Exit.Rejection.HoldMs},
		{"exit.rejection.fadeOutMs", c.Exit.Rejection.FadeOutMs},
	}
	for _, d := range durations {
		if d.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", d.name, d.v)
		}
	}

	scales := []struct {
		name string
		v    float64
	}{
		{"intro.reveal.fontScale", c.Intro.Reveal.FontScale},
		{"intro.eyes.sizeScale", c.Intro.Eyes.SizeScale},
		{"exit.prompt.fontScale", c.Exit.Prompt.FontScale},
		{"exit.farewell.fontScale", c.Exit.Farewell.FontScale},
		{"exit.rejection.fontScale", c.Exit.Rejection.FontScale},
	}
	for _, s := range scales {
		if s.v <= 0 || s.v > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %.3f", s.name, s.v)
		}
	}

	if c.Exit.Prompt.FadeInMs < 0 {
		return fmt.Errorf("exit.prompt.fadeInMs must not be negative, got %d", c.Exit.Prompt.FadeInMs)
	}
	if c.Intro.Reveal.DripEveryNth <= 0 {
		return fmt.Errorf("intro.reveal.dripEveryNth must be positive, got %d", c.Intro.Reveal.DripEveryNth)
	}
	drips := c.Intro.Reveal.Drips
	if drips.SpeedPerFrame < 0 || drips.DecayPerFrame < 0 {
		return fmt.Errorf("intro.reveal.drips: speed and decay must not be negative")
	}
	if drips.AlphaDecayFactor <= 0 {
		return fmt.Errorf("intro.reveal.drips.alphaDecayFactor must be positive, got %.3f", drips.AlphaDecayFactor)
	}
	// 血滴要么流出屏幕，要么透明度衰减到 0，否则会永久占用容量
	if drips.SpeedPerFrame == 0 && drips.DecayPerFrame*drips.AlphaDecayFactor <= 0 {
		return fmt.Errorf("intro.reveal.drips: drips never expire (speedPerFrame and decayPerFrame are both zero)")
	}
	if strings.TrimSpace(c.Exit.Prompt.Text) == "" {
		return fmt.Errorf("exit.prompt.text must not be empty")
	}
	if c.Exit.Farewell.Text == "" || c.Exit.Rejection.Text == "" {
		return fmt.Errorf("exit messages must not be empty")
	}

	return nil
}
