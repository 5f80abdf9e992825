package animation

import (
	"fmt"
	"math"
	"time"
	"unicode"
)

// SpawnPolicy 决定刚显示的第 index 个字符是否生成血滴
type SpawnPolicy func(index int, r rune) bool

// EveryNthGlyph 每第 n 个非空白字符（按下标 index%n == 0）生成血滴
func EveryNthGlyph(n int) SpawnPolicy {
	if n <= 0 {
		n = 1
	}
	return func(index int, r rune) bool {
		return !unicode.IsSpace(r) && index%n == 0
	}
}

// EveryOtherGlyph 默认策略：下标为偶数的非空白字符生成血滴
var EveryOtherGlyph = EveryNthGlyph(2)

// TextLayout 逐字显示所需的排版信息（由渲染器提供）
type TextLayout struct {
	CenterX, CenterY float64
	FontSize         float64
	SurfaceHeight    float64

	// Measure 返回字符串渲染宽度（像素）
	Measure func(s string) float64
}

// TextRevealConfig 逐字显示参数
type TextRevealConfig struct {
	Text            string
	CharDelay       time.Duration // 每个字符的间隔，默认 150ms
	JitterAmplitude float64       // 垂直抖动幅度（像素），默认 2
	JitterPeriod    time.Duration // 抖动周期基数，默认 200ms
	Spawn           SpawnPolicy   // 血滴生成策略，默认 EveryOtherGlyph
	Drips           DripConfig
}

// DefaultTextRevealConfig 返回默认参数
func DefaultTextRevealConfig(text string) TextRevealConfig {
	return TextRevealConfig{
		Text:            text,
		CharDelay:       150 * time.Millisecond,
		JitterAmplitude: 2,
		JitterPeriod:    200 * time.Millisecond,
		Spawn:           EveryOtherGlyph,
		Drips:           DefaultDripConfig(),
	}
}

// TextReveal 血字逐字显示
//
// 由离散计数器驱动：每经过 CharDelay 显示一个字符。
// 字形的抖动是 now 和字形下标的纯函数，不保存抖动状态。
type TextReveal struct {
	cfg     TextRevealConfig
	runes   []rune
	offsets []float64 // 每个字形相对 originX 的横向偏移（前面所有字形宽度之和）
	widths  []float64

	originX   float64
	glyphTopY float64
	baselineY float64

	charsRevealed int
	lastCharTime  time.Duration
	lastAdvance   time.Duration

	drips *DripSimulator
}

// NewTextReveal 创建逐字显示动画
func NewTextReveal(cfg TextRevealConfig, layout TextLayout) (*TextReveal, error) {
	if cfg.CharDelay <= 0 {
		return nil, fmt.Errorf("%w: char delay %v", ErrInvalidTiming, cfg.CharDelay)
	}
	if cfg.JitterPeriod <= 0 {
		return nil, fmt.Errorf("%w: jitter period %v", ErrInvalidTiming, cfg.JitterPeriod)
	}
	if cfg.Spawn == nil {
		cfg.Spawn = EveryOtherGlyph
	}
	measure := layout.Measure
	if measure == nil {
		measure = func(string) float64 { return 0 }
	}

	runes := []rune(cfg.Text)
	offsets := make([]float64, len(runes))
	widths := make([]float64, len(runes))
	x := 0.0
	for i, r := range runes {
		offsets[i] = x
		widths[i] = measure(string(r))
		x += widths[i]
	}

	return &TextReveal{
		cfg:       cfg,
		runes:     runes,
		offsets:   offsets,
		widths:    widths,
		originX:   layout.CenterX - measure(cfg.Text)/2,
		glyphTopY: layout.CenterY - layout.FontSize/2,
		baselineY: layout.CenterY + layout.FontSize/2,
		drips:     NewDripSimulator(cfg.Drips, layout.SurfaceHeight),
	}, nil
}

// Start 重置显示进度
func (t *TextReveal) Start(now time.Duration) {
	t.charsRevealed = 0
	t.lastCharTime = now
	t.lastAdvance = now
	t.drips.Reset()
}

// Advance 推进逐字显示与血滴
//
// 完成后继续调用时不再显示新字符，但血滴继续下落（用于停留阶段）。
func (t *TextReveal) Advance(now time.Duration) (VisualState, bool) {
	if dt := now - t.lastAdvance; dt > 0 {
		t.drips.Update(dt)
		t.lastAdvance = now
	}

	if t.charsRevealed < len(t.runes) && now-t.lastCharTime >= t.cfg.CharDelay {
		index := t.charsRevealed
		t.charsRevealed++
		t.lastCharTime = now

		if t.cfg.Spawn(index, t.runes[index]) {
			t.drips.Spawn(t.GlyphX(index)+t.widths[index]/2, t.baselineY)
		}
	}

	done := t.Done()
	progress := 1.0
	if len(t.runes) > 0 {
		progress = float64(t.charsRevealed) / float64(len(t.runes))
	}

	return VisualState{
		Phase:         PhaseReveal,
		Progress:      progress,
		Alpha:         MaxAlpha,
		Scale:         1,
		CharsRevealed: t.charsRevealed,
		Jitter:        t.jitter(now),
		Drips:         t.drips.Snapshot(),
	}, done
}

func (t *TextReveal) jitter(now time.Duration) []float64 {
	if t.charsRevealed == 0 {
		return nil
	}
	period := msOf(t.cfg.JitterPeriod)
	base := msOf(now) / period
	out := make([]float64, t.charsRevealed)
	for i := range out {
		out[i] = t.cfg.JitterAmplitude * math.Sin(base+float64(i))
	}
	return out
}

// Done 所有字符是否都已显示
func (t *TextReveal) Done() bool {
	return t.charsRevealed >= len(t.runes)
}

// CharsRevealed 已显示字符数
func (t *TextReveal) CharsRevealed() int {
	return t.charsRevealed
}

// Runes 文本的字符序列
func (t *TextReveal) Runes() []rune {
	return t.runes
}

// GlyphX 第 i 个字形的左边界横坐标
func (t *TextReveal) GlyphX(i int) float64 {
	if i < 0 || i >= len(t.offsets) {
		return t.originX
	}
	return t.originX + t.offsets[i]
}

// GlyphTopY 字形顶部纵坐标（未加抖动）
func (t *TextReveal) GlyphTopY() float64 {
	return t.glyphTopY
}

// DripCount 当前存活血滴数
func (t *TextReveal) DripCount() int {
	return t.drips.Len()
}
