package render

import (
	"image/color"
	"time"

	"github.com/decker502/ghosthorror/pkg/animation"
	"github.com/decker502/ghosthorror/pkg/input"
	"github.com/decker502/ghosthorror/pkg/utils"
)

// RevealLayout 根据表面生成逐字显示的排版信息（文字居中）
func RevealLayout(s Surface, style TextStyle) animation.TextLayout {
	w, h := s.Size()
	return animation.TextLayout{
		CenterX:       w / 2,
		CenterY:       h / 2,
		FontSize:      s.LineHeight(style),
		SurfaceHeight: h,
		Measure: func(text string) float64 {
			return s.MeasureText(text, style)
		},
	}
}

// DrawTextReveal 绘制血字：已显示的字形（带抖动）和血滴
func DrawTextReveal(s Surface, tr *animation.TextReveal, st animation.VisualState, style TextStyle) {
	runes := tr.Runes()
	top := tr.GlyphTopY()
	for i := 0; i < st.CharsRevealed && i < len(runes); i++ {
		y := top
		if i < len(st.Jitter) {
			y += st.Jitter[i]
		}
		s.DrawText(string(runes[i]), tr.GlyphX(i), y, style, BloodRed, st.Alpha)
	}

	for _, p := range st.Drips {
		s.DrawCircle(p.X, p.Y, p.Radius, BloodDrip, p.Alpha)
	}
}

// EyesLayout 光眼的几何参数
type EyesLayout struct {
	CenterX, CenterY float64
	EyeSize          float64 // 眼睛直径
	Spacing          float64 // 两眼中心距离
}

// 光眼参数
const (
	DefaultEyeScale  = 0.08
	eyeSpacingFactor = 2.5
	glowLayers       = 5
	glowLayerStep    = 8.0
	glowAlphaBase    = 50.0
	glowAlphaStep    = 8.0
)

// NewEyesLayout 按表面高度计算光眼布局
func NewEyesLayout(s Surface, sizeScale float64) EyesLayout {
	if sizeScale <= 0 {
		sizeScale = DefaultEyeScale
	}
	w, h := s.Size()
	size := FontSizeFor(h, sizeScale)
	return EyesLayout{
		CenterX: w / 2,
		CenterY: h / 2,
		EyeSize: size,
		Spacing: float64(int(size * eyeSpacingFactor)),
	}
}

// DrawEyes 绘制一对紫色光眼
//
// 每只眼由外向内：5 层光晕、主体、亮核、瞳孔。
// 整体透明度和缩放来自 VisualState，光晕层自身的透明度再乘以整体透明度。
func DrawEyes(s Surface, layout EyesLayout, st animation.VisualState) {
	if st.Alpha <= 0 {
		return
	}
	scale := st.Scale
	if scale <= 0 {
		scale = 1
	}

	half := layout.Spacing / 2
	for _, cx := range []float64{layout.CenterX - half, layout.CenterX + half} {
		drawEye(s, cx, layout.CenterY, layout.EyeSize, scale, st.Alpha)
	}
}

func drawEye(s Surface, cx, cy, size, scale, alpha float64) {
	k := alpha / animation.MaxAlpha
	for i := glowLayers; i >= 1; i-- {
		radius := (size/2 + float64(i)*glowLayerStep) * scale
		layerAlpha := glowAlphaBase - float64(i)*glowAlphaStep
		if layerAlpha <= 0 {
			continue
		}
		s.DrawCircle(cx, cy, radius, PurpleGlow, layerAlpha*k)
	}

	s.DrawCircle(cx, cy, size/2*scale, PurpleGlow, alpha)
	s.DrawCircle(cx, cy, size/4*scale, EyeCore, alpha)
	s.DrawCircle(cx, cy, size/8*scale, Pupil, alpha)
}

// centeredWidthRatio 居中文本最多占用的表面宽度比例
const centeredWidthRatio = 0.9

// DrawCentered 在表面中心绘制文本，超出宽度时在空格处换行，各行整体垂直居中
func DrawCentered(s Surface, text string, style TextStyle, c color.RGBA, alpha float64) {
	if alpha <= 0 || text == "" {
		return
	}
	cx, cy := Center(s)
	w, _ := s.Size()
	measure := func(line string) float64 { return s.MeasureText(line, style) }

	lines := utils.WrapText(text, measure, w*centeredWidthRatio)
	lh := s.LineHeight(style)
	top := cy - lh*float64(len(lines))/2
	for i, line := range lines {
		lw := measure(line)
		s.DrawText(line, cx-lw/2, top+lh*float64(i), style, c, alpha)
	}
}

// DrawOverlay 绘制黑色遮罩
func DrawOverlay(s Surface, alpha float64) {
	if alpha <= 0 {
		return
	}
	s.Fill(Black, alpha)
}

// DrawQuestion 在中线上方一行处绘制提示问题
func DrawQuestion(s Surface, question string, style TextStyle, alpha float64) {
	if alpha <= 0 || question == "" {
		return
	}
	cx, cy := Center(s)
	qw := s.MeasureText(question, style)
	s.DrawText(question, cx-qw/2, cy-s.LineHeight(style), style, PurpleGlow, alpha)
}

// DrawPrompt 绘制退出提示：问题在中线上方，输入内容（带闪烁光标）在下方
func DrawPrompt(s Surface, p *input.Prompt, now time.Duration, style TextStyle) {
	DrawQuestion(s, p.Question, style, animation.MaxAlpha)

	cx, cy := Center(s)
	lh := s.LineHeight(style)

	answer := p.DisplayText(now)
	if answer == "" {
		return
	}
	plain := TextStyle{Size: style.Size}
	aw := s.MeasureText(answer, plain)
	s.DrawText(answer, cx-aw/2, cy+lh/4, plain, White, animation.MaxAlpha)
}
