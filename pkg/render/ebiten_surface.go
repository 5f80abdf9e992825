package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface 基于 ebiten 的渲染表面
//
// 每帧在 Draw 中通过 Bind 绑定目标图像；Present 为空操作，由 ebiten 负责提交。
type EbitenSurface struct {
	fonts  *FontManager
	target *ebiten.Image
	w, h   float64
}

// NewEbitenSurface 创建表面
func NewEbitenSurface(fonts *FontManager, w, h int) *EbitenSurface {
	return &EbitenSurface{fonts: fonts, w: float64(w), h: float64(h)}
}

// SetSize 更新逻辑尺寸（来自 Layout）
func (s *EbitenSurface) SetSize(w, h int) {
	s.w, s.h = float64(w), float64(h)
}

// Bind 绑定本帧的目标图像
func (s *EbitenSurface) Bind(img *ebiten.Image) {
	s.target = img
	b := img.Bounds()
	s.w, s.h = float64(b.Dx()), float64(b.Dy())
}

// Size 表面尺寸
func (s *EbitenSurface) Size() (float64, float64) {
	return s.w, s.h
}

// Clear 清屏
func (s *EbitenSurface) Clear(c color.RGBA) {
	if s.target == nil {
		return
	}
	s.target.Fill(c)
}

// Fill 叠加半透明纯色
func (s *EbitenSurface) Fill(c color.RGBA, alpha float64) {
	if s.target == nil || alpha <= 0 {
		return
	}
	vector.DrawFilledRect(s.target, 0, 0, float32(s.w), float32(s.h), withAlpha(c, alpha), false)
}

// DrawText 绘制文本
func (s *EbitenSurface) DrawText(str string, x, y float64, style TextStyle, c color.RGBA, alpha float64) float64 {
	face := s.fonts.Face(style)
	width := text.Advance(str, face)
	if s.target == nil || alpha <= 0 {
		return width
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(clampAlpha(alpha) / 255))
	text.Draw(s.target, str, face, op)
	return width
}

// DrawCircle 绘制实心圆
func (s *EbitenSurface) DrawCircle(cx, cy, r float64, c color.RGBA, alpha float64) {
	if s.target == nil || alpha <= 0 || r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(r), withAlpha(c, alpha), true)
}

// MeasureText 文本宽度
func (s *EbitenSurface) MeasureText(str string, style TextStyle) float64 {
	return text.Advance(str, s.fonts.Face(style))
}

// LineHeight 行高取字号
func (s *EbitenSurface) LineHeight(style TextStyle) float64 {
	return s.fonts.Face(style).Size
}

// Present 由 ebiten 提交，无需操作
func (s *EbitenSurface) Present() error {
	return nil
}

// withAlpha 返回预乘 alpha 后的颜色（ebiten 使用预乘颜色）
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := clampAlpha(alpha) / 255
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}
