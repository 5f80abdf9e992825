package render

import (
	"image/color"
	"unicode/utf8"
)

// Op 一次绘制调用
type Op struct {
	Kind  string // clear / fill / text / circle / present
	Text  string
	X, Y  float64
	R     float64
	Color color.RGBA
	Alpha float64
}

// RecordingSurface 记录所有绘制调用的表面
// 文本宽度按 字符数 * 字号/2 估算，行高取字号
type RecordingSurface struct {
	W, H     float64
	Ops      []Op
	Presents int
}

// NewRecordingSurface 创建记录表面
func NewRecordingSurface(w, h float64) *RecordingSurface {
	return &RecordingSurface{W: w, H: h}
}

// Size 表面尺寸
func (s *RecordingSurface) Size() (float64, float64) {
	return s.W, s.H
}

// Clear 记录清屏
func (s *RecordingSurface) Clear(c color.RGBA) {
	s.Ops = append(s.Ops, Op{Kind: "clear", Color: c})
}

// Fill 记录遮罩
func (s *RecordingSurface) Fill(c color.RGBA, alpha float64) {
	s.Ops = append(s.Ops, Op{Kind: "fill", Color: c, Alpha: alpha})
}

// DrawText 记录文本
func (s *RecordingSurface) DrawText(str string, x, y float64, style TextStyle, c color.RGBA, alpha float64) float64 {
	s.Ops = append(s.Ops, Op{Kind: "text", Text: str, X: x, Y: y, Color: c, Alpha: alpha})
	return s.MeasureText(str, style)
}

// DrawCircle 记录圆
func (s *RecordingSurface) DrawCircle(cx, cy, r float64, c color.RGBA, alpha float64) {
	s.Ops = append(s.Ops, Op{Kind: "circle", X: cx, Y: cy, R: r, Color: c, Alpha: alpha})
}

// MeasureText 估算宽度
func (s *RecordingSurface) MeasureText(str string, style TextStyle) float64 {
	return float64(utf8.RuneCountInString(str)) * style.Size / 2
}

// LineHeight 行高取字号
func (s *RecordingSurface) LineHeight(style TextStyle) float64 {
	return style.Size
}

// Present 记录提交
func (s *RecordingSurface) Present() error {
	s.Presents++
	s.Ops = append(s.Ops, Op{Kind: "present"})
	return nil
}

// Reset 清空记录
func (s *RecordingSurface) Reset() {
	s.Ops = s.Ops[:0]
}

// Count 统计某类调用次数
func (s *RecordingSurface) Count(kind string) int {
	n := 0
	for _, op := range s.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts 返回所有文本调用的内容
func (s *RecordingSurface) Texts() []string {
	var out []string
	for _, op := range s.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}
