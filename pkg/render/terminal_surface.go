package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// 终端字符单元对应的虚拟像素尺寸
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

type cell struct {
	r  rune
	fg color.RGBA
	bg color.RGBA
}

// TerminalSurface 基于 tcell 的渲染表面
//
// 对外使用虚拟像素坐标（每个字符单元 8x16），内部维护自己的帧缓冲，
// 在 Present 时一次性写入 tcell 屏幕。字号在终端上没有意义，文本总是占一行。
type TerminalSurface struct {
	screen tcell.Screen
	cols   int
	rows   int
	cells  []cell
	clear  color.RGBA
}

// NewTerminalSurface 在已初始化的屏幕上创建表面
func NewTerminalSurface(screen tcell.Screen) *TerminalSurface {
	s := &TerminalSurface{screen: screen, clear: Black}
	s.Resize()
	return s
}

// Resize 按屏幕当前尺寸重建帧缓冲
func (s *TerminalSurface) Resize() {
	cols, rows := s.screen.Size()
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]cell, cols*rows)
	s.Clear(s.clear)
}

// Size 虚拟像素尺寸
func (s *TerminalSurface) Size() (float64, float64) {
	return float64(s.cols) * CellWidth, float64(s.rows) * CellHeight
}

// Clear 清屏
func (s *TerminalSurface) Clear(c color.RGBA) {
	s.clear = c
	for i := range s.cells {
		s.cells[i] = cell{r: ' ', fg: c, bg: c}
	}
}

// Fill 把每个单元的前景和背景都向 c 混合
func (s *TerminalSurface) Fill(c color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	for i := range s.cells {
		s.cells[i].fg = blend(s.cells[i].fg, c, alpha)
		s.cells[i].bg = blend(s.cells[i].bg, c, alpha)
	}
}

func (s *TerminalSurface) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

// DrawText 在 (x, y) 所在的单元行绘制文本
func (s *TerminalSurface) DrawText(str string, x, y float64, _ TextStyle, c color.RGBA, alpha float64) float64 {
	width := s.MeasureText(str, TextStyle{})
	if alpha <= 0 {
		return width
	}

	col := int(math.Round(x / CellWidth))
	row := int(math.Floor(y/CellHeight + 0.5))
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if cl := s.at(col, row); cl != nil {
			cl.r = r
			cl.fg = blend(cl.bg, c, alpha)
		}
		if w > 1 {
			// 宽字符占用的后续单元不单独绘制
			if cl := s.at(col+1, row); cl != nil {
				cl.r = 0
			}
		}
		if w < 1 {
			w = 1
		}
		col += w
	}
	return width
}

// DrawCircle 把中心落在圆内的单元背景向 c 混合；圆小于一个单元时至少覆盖圆心所在单元
func (s *TerminalSurface) DrawCircle(cx, cy, r float64, c color.RGBA, alpha float64) {
	if alpha <= 0 || r <= 0 {
		return
	}

	minCol := int(math.Floor((cx - r) / CellWidth))
	maxCol := int(math.Floor((cx + r) / CellWidth))
	minRow := int(math.Floor((cy - r) / CellHeight))
	maxRow := int(math.Floor((cy + r) / CellHeight))

	hit := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			px := (float64(col) + 0.5) * CellWidth
			py := (float64(row) + 0.5) * CellHeight
			if math.Hypot(px-cx, py-cy) > r {
				continue
			}
			if cl := s.at(col, row); cl != nil {
				cl.bg = blend(cl.bg, c, alpha)
				hit = true
			}
		}
	}

	if !hit {
		if cl := s.at(int(math.Floor(cx/CellWidth)), int(math.Floor(cy/CellHeight))); cl != nil {
			cl.bg = blend(cl.bg, c, alpha)
		}
	}
}

// MeasureText 文本宽度（按显示宽度换算为虚拟像素）
func (s *TerminalSurface) MeasureText(str string, _ TextStyle) float64 {
	return float64(runewidth.StringWidth(str)) * CellWidth
}

// LineHeight 一个单元的高度
func (s *TerminalSurface) LineHeight(TextStyle) float64 {
	return CellHeight
}

// Present 把帧缓冲写入 tcell 屏幕并显示
func (s *TerminalSurface) Present() error {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			cl := s.cells[row*s.cols+col]
			if cl.r == 0 {
				continue
			}
			style := tcell.StyleDefault.
				Foreground(toTcell(cl.fg)).
				Background(toTcell(cl.bg))
			s.screen.SetContent(col, row, cl.r, nil, style)
		}
	}
	s.screen.Show()
	return nil
}

// CellAt 返回单元内容（测试与调试用）
func (s *TerminalSurface) CellAt(col, row int) (rune, color.RGBA, color.RGBA, bool) {
	cl := s.at(col, row)
	if cl == nil {
		return 0, color.RGBA{}, color.RGBA{}, false
	}
	return cl.r, cl.fg, cl.bg, true
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
