// Package render 定义动画引擎消费的渲染表面，以及把 VisualState 画到表面上的绘制函数
//
// 核心只调用 Surface 接口，从不创建或持有渲染设备。
// 提供三种实现：
//   - EbitenSurface：全屏窗口（text/v2 + vector）
//   - TerminalSurface：终端（tcell），以 8x16 的虚拟像素映射字符单元
//   - RecordingSurface：测试用，记录所有绘制调用
package render

import (
	"image/color"
	"math"
)

// 调色板
var (
	Black      = color.RGBA{0, 0, 0, 255}
	White      = color.RGBA{255, 255, 255, 255}
	PurpleGlow = color.RGBA{138, 43, 226, 255} // BlueViolet
	BloodRed   = color.RGBA{139, 0, 0, 255}
	BloodDrip  = color.RGBA{100, 0, 0, 255}
	EyeCore    = color.RGBA{200, 150, 255, 255}
	Pupil      = color.RGBA{20, 0, 30, 255}
)

// TextStyle 文本样式
type TextStyle struct {
	// Size 字号（像素）
	Size float64
	// Horror 使用恐怖风格字体（找不到时回退到粗体）
	Horror bool
}

// Surface 渲染表面
//
// 坐标单位为像素，原点在左上角；alpha 取值 [0, 255]。
type Surface interface {
	// Size 表面尺寸
	Size() (w, h float64)

	// Clear 用纯色清屏
	Clear(c color.RGBA)

	// Fill 以 alpha 在整个表面上叠加一层纯色（淡出遮罩）
	Fill(c color.RGBA, alpha float64)

	// DrawText 以 (x, y) 为左上角绘制文本，返回绘制宽度
	DrawText(s string, x, y float64, style TextStyle, c color.RGBA, alpha float64) float64

	// DrawCircle 绘制实心圆
	DrawCircle(cx, cy, r float64, c color.RGBA, alpha float64)

	// MeasureText 文本宽度
	MeasureText(s string, style TextStyle) float64

	// LineHeight 该样式一行文字的高度
	LineHeight(style TextStyle) float64

	// Present 提交本帧
	Present() error
}

// FontSizeFor 根据表面高度和比例计算字号，至少为 1
func FontSizeFor(height, scale float64) float64 {
	return math.Max(1, math.Floor(height*scale))
}

// Center 表面中心
func Center(s Surface) (float64, float64) {
	w, h := s.Size()
	return w / 2, h / 2
}

// clampAlpha 把 alpha 限制在 [0, 255]
func clampAlpha(a float64) float64 {
	if math.IsNaN(a) {
		return 0
	}
	return math.Max(0, math.Min(255, a))
}

// blend 按 alpha 把 src 混合到 dst 上
func blend(dst, src color.RGBA, alpha float64) color.RGBA {
	a := clampAlpha(alpha) / 255
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d) + (float64(s)-float64(d))*a))
	}
	return color.RGBA{mix(dst.R, src.R), mix(dst.G, src.G), mix(dst.B, src.B), 255}
}
