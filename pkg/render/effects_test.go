package render

import (
	"testing"
	"time"

	"github.com/decker502/ghosthorror/pkg/animation"
	"github.com/decker502/ghosthorror/pkg/input"
)

// TestDrawTextReveal 测试只绘制已显示的字形，并绘制血滴
func TestDrawTextReveal(t *testing.T) {
	s := NewRecordingSurface(800, 600)
	style := TextStyle{Size: 40, Horror: true}

	tr, err := animation.NewTextReveal(animation.DefaultTextRevealConfig("You"), RevealLayout(s, style))
	if err != nil {
		t.Fatalf("NewTextReveal failed: %v", err)
	}
	tr.Start(0)
	st, _ := tr.Advance(150 * time.Millisecond)

	DrawTextReveal(s, tr, st, style)

	texts := s.Texts()
	if len(texts) != 1 || texts[0] != "Y" {
		t.Fatalf("期望只绘制 \"Y\"，实际 %v", texts)
	}
	if s.Count("circle") != 1 {
		t.Errorf("期望 1 个血滴，实际 %d", s.Count("circle"))
	}

	// 文本宽度 3*20=60，居中于 400
	op := s.Ops[0]
	if op.X != 370 {
		t.Errorf("期望首字形 x=370，实际 %f", op.X)
	}
	if op.Color != BloodRed {
		t.Errorf("期望血红色")
	}
}

// TestDrawEyes 测试每只眼绘制 5 层光晕 + 主体 + 亮核 + 瞳孔
func TestDrawEyes(t *testing.T) {
	s := NewRecordingSurface(1000, 500)
	layout := NewEyesLayout(s, DefaultEyeScale)

	if layout.EyeSize != 40 || layout.Spacing != 100 {
		t.Fatalf("布局错误: %+v", layout)
	}

	DrawEyes(s, layout, animation.VisualState{Alpha: 255, Scale: 1})
	if got := s.Count("circle"); got != 16 {
		t.Fatalf("期望 16 个圆，实际 %d", got)
	}

	// 第一只眼的最外层光晕：半径 20+40，alpha 50-40
	first := s.Ops[0]
	if first.X != 450 || first.R != 60 || first.Alpha != 10 {
		t.Errorf("最外层光晕错误: %+v", first)
	}
	// 瞳孔
	pupil := s.Ops[7]
	if pupil.Color != Pupil || pupil.R != 5 {
		t.Errorf("瞳孔错误: %+v", pupil)
	}
}

func TestDrawEyes_ScaleAndAlpha(t *testing.T) {
	s := NewRecordingSurface(1000, 500)
	layout := NewEyesLayout(s, DefaultEyeScale)

	DrawEyes(s, layout, animation.VisualState{Alpha: 127.5, Scale: 1.05})
	main := s.Ops[5]
	if main.R != 20*1.05 || main.Alpha != 127.5 {
		t.Errorf("主体应按 scale 缩放并使用整体 alpha: %+v", main)
	}
	if glow := s.Ops[4]; glow.Alpha != 42*0.5 {
		t.Errorf("光晕 alpha 应乘以整体透明度，实际 %f", glow.Alpha)
	}

	s.Reset()
	DrawEyes(s, layout, animation.VisualState{Alpha: 0, Scale: 1})
	if len(s.Ops) != 0 {
		t.Error("alpha 为 0 时不应绘制")
	}
}

func TestDrawCenteredAndOverlay(t *testing.T) {
	s := NewRecordingSurface(800, 600)
	DrawCentered(s, "Then Return!", TextStyle{Size: 60}, BloodRed, 200)
	op := s.Ops[0]
	if op.X != 400-12*30/2 || op.Y != 270 || op.Alpha != 200 {
		t.Errorf("居中位置错误: %+v", op)
	}

	s.Reset()
	DrawOverlay(s, 0)
	DrawOverlay(s, 128)
	if s.Count("fill") != 1 || s.Ops[0].Color != Black {
		t.Errorf("期望只绘制一次黑色遮罩")
	}
}

// TestDrawCentered_Wraps 测试窄表面上的长消息换行并整体垂直居中
func TestDrawCentered_Wraps(t *testing.T) {
	s := NewRecordingSurface(400, 600)
	// 每字符 20 像素，最大宽度 360 像素即 18 个字符
	DrawCentered(s, "You live to see another day...", TextStyle{Size: 40}, PurpleGlow, 255)

	texts := s.Texts()
	if len(texts) != 2 || texts[0] != "You live to see" || texts[1] != "another day..." {
		t.Fatalf("期望换成两行，实际 %q", texts)
	}
	if s.Ops[0].Y != 260 || s.Ops[1].Y != 300 {
		t.Errorf("期望两行位于 260 和 300，实际 %f %f", s.Ops[0].Y, s.Ops[1].Y)
	}
	if s.Ops[1].X != 200-14*20/2 {
		t.Errorf("第二行应水平居中，实际 %f", s.Ops[1].X)
	}
}

func TestDrawPrompt(t *testing.T) {
	s := NewRecordingSurface(800, 600)
	p := input.NewPrompt("You want to see the light?")
	p.Start(0)
	p.Handle(input.RuneEvent('n'), 0)

	DrawPrompt(s, p, 0, TextStyle{Size: 36, Horror: true})
	texts := s.Texts()
	if len(texts) != 2 || texts[0] != p.Question || texts[1] != "n_" {
		t.Errorf("期望绘制问题和输入，实际 %v", texts)
	}
	if s.Ops[0].Color != PurpleGlow || s.Ops[1].Color != White {
		t.Error("颜色错误")
	}
}

func TestFontSizeFor(t *testing.T) {
	if got := FontSizeFor(1080, 0.12); got != 129 {
		t.Errorf("期望 129，实际 %f", got)
	}
	if got := FontSizeFor(0, 0.12); got != 1 {
		t.Errorf("字号至少为 1，实际 %f", got)
	}
}
