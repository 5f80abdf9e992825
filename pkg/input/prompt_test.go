package input

import (
	"testing"
	"time"
)

const ms = time.Millisecond

func TestPrompt_Submit(t *testing.T) {
	p := NewPrompt("You want to see the light?")
	p.Start(0)

	res := p.HandleAll(Typed("  Yes "), 10*ms)
	if res != Submitted {
		t.Fatalf("期望 Submitted，实际 %v", res)
	}
	if p.Answer() != "yes" {
		t.Errorf("回答应被去空白并转小写，实际 %q", p.Answer())
	}
	if !IsAffirmative(p.Answer()) {
		t.Error("Yes 应为肯定回答")
	}
}

func TestPrompt_Backspace(t *testing.T) {
	p := NewPrompt("?")
	p.Start(0)

	for _, ev := range []Event{RuneEvent('n'), RuneEvent('o'), Key(KeyBackspace), Key(KeyBackspace), Key(KeyBackspace), RuneEvent('y')} {
		p.Handle(ev, 0)
	}
	if p.Text() != "y" {
		t.Errorf("期望 \"y\"，实际 %q", p.Text())
	}
}

func TestPrompt_TerminalResults(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want Result
	}{
		{"Esc", Key(KeyEscape), Escaped},
		{"Quit", Key(Quit), QuitRequested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompt("?")
			p.Start(0)
			if got := p.Handle(tt.ev, 0); got != tt.want {
				t.Fatalf("期望 %v，实际 %v", tt.want, got)
			}
			// 结果确定后忽略后续事件
			if got := p.Handle(Key(KeyEnter), 0); got != tt.want {
				t.Errorf("结果不应再改变，实际 %v", got)
			}
		})
	}
}

func TestPrompt_IgnoresNonPrintable(t *testing.T) {
	p := NewPrompt("?")
	p.Start(0)
	p.Handle(RuneEvent('\x07'), 0)
	p.Handle(RuneEvent('a'), 0)
	if p.Text() != "a" {
		t.Errorf("不可打印字符应被忽略，实际 %q", p.Text())
	}
}

func TestPrompt_MaxLength(t *testing.T) {
	p := NewPrompt("?")
	p.MaxLength = 3
	p.Start(0)
	p.HandleAll([]Event{RuneEvent('a'), RuneEvent('b'), RuneEvent('c'), RuneEvent('d')}, 0)
	if p.Text() != "abc" {
		t.Errorf("期望截断为 abc，实际 %q", p.Text())
	}
}

// TestPrompt_CursorBlink 测试光标每 500ms 切换一次，输入时重置
func TestPrompt_CursorBlink(t *testing.T) {
	p := NewPrompt("?")
	p.Start(0)

	checks := []struct {
		now  time.Duration
		want bool
	}{
		{0, true},
		{499 * ms, true},
		{500 * ms, false},
		{999 * ms, false},
		{1000 * ms, true},
	}
	for _, c := range checks {
		if got := p.CursorVisible(c.now); got != c.want {
			t.Errorf("CursorVisible(%v) = %v, 期望 %v", c.now, got, c.want)
		}
	}

	p.Handle(RuneEvent('x'), 700*ms)
	if !p.CursorVisible(700 * ms) {
		t.Error("输入后光标应立即可见")
	}
	if p.DisplayText(700*ms) != "x_" {
		t.Errorf("期望显示 \"x_\"，实际 %q", p.DisplayText(700*ms))
	}
}

func TestHasQuit(t *testing.T) {
	if HasQuit(Typed("abc")) {
		t.Error("普通输入不应包含退出")
	}
	if !HasQuit([]Event{RuneEvent('a'), Key(Quit)}) {
		t.Error("应检测到退出事件")
	}
}
