package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/ghosthorror/pkg/input"
)

// 退格键长按重复：按住 repeatDelay 帧后每 repeatInterval 帧重复一次
const (
	repeatDelay    = 30
	repeatInterval = 4
)

// repeating 按键是否应在本帧触发（按下的第一帧或长按重复）
func repeating(duration int) bool {
	if duration == 1 {
		return true
	}
	return duration >= repeatDelay && (duration-repeatDelay)%repeatInterval == 0
}

// keyState 一帧内采集到的按键
type keyState struct {
	chars     []rune
	backspace int // 按住的帧数，0 表示未按下
	enter     bool
	escape    bool
}

// events 把一帧的按键转换为输入事件：先字符，再编辑键
func (k keyState) events() []input.Event {
	var out []input.Event
	for _, r := range k.chars {
		out = append(out, input.RuneEvent(r))
	}
	if k.backspace > 0 && repeating(k.backspace) {
		out = append(out, input.Key(input.KeyBackspace))
	}
	if k.enter {
		out = append(out, input.Key(input.KeyEnter))
	}
	if k.escape {
		out = append(out, input.Key(input.KeyEscape))
	}
	return out
}

// keyReader 从 Ebitengine 读取键盘输入
type keyReader struct {
	buf []rune
}

func newKeyReader() *keyReader {
	return &keyReader{}
}

// Read 读取本帧输入
func (r *keyReader) Read() []input.Event {
	r.buf = ebiten.AppendInputChars(r.buf[:0])
	return keyState{
		chars:     r.buf,
		backspace: inpututil.KeyPressDuration(ebiten.KeyBackspace),
		enter:     inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
		escape:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}.events()
}

// Reset 丢弃缓冲
func (r *keyReader) Reset() {
	r.buf = r.buf[:0]
}

// translateEvent 把 tcell 事件转换为输入事件
func translateEvent(ev tcell.Event) (input.Event, bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return input.Event{}, false
	}
	switch key.Key() {
	case tcell.KeyCtrlC:
		return input.Key(input.Quit), true
	case tcell.KeyEscape:
		return input.Key(input.KeyEscape), true
	case tcell.KeyEnter:
		return input.Key(input.KeyEnter), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.Key(input.KeyBackspace), true
	case tcell.KeyRune:
		return input.RuneEvent(key.Rune()), true
	}
	return input.Event{}, false
}
