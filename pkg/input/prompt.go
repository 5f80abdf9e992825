package input

import (
	"time"
	"unicode"
)

// Result 提示框处理事件后的结果
type Result int

const (
	// Pending 尚未提交
	Pending Result = iota
	// Submitted 回车提交，Answer() 可用
	Submitted
	// Escaped 按下 Esc，紧急退出
	Escaped
	// QuitRequested 环境请求终止
	QuitRequested
)

// String 返回结果名称
func (r Result) String() string {
	switch r {
	case Submitted:
		return "submitted"
	case Escaped:
		return "escaped"
	case QuitRequested:
		return "quit"
	default:
		return "pending"
	}
}

// DefaultBlinkInterval 光标闪烁间隔
const DefaultBlinkInterval = 500 * time.Millisecond

// Prompt 退出提示的文本输入框
//
// 没有自己的计时阶段：只维护输入缓冲和光标闪烁。
// 光标可见性是 now 的函数，输入时重置闪烁起点使光标立即可见。
type Prompt struct {
	Question  string
	MaxLength int // 0 表示不限制

	text       []rune
	answer     string
	result     Result
	blinkStart time.Duration
	blink      time.Duration
}

// NewPrompt 创建提示框
func NewPrompt(question string) *Prompt {
	return &Prompt{
		Question:  question,
		MaxLength: 64,
		blink:     DefaultBlinkInterval,
	}
}

// SetBlinkInterval 设置光标闪烁间隔（<= 0 时忽略）
func (p *Prompt) SetBlinkInterval(d time.Duration) {
	if d > 0 {
		p.blink = d
	}
}

// Start 清空输入并以 now 为闪烁起点
func (p *Prompt) Start(now time.Duration) {
	p.text = p.text[:0]
	p.answer = ""
	p.result = Pending
	p.blinkStart = now
}

// Handle 处理一个事件
//
// 一旦得到非 Pending 的结果，后续事件都被忽略。
func (p *Prompt) Handle(ev Event, now time.Duration) Result {
	if p.result != Pending {
		return p.result
	}

	switch ev.Kind {
	case Quit:
		p.result = QuitRequested
	case KeyEscape:
		p.result = Escaped
	case KeyEnter:
		p.answer = normalize(string(p.text))
		p.result = Submitted
	case KeyBackspace:
		if len(p.text) > 0 {
			p.text = p.text[:len(p.text)-1]
		}
		p.blinkStart = now
	case KeyRune:
		if !unicode.IsPrint(ev.Rune) {
			return p.result
		}
		if p.MaxLength > 0 && len(p.text) >= p.MaxLength {
			return p.result
		}
		p.text = append(p.text, ev.Rune)
		p.blinkStart = now
	}
	return p.result
}

// HandleAll 依次处理一批事件，返回最终结果
func (p *Prompt) HandleAll(events []Event, now time.Duration) Result {
	for _, ev := range events {
		if p.Handle(ev, now) != Pending {
			break
		}
	}
	return p.result
}

// Text 当前输入内容
func (p *Prompt) Text() string {
	return string(p.text)
}

// Answer 提交后的回答（已去除首尾空白并转小写）
func (p *Prompt) Answer() string {
	return p.answer
}

// Result 当前结果
func (p *Prompt) Result() Result {
	return p.result
}

// CursorVisible 光标在 now 时是否可见（每个闪烁间隔切换一次）
func (p *Prompt) CursorVisible(now time.Duration) bool {
	elapsed := now - p.blinkStart
	if elapsed < 0 {
		return true
	}
	return (elapsed/p.blink)%2 == 0
}

// DisplayText 带光标的显示文本
func (p *Prompt) DisplayText(now time.Duration) string {
	if p.CursorVisible(now) {
		return string(p.text) + "_"
	}
	return string(p.text)
}
