// Package input 提供退出提示所需的离散按键事件模型
//
// 驱动层（ebiten / tcell）把原始设备状态翻译为 Event，
// 提示框只消费这个不透明的事件流。
package input

// Kind 按键事件类型
type Kind int

const (
	// KeyRune 可打印字符
	KeyRune Kind = iota
	// KeyBackspace 退格
	KeyBackspace
	// KeyEnter 回车提交
	KeyEnter
	// KeyEscape 紧急退出
	KeyEscape
	// Quit 环境请求终止（关闭窗口、Ctrl+C）
	Quit
)

// String 返回事件类型名称
func (k Kind) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyBackspace:
		return "backspace"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event 一个离散按键事件
type Event struct {
	Kind Kind
	Rune rune // 仅 KeyRune 有效
}

// RuneEvent 构造字符事件
func RuneEvent(r rune) Event {
	return Event{Kind: KeyRune, Rune: r}
}

// Key 构造非字符事件
func Key(k Kind) Event {
	return Event{Kind: k}
}

// Typed 把字符串展开为一串字符事件，末尾追加回车（测试与脚本回放用）
func Typed(s string) []Event {
	events := make([]Event, 0, len(s)+1)
	for _, r := range s {
		events = append(events, RuneEvent(r))
	}
	return append(events, Key(KeyEnter))
}

// HasQuit 事件流中是否包含退出请求
func HasQuit(events []Event) bool {
	for _, ev := range events {
		if ev.Kind == Quit {
			return true
		}
	}
	return false
}
