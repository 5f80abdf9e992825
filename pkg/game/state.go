package game

import "fmt"

// StopReason 序列停止的原因
type StopReason int

const (
	// StopNone 仍在运行
	StopNone StopReason = iota
	// StopQuit 环境请求终止（关闭窗口、Ctrl+C）
	StopQuit
	// StopEscape 退出提示中按下 Esc
	StopEscape
	// StopInterrupt 收到 SIGINT / SIGTERM
	StopInterrupt
	// StopFarewell 用户给出肯定回答，告别消息播放完毕
	StopFarewell
	// StopError 出现不可恢复的错误
	StopError
)

// String 返回原因名称
func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "running"
	case StopQuit:
		return "quit"
	case StopEscape:
		return "escape"
	case StopInterrupt:
		return "interrupt"
	case StopFarewell:
		return "farewell"
	case StopError:
		return "error"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Cancelled 是否属于取消（不是错误，也不是正常结束）
func (r StopReason) Cancelled() bool {
	return r == StopQuit || r == StopEscape || r == StopInterrupt
}

// SequencerState 显式传递的运行状态
//
// running 一旦变为 false 就不会再恢复；第一次停止的原因生效，后续 Stop 被忽略。
type SequencerState struct {
	running bool
	reason  StopReason
	err     error
}

// NewSequencerState 创建运行中的状态
func NewSequencerState() *SequencerState {
	return &SequencerState{running: true}
}

// Running 是否仍在运行
func (s *SequencerState) Running() bool {
	return s.running
}

// Stop 以 reason 停止
func (s *SequencerState) Stop(reason StopReason) {
	if !s.running {
		return
	}
	s.running = false
	s.reason = reason
}

// Fail 以错误停止
func (s *SequencerState) Fail(err error) {
	if !s.running {
		return
	}
	s.Stop(StopError)
	s.err = err
}

// Reason 停止原因
func (s *SequencerState) Reason() StopReason {
	return s.reason
}

// Err 导致停止的错误（取消和正常结束时为 nil）
func (s *SequencerState) Err() error {
	return s.err
}
