package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/ghosthorror/internal/system"
	"github.com/decker502/ghosthorror/pkg/input"
	"github.com/decker502/ghosthorror/pkg/render"
)

// Stage 序列阶段
type Stage int

const (
	// StageIdle 尚未开始
	StageIdle Stage = iota
	// StageIntro 开场序列（只运行一次）
	StageIntro
	// StageProcess 外部程序运行中，序列暂停
	StageProcess
	// StageExit 退出提示与分支消息
	StageExit
	// StageDone 结束
	StageDone
)

// String 返回阶段名称
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageIntro:
		return "intro"
	case StageProcess:
		return "process"
	case StageExit:
		return "exit"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// ProcessRunner 外部程序生命周期
type ProcessRunner interface {
	// CheckRequirements 检查外部程序和终端是否可用
	CheckRequirements() (bool, string)

	// Launch 在 cwd 中启动
	Launch(cwd string) error

	// WaitContext 等待退出，ctx 结束时返回 ctx.Err()
	WaitContext(ctx context.Context) (int, error)

	// Terminate 先尝试优雅终止，超时后强制杀死
	Terminate(timeout time.Duration) error

	// Running 是否仍在运行
	Running() bool
}

// KeyboardGrabber 开场期间的键盘独占
type KeyboardGrabber interface {
	Grab() error
	Release() error
}

// NopGrabber 不做任何事的键盘独占
type NopGrabber struct{}

// Grab 无操作
func (NopGrabber) Grab() error { return nil }

// Release 无操作
func (NopGrabber) Release() error { return nil }

// RunnerFactory 每次启动前创建新的外部程序管理器（读取最新设置）
type RunnerFactory func() (ProcessRunner, error)

// SequencerOptions 序列器依赖
type SequencerOptions struct {
	// Builder 构建各段序列
	Builder *Builder

	// NewRunner 外部程序管理器工厂
	NewRunner RunnerFactory

	// WorkDir 返回外部程序的工作目录
	WorkDir func() string

	// TerminateTimeout 终止外部程序时的等待时间，默认 5 秒
	TerminateTimeout time.Duration

	// Grabber 键盘独占，默认 NopGrabber
	Grabber KeyboardGrabber

	// Sound 音效，默认 NopSound
	Sound SoundSink

	// SkipIntro 跳过开场直接启动外部程序
	SkipIntro bool
}

// Sequencer 时间轴序列器
//
// 状态机：开场 → 外部程序 → 退出提示 →（肯定）告别 → 结束
//
//	                                  ↘（否定）拒绝 → 外部程序 ...
//
// 所有方法都在同一个 goroutine 中调用；AwaitProcess 是唯一的长时间阻塞点。
type Sequencer struct {
	opts  SequencerOptions
	state *SequencerState
	stage Stage

	timeline *Timeline
	prompt   *PromptStep
	branched bool
	terminal bool

	runner  ProcessRunner
	next    ProcessRunner // 启动检查时创建，首次启动复用
	grabbed bool
	closed  bool
	lastNow time.Duration
	log     *log.Logger
}

// NewSequencer 创建序列器
func NewSequencer(state *SequencerState, opts SequencerOptions) *Sequencer {
	if opts.Grabber == nil {
		opts.Grabber = NopGrabber{}
	}
	if opts.Sound == nil {
		opts.Sound = NopSound{}
	}
	if opts.TerminateTimeout <= 0 {
		opts.TerminateTimeout = 5 * time.Second
	}
	if opts.WorkDir == nil {
		opts.WorkDir = func() string { return "" }
	}
	return &Sequencer{
		opts:  opts,
		state: state,
		log:   system.Tagged("Sequencer"),
	}
}

// State 运行状态
func (s *Sequencer) State() *SequencerState {
	return s.state
}

// Stage 当前阶段
func (s *Sequencer) Stage() Stage {
	return s.stage
}

// Start 独占键盘并开始开场序列
func (s *Sequencer) Start(now time.Duration) error {
	if s.stage != StageIdle {
		return nil
	}
	s.lastNow = now

	if s.opts.SkipIntro {
		s.log.Info("skipping intro")
		s.enterProcess()
		return s.state.Err()
	}

	runner, err := s.checkRunner()
	if err != nil {
		s.state.Fail(err)
		return err
	}
	s.next = runner

	intro, err := s.opts.Builder.Intro()
	if err != nil {
		s.state.Fail(err)
		return err
	}
	intro.SetSound(s.opts.Sound)

	if err := s.opts.Grabber.Grab(); err != nil {
		s.log.Warn("keyboard grab failed, continuing without suppression", "err", err)
	} else {
		s.grabbed = true
	}

	s.timeline = intro
	s.stage = StageIntro
	s.log.Info("intro started")
	return nil
}

// Update 推进一帧
//
// 在事件中发现退出请求时立即停止，本帧不再推进任何动画。
func (s *Sequencer) Update(now time.Duration, events []input.Event) {
	if !s.state.Running() {
		return
	}
	s.lastNow = now

	if input.HasQuit(events) {
		s.log.Info("quit requested", "stage", s.stage)
		s.state.Stop(StopQuit)
		return
	}

	frame := Frame{Now: now, Events: events}
	switch s.stage {
	case StageIntro:
		if s.timeline.Update(frame) {
			s.log.Info("intro finished")
			s.enterProcess()
		}

	case StageExit:
		done := s.timeline.Update(frame)
		if !s.branched && s.prompt.Result() != input.Pending {
			s.branch()
			return
		}
		if done && s.branched {
			s.finishExit()
		}
	}
}

// branch 根据提示结果决定下一步
func (s *Sequencer) branch() {
	s.branched = true

	switch s.prompt.Result() {
	case input.Escaped:
		s.log.Info("escape pressed, leaving")
		s.state.Stop(StopEscape)
		return
	case input.QuitRequested:
		s.state.Stop(StopQuit)
		return
	}

	answer := s.prompt.Answer()
	var (
		msg *AnimateStep
		err error
	)
	if s.opts.Builder.Affirmatives().Contains(answer) {
		s.terminal = true
		msg, err = s.opts.Builder.Farewell()
	} else {
		s.terminal = false
		msg, err = s.opts.Builder.Rejection()
	}
	if err != nil {
		s.state.Fail(err)
		return
	}

	s.log.Info("prompt answered", "answer", answer, "terminal", s.terminal)
	s.timeline.Append(msg)
}

func (s *Sequencer) finishExit() {
	if s.terminal {
		s.log.Info("farewell shown, leaving")
		s.stage = StageDone
		s.state.Stop(StopFarewell)
		return
	}
	s.log.Info("returning to program")
	s.enterProcess()
}

// enterProcess 释放键盘并启动外部程序
func (s *Sequencer) enterProcess() {
	s.releaseGrab()
	s.opts.Sound.StopAll()
	s.timeline = nil
	s.prompt = nil

	runner := s.next
	s.next = nil
	if runner == nil {
		var err error
		if runner, err = s.opts.NewRunner(); err != nil {
			s.state.Fail(fmt.Errorf("%w: %v", ErrEnvironmentUnavailable, err))
			return
		}
	}
	if ok, msg := runner.CheckRequirements(); !ok {
		s.state.Fail(fmt.Errorf("%w: %s", ErrEnvironmentUnavailable, msg))
		return
	}

	cwd := s.opts.WorkDir()
	if err := runner.Launch(cwd); err != nil {
		s.state.Fail(fmt.Errorf("%w: launch: %v", ErrExternalProcess, err))
		return
	}

	s.runner = runner
	s.stage = StageProcess
	s.log.Info("waiting for program to exit", "cwd", cwd)
}

// checkRunner 创建运行器并检查程序和终端
func (s *Sequencer) checkRunner() (ProcessRunner, error) {
	runner, err := s.opts.NewRunner()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvironmentUnavailable, err)
	}
	if ok, msg := runner.CheckRequirements(); !ok {
		return nil, fmt.Errorf("%w: %s", ErrEnvironmentUnavailable, msg)
	}
	return runner, nil
}

// Paused 是否在等待外部程序
func (s *Sequencer) Paused() bool {
	return s.state.Running() && s.stage == StageProcess
}

// AwaitProcess 阻塞等待外部程序退出
//
// ctx 结束时返回 false（程序仍在运行，调用方稍后再等）；
// 程序退出后构建退出序列并返回 true。
func (s *Sequencer) AwaitProcess(ctx context.Context) bool {
	if s.stage != StageProcess || s.runner == nil {
		return true
	}

	code, err := s.runner.WaitContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		s.state.Fail(fmt.Errorf("%w: %v", ErrExternalProcess, err))
		return true
	}

	s.log.Info("program exited", "code", code)
	s.runner = nil
	s.enterExit()
	return true
}

// enterExit 构建退出序列
// 不独占键盘：提示需要输入
func (s *Sequencer) enterExit() {
	timeline, prompt, err := s.opts.Builder.Exit()
	if err != nil {
		s.state.Fail(err)
		return
	}
	timeline.SetSound(s.opts.Sound)

	s.timeline = timeline
	s.prompt = prompt
	s.branched = false
	s.terminal = false
	s.stage = StageExit
}

// Draw 清屏并绘制当前步骤
func (s *Sequencer) Draw(surface render.Surface) {
	surface.Clear(render.Black)
	if s.timeline != nil {
		s.timeline.Draw(surface, s.lastNow)
	}
}

// Close 在所有退出路径上释放资源：终止外部程序、释放键盘
func (s *Sequencer) Close() {
	if s.closed {
		return
	}
	s.closed = true

	if s.runner != nil && s.runner.Running() {
		s.log.Info("terminating program", "timeout", s.opts.TerminateTimeout)
		if err := s.runner.Terminate(s.opts.TerminateTimeout); err != nil {
			s.log.Warn("terminate failed", "err", err)
		}
	}
	s.releaseGrab()
	s.opts.Sound.StopAll()
	s.stage = StageDone
}

func (s *Sequencer) releaseGrab() {
	if !s.grabbed {
		return
	}
	if err := s.opts.Grabber.Release(); err != nil {
		s.log.Warn("keyboard release failed", "err", err)
	}
	s.grabbed = false
}
