// Package launcher 在终端模拟器中启动外部程序并管理其生命周期
//
// 程序在新会话中启动（脱离当前进程组），标准输出和错误被丢弃，
// 工作目录默认为用户主目录。终止时先发送 SIGTERM，超时后 SIGKILL。
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/decker502/ghosthorror/internal/system"
)

// DefaultProgram 默认启动的程序
const DefaultProgram = "ekphos"

// SessionEnv 传给被启动程序的会话标识环境变量
const SessionEnv = "GHOST_HORROR_SESSION"

var (
	// ErrProgramNotFound 程序不在 PATH 中
	ErrProgramNotFound = errors.New("program not found")

	// ErrNoTerminal 没有可用的终端模拟器
	ErrNoTerminal = errors.New("no terminal emulator found")

	// ErrNotStarted 程序尚未启动
	ErrNotStarted = errors.New("program not started")

	// ErrAlreadyRunning 程序已在运行
	ErrAlreadyRunning = errors.New("program already running")

	// ErrProcessKilled 程序被信号杀死
	ErrProcessKilled = errors.New("program was killed")
)

// Options 启动选项
type Options struct {
	// Program 程序名，默认 DefaultProgram
	Program string

	// ProgramArgs 程序参数
	ProgramArgs []string

	// Terminal 首选终端，为空时自动检测
	Terminal string

	// InstallHint 程序缺失时的提示，为空时自动生成
	InstallHint string

	// LookPath 可执行文件查找函数，默认 exec.LookPath
	LookPath LookPathFunc
}

// InstallHint 返回程序缺失时的提示
func InstallHint(program string) string {
	if program == DefaultProgram {
		return "Ekphos not found! Install with: cargo install ekphos"
	}
	return fmt.Sprintf("%s not found in PATH", program)
}

// Launcher 外部程序管理器
//
// 一个 Launcher 同一时刻只管理一个进程；进程退出后可以再次 Launch。
type Launcher struct {
	opts Options
	id   string
	log  *log.Logger

	programPath string
	term        Terminal
	termFound   bool

	mu      sync.Mutex
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

// New 创建管理器
func New(opts Options) *Launcher {
	if opts.Program == "" {
		opts.Program = DefaultProgram
	}
	if opts.LookPath == nil {
		opts.LookPath = DefaultLookPath
	}
	if opts.InstallHint == "" {
		opts.InstallHint = InstallHint(opts.Program)
	}
	id := uuid.NewString()
	return &Launcher{
		opts: opts,
		id:   id,
		log:  system.Tagged("Launcher").With("session", id[:8]),
	}
}

// ID 本次会话的标识
func (l *Launcher) ID() string {
	return l.id
}

// CheckRequirements 检查程序和终端是否可用
func (l *Launcher) CheckRequirements() (bool, string) {
	path, err := l.opts.LookPath(l.opts.Program)
	if err != nil {
		return false, l.opts.InstallHint
	}
	l.programPath = path

	l.term, l.termFound = FindTerminal(l.opts.Terminal, l.opts.LookPath)
	if !l.termFound {
		if l.opts.Terminal != "" {
			return false, fmt.Sprintf("Terminal %q not found!", l.opts.Terminal)
		}
		return false, "No terminal emulator found!"
	}
	return true, fmt.Sprintf("Ready to launch with %s", l.term.Name)
}

// Launch 在终端中启动程序
func (l *Launcher) Launch(cwd string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cmd != nil && !l.exited() {
		return ErrAlreadyRunning
	}

	if !l.termFound {
		l.term, l.termFound = FindTerminal(l.opts.Terminal, l.opts.LookPath)
		if !l.termFound {
			return ErrNoTerminal
		}
	}
	program := l.programPath
	if program == "" {
		path, err := l.opts.LookPath(l.opts.Program)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrProgramNotFound, l.opts.Program)
		}
		program = path
		l.programPath = path
	}

	argv := l.term.Command(append([]string{program}, l.opts.ProgramArgs...)...)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = cwd
	cmd.Env = append(os.Environ(), SessionEnv+"="+l.id)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.term.Name, err)
	}

	done := make(chan struct{})
	l.cmd = cmd
	l.done = done
	l.waitErr = nil
	go func() {
		err := cmd.Wait()
		l.mu.Lock()
		l.waitErr = err
		l.mu.Unlock()
		close(done)
	}()

	l.log.Info("launched", "pid", cmd.Process.Pid, "cmd", strings.Join(argv, " "), "cwd", cwd)
	return nil
}

// exited 调用方需持有 mu
func (l *Launcher) exited() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Running 程序是否仍在运行
func (l *Launcher) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cmd != nil && !l.exited()
}

// Wait 阻塞等待程序退出
func (l *Launcher) Wait() (int, error) {
	return l.WaitContext(context.Background())
}

// WaitContext 等待程序退出，返回退出码
//
// 正常退出（包括非零退出码）返回 nil 错误；被信号杀死返回 ErrProcessKilled。
// ctx 结束时返回 ctx.Err()，程序继续运行。
func (l *Launcher) WaitContext(ctx context.Context) (int, error) {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()
	if done == nil {
		return -1, ErrNotStarted
	}

	select {
	case <-done:
	case <-ctx.Done():
		return -1, ctx.Err()
	}

	l.mu.Lock()
	err := l.waitErr
	l.mu.Unlock()
	return exitStatus(err)
}

func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return -1, fmt.Errorf("%w: %v", ErrProcessKilled, err)
	}
	return -1, err
}

// Terminate 终止程序：先 SIGTERM，timeout 内未退出则 SIGKILL
func (l *Launcher) Terminate(timeout time.Duration) error {
	l.mu.Lock()
	cmd, done := l.cmd, l.done
	running := cmd != nil && !l.exited()
	l.mu.Unlock()
	if !running {
		return nil
	}

	if err := terminate(cmd); err != nil {
		l.log.Warn("terminate signal failed", "err", err)
	}

	select {
	case <-done:
		l.log.Info("terminated")
		return nil
	case <-time.After(timeout):
	}

	l.log.Warn("program ignored terminate, killing", "timeout", timeout)
	if err := kill(cmd); err != nil {
		return fmt.Errorf("failed to kill program: %w", err)
	}
	<-done
	return nil
}
