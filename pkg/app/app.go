// Package app 把时间轴序列器接到具体的显示后端上
//
// 窗口模式使用 Ebitengine（App 实现 ebiten.Game），终端模式使用 tcell（RunTerminal）。
// 两种模式共用同一个 game.Sequencer；后端只负责采集输入、提供时钟和绘制表面。
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/ghosthorror/internal/system"
	"github.com/decker502/ghosthorror/pkg/clock"
	"github.com/decker502/ghosthorror/pkg/config"
	"github.com/decker502/ghosthorror/pkg/game"
	"github.com/decker502/ghosthorror/pkg/render"
)

// 窗口模式下的默认逻辑尺寸（全屏时由 Layout 改为实际尺寸）
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// Config 应用启动配置
type Config struct {
	// Timeline 时间轴配置
	Timeline *config.TimelineConfig

	// Sequencer 序列器依赖；Builder 由后端根据绘制表面创建
	Sequencer game.SequencerOptions

	// State 共享的运行状态，为空时新建
	State *game.SequencerState

	// Clock 时钟，为空时使用系统时钟
	Clock clock.Clock

	// TPS 更新频率
	TPS int

	// Fullscreen 窗口模式是否全屏
	Fullscreen bool

	// Fonts 窗口模式的字体管理器
	Fonts *render.FontManager
}

func (c *Config) defaults() {
	if c.Timeline == nil {
		c.Timeline = config.DefaultTimelineConfig()
	}
	if c.State == nil {
		c.State = game.NewSequencerState()
	}
	if c.Clock == nil {
		c.Clock = clock.NewSystemClock()
	}
	if c.TPS <= 0 {
		c.TPS = c.Timeline.TickRate
	}
}

// App 窗口模式应用，实现 ebiten.Game 接口
type App struct {
	ctx       context.Context
	cfg       Config
	seq       *game.Sequencer
	surface   *render.EbitenSurface
	keys      *keyReader
	started   bool
	minimized bool
	frame     time.Duration
	log       *log.Logger
}

// NewApp 创建窗口模式应用
//
// ctx 结束（例如收到 SIGINT）时序列以 StopInterrupt 停止。
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	cfg.defaults()
	if cfg.Fonts == nil {
		return nil, errors.New("window mode requires a font manager")
	}

	surface := render.NewEbitenSurface(cfg.Fonts, DefaultWindowWidth, DefaultWindowHeight)
	opts := cfg.Sequencer
	opts.Builder = game.NewBuilder(cfg.Timeline, surface)

	return &App{
		ctx:     ctx,
		cfg:     cfg,
		seq:     game.NewSequencer(cfg.State, opts),
		surface: surface,
		keys:    newKeyReader(),
		frame:   clock.FrameDuration(cfg.TPS),
		log:     system.Tagged("App"),
	}, nil
}

// Sequencer 返回序列器
func (a *App) Sequencer() *game.Sequencer {
	return a.seq
}

// Run 打开窗口并运行到序列结束
func (a *App) Run() error {
	ebiten.SetWindowTitle("Ghost Horror")
	ebiten.SetWindowSize(DefaultWindowWidth, DefaultWindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(a.cfg.Fullscreen)
	ebiten.SetTPS(a.cfg.TPS)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	err := ebiten.RunGame(a)
	a.seq.Close()

	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window loop: %w", err)
	}
	return a.cfg.State.Err()
}

// Update 每个 tick 调用一次
func (a *App) Update() error {
	state := a.cfg.State
	if a.ctx.Err() != nil {
		state.Stop(game.StopInterrupt)
	}
	if ebiten.IsWindowBeingClosed() {
		state.Stop(game.StopQuit)
	}
	if !state.Running() {
		return ebiten.Termination
	}

	now := a.cfg.Clock.Now()
	if !a.started {
		a.started = true
		if err := a.seq.Start(now); err != nil {
			return ebiten.Termination
		}
	}

	if a.seq.Paused() {
		a.waitForProcess()
	} else {
		a.seq.Update(now, a.keys.Read())
	}

	if !state.Running() {
		return ebiten.Termination
	}
	return nil
}

// waitForProcess 程序运行期间缩小窗口，每帧最多阻塞一帧的时间
func (a *App) waitForProcess() {
	if !a.minimized {
		a.minimized = true
		ebiten.SetFullscreen(false)
		ebiten.MinimizeWindow()
		a.log.Debug("window minimized while program runs")
	}

	ctx, cancel := context.WithTimeout(a.ctx, a.frame)
	defer cancel()
	if !a.seq.AwaitProcess(ctx) {
		return
	}

	a.minimized = false
	ebiten.RestoreWindow()
	ebiten.SetFullscreen(a.cfg.Fullscreen)
	a.keys.Reset()
	a.log.Debug("window restored")
}

// Draw 绘制当前帧
func (a *App) Draw(screen *ebiten.Image) {
	a.surface.Bind(screen)
	a.seq.Draw(a.surface)
}

// Layout 逻辑尺寸跟随窗口尺寸，文字大小按屏幕高度缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = DefaultWindowWidth, DefaultWindowHeight
	}
	a.surface.SetSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
