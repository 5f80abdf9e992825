package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/ghosthorror/internal/system"
	"github.com/decker502/ghosthorror/pkg/clock"
	"github.com/decker502/ghosthorror/pkg/game"
	"github.com/decker502/ghosthorror/pkg/input"
	"github.com/decker502/ghosthorror/pkg/render"
)

// TerminalConfig 终端模式配置
type TerminalConfig struct {
	Config

	// Screen tcell 屏幕，为空时创建真实终端屏幕
	Screen tcell.Screen

	// Sleep 帧间等待，为空时使用 time.Sleep（测试时配合 FakeClock 推进时间）
	Sleep func(time.Duration)
}

// RunTerminal 在当前终端中运行序列，直到结束或 ctx 取消
//
// 外部程序运行期间挂起屏幕（交还终端），程序退出后恢复。
func RunTerminal(ctx context.Context, cfg TerminalConfig) error {
	cfg.defaults()
	logger := system.Tagged("Terminal")

	screen := cfg.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	surface := render.NewTerminalSurface(screen)
	opts := cfg.Sequencer
	opts.Builder = game.NewBuilder(cfg.Timeline, surface)
	seq := game.NewSequencer(cfg.State, opts)
	defer seq.Close()

	// done 关闭后读取协程不再向 events 投递，避免在退出后阻塞
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	var pumpOpts []clock.PumpOption
	if cfg.Sleep != nil {
		pumpOpts = append(pumpOpts, clock.WithSleeper(cfg.Sleep))
	}
	pump := clock.NewPump(cfg.Clock, cfg.TPS, pumpOpts...)
	if err := seq.Start(cfg.Clock.Now()); err != nil {
		return err
	}

	state := cfg.State
	for state.Running() {
		if ctx.Err() != nil {
			state.Stop(game.StopInterrupt)
			break
		}
		pump.Tick()

		frame, resized := drain(events)
		if resized {
			surface.Resize()
		}

		if seq.Paused() {
			logger.Debug("suspending screen while program runs")
			if err := screen.Suspend(); err != nil {
				logger.Warn("suspend failed", "err", err)
			}
			seq.AwaitProcess(ctx)
			if err := screen.Resume(); err != nil {
				logger.Warn("resume failed", "err", err)
			}
			surface.Resize()
			continue
		}

		seq.Update(cfg.Clock.Now(), frame)
		seq.Draw(surface)
		if err := surface.Present(); err != nil {
			return err
		}
	}

	seq.Close()
	return state.Err()
}

// drain 取出所有待处理的事件，不阻塞
func drain(events <-chan tcell.Event) ([]input.Event, bool) {
	var (
		out     []input.Event
		resized bool
	)
	for {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				resized = true
				continue
			}
			if e, ok := translateEvent(ev); ok {
				out = append(out, e)
			}
		default:
			return out, resized
		}
	}
}
