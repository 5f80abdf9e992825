package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/decker502/ghosthorror/internal/grab"
	"github.com/decker502/ghosthorror/internal/launcher"
	"github.com/decker502/ghosthorror/internal/system"
	"github.com/decker502/ghosthorror/pkg/app"
	"github.com/decker502/ghosthorror/pkg/config"
	"github.com/decker502/ghosthorror/pkg/game"
	"github.com/decker502/ghosthorror/pkg/render"
)

// resolveMode auto 模式下有图形显示时使用窗口
func resolveMode(mode string, hasDisplay bool) string {
	if mode != config.ModeAuto {
		return mode
	}
	if hasDisplay {
		return config.ModeWindow
	}
	return config.ModeTerminal
}

// newRunnerFactory 每次启动都读取最新设置
func newRunnerFactory(store *config.SettingsStore) game.RunnerFactory {
	logger := system.Tagged("Main")
	return func() (game.ProcessRunner, error) {
		s := store.Load()
		l := launcher.New(launcher.Options{
			Program:     s.Program,
			ProgramArgs: s.ProgramArgs,
			Terminal:    s.Terminal,
		})
		logger.Debug("runner created", "program", s.Program, launcher.SessionEnv, l.ID())
		return l, nil
	}
}

// checkEnvironment 启动前检查外部程序和终端，缺失时直接退出
func checkEnvironment(factory game.RunnerFactory) error {
	runner, err := factory()
	if err != nil {
		return fmt.Errorf("%w: %v", game.ErrEnvironmentUnavailable, err)
	}
	if ok, msg := runner.CheckRequirements(); !ok {
		return fmt.Errorf("%w: %s", game.ErrEnvironmentUnavailable, msg)
	}
	return nil
}

// sequencerOptions 组装序列器依赖
func sequencerOptions(s config.Settings, store *config.SettingsStore, grabber game.KeyboardGrabber) game.SequencerOptions {
	return game.SequencerOptions{
		NewRunner: newRunnerFactory(store),
		WorkDir: func() string {
			current := store.Load()
			return current.ResolveWorkDir()
		},
		TerminateTimeout: s.TerminateTimeout,
		Grabber:          grabber,
		SkipIntro:        s.SkipIntro,
	}
}

func run(ctx context.Context, v *viper.Viper, stderr io.Writer) error {
	settings, err := config.DecodeSettings(v)
	if err != nil {
		return err
	}
	system.SetVerbose(settings.Verbose)
	logger := system.Tagged("Main")

	store := config.NewSettingsStore(settings)
	if store.Watch(v, nil) {
		logger.Debug("watching settings", "file", v.ConfigFileUsed())
	}

	if err := checkEnvironment(newRunnerFactory(store)); err != nil {
		return err
	}

	timeline, err := config.LoadTimelineConfig(settings.Timeline)
	if err != nil {
		return err
	}

	mode := resolveMode(settings.Mode, grab.HasDisplay(nil))

	var (
		grabber  game.KeyboardGrabber = game.NopGrabber{}
		warnings []string
	)
	switch {
	case !settings.GrabKeyboard || mode != config.ModeWindow:
	case grab.IsX11(nil):
		grabber = grab.NewX11Keyboard()
	default:
		warnings = append(warnings, "not running on X11, keyboard grab disabled")
	}
	printBanner(stderr, settings, mode, warnings)

	state := game.NewSequencerState()
	defer func() {
		logger.Info("stopped", "reason", state.Reason())
	}()

	cfg := app.Config{
		State:      state,
		Timeline:   timeline,
		Sequencer:  sequencerOptions(settings, store, grabber),
		TPS:        settings.TPS,
		Fullscreen: settings.Fullscreen,
	}

	switch mode {
	case config.ModeWindow:
		fonts, err := render.NewFontManager(settings.Font, render.DefaultFontDirs())
		if err != nil {
			return err
		}
		cfg.Fonts = fonts
		a, err := app.NewApp(ctx, cfg)
		if err != nil {
			return err
		}
		return a.Run()

	case config.ModeTerminal:
		return app.RunTerminal(ctx, app.TerminalConfig{Config: cfg})
	}
	return fmt.Errorf("unknown mode %q", mode)
}
