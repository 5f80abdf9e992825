// Package cli 命令行入口
//
// 默认命令运行恐怖开场和外部程序循环；check 检查运行环境；version 打印版本。
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/decker502/ghosthorror/pkg/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "ghosthorror",
	Short: "Ghost horror intro launcher",
	Long: "ghosthorror plays a horror intro, launches a program in a fullscreen terminal\n" +
		"and asks whether you want to see the light when it exits.",
	RunE:          runE,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play the intro and launch the program (default command)",
	RunE:  runE,
}

func runE(cmd *cobra.Command, args []string) error {
	v, err := loadViper(cmd.Flags())
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, v, cmd.ErrOrStderr())
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := rootCmd.PersistentFlags()
	f.StringVar(&configFile, "config", "", "settings file (default "+config.ConfigDir()+"/config.yaml)")
	f.String("mode", config.ModeAuto, "display mode: auto, window or terminal")
	f.String("program", "ekphos", "program to launch")
	f.StringSlice("program-args", nil, "arguments passed to the program")
	f.String("terminal", "", "terminal emulator to launch the program in (default: autodetect)")
	f.String("workdir", "", "working directory of the program (default: home)")
	f.String("font", "", "horror font file (default: search system fonts)")
	f.String("timeline", "", "timeline YAML file (default: embedded)")
	f.Int("tps", 60, "updates per second")
	f.Bool("fullscreen", true, "run the window fullscreen")
	f.Bool("grab", true, "grab the keyboard during the intro (X11 only)")
	f.Bool("skip-intro", false, "launch the program immediately")
	f.BoolP("verbose", "v", false, "debug logging")
}

// flagKeys 命令行参数到配置键的映射
var flagKeys = map[string]string{
	"mode":         config.KeyMode,
	"program":      config.KeyProgram,
	"program-args": config.KeyProgramArgs,
	"terminal":     config.KeyTerminal,
	"workdir":      config.KeyWorkDir,
	"font":         config.KeyFont,
	"timeline":     config.KeyTimeline,
	"tps":          config.KeyTPS,
	"fullscreen":   config.KeyFullscreen,
	"grab":         config.KeyGrabKeyboard,
	"skip-intro":   config.KeySkipIntro,
	"verbose":      config.KeyVerbose,
}

// loadViper 读取配置文件和环境变量，并绑定命令行参数
// 只有显式设置的参数会覆盖配置文件
func loadViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v, err := config.NewViper(configFile)
	if err != nil {
		return nil, err
	}
	for name, key := range flagKeys {
		fl := flags.Lookup(name)
		if fl == nil {
			continue
		}
		if err := v.BindPFlag(key, fl); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return v, nil
}

// Execute 运行命令行，出错时以非零状态退出
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}
