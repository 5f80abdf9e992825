package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/decker502/ghosthorror/internal/system"
)

// 运行模式
const (
	ModeAuto     = "auto"     // 有图形环境时用窗口，否则用终端
	ModeWindow   = "window"   // ebiten 全屏窗口
	ModeTerminal = "terminal" // tcell 终端
)

// EnvPrefix 环境变量前缀，例如 GHOST_HORROR_PROGRAM
const EnvPrefix = "GHOST_HORROR"

// 配置键
const (
	KeyMode             = "mode"
	KeyProgram          = "program"
	KeyProgramArgs      = "program_args"
	KeyWorkDir          = "workdir"
	KeyTerminal         = "terminal"
	KeyTerminateTimeout = "terminate_timeout"
	KeyFont             = "font"
	KeyTimeline         = "timeline"
	KeyTPS              = "tps"
	KeyFullscreen       = "fullscreen"
	KeyGrabKeyboard     = "grab_keyboard"
	KeySkipIntro        = "skip_intro"
	KeyVerbose          = "verbose"
)

// Settings 运行时设置
//
// 来源优先级：命令行参数 > 环境变量 > 配置文件 > 默认值
type Settings struct {
	Mode             string        `mapstructure:"mode"`
	Program          string        `mapstructure:"program"`
	ProgramArgs      []string      `mapstructure:"program_args"`
	WorkDir          string        `mapstructure:"workdir"`
	Terminal         string        `mapstructure:"terminal"`
	TerminateTimeout time.Duration `mapstructure:"terminate_timeout"`
	Font             string        `mapstructure:"font"`
	Timeline         string        `mapstructure:"timeline"`
	TPS              int           `mapstructure:"tps"`
	Fullscreen       bool          `mapstructure:"fullscreen"`
	GrabKeyboard     bool          `mapstructure:"grab_keyboard"`
	SkipIntro        bool          `mapstructure:"skip_intro"`
	Verbose          bool          `mapstructure:"verbose"`
}

// SetDefaults 注册默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMode, ModeAuto)
	v.SetDefault(KeyProgram, "ekphos")
	v.SetDefault(KeyProgramArgs, []string{})
	v.SetDefault(KeyWorkDir, "")
	v.SetDefault(KeyTerminal, "")
	v.SetDefault(KeyTerminateTimeout, 5*time.Second)
	v.SetDefault(KeyFont, "")
	v.SetDefault(KeyTimeline, "")
	v.SetDefault(KeyTPS, 60)
	v.SetDefault(KeyFullscreen, true)
	v.SetDefault(KeyGrabKeyboard, true)
	v.SetDefault(KeySkipIntro, false)
	v.SetDefault(KeyVerbose, false)
}

// ConfigDir 用户配置目录（$XDG_CONFIG_HOME/ghosthorror）
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ghosthorror")
}

// NewViper 创建带默认值、环境变量和配置文件的 viper 实例
//
// configFile 为空时在 ConfigDir() 中查找 config.yaml，找不到不算错误；
// 显式指定的文件必须存在。
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := ConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}
	return v, nil
}

// DecodeSettings 从 viper 解码并验证设置
func DecodeSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Validate 验证设置
func (s *Settings) Validate() error {
	switch s.Mode {
	case ModeAuto, ModeWindow, ModeTerminal:
	default:
		return fmt.Errorf("unknown mode %q (want auto, window or terminal)", s.Mode)
	}
	if strings.TrimSpace(s.Program) == "" {
		return fmt.Errorf("program must not be empty")
	}
	if s.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", s.TPS)
	}
	if s.TerminateTimeout <= 0 {
		return fmt.Errorf("terminate_timeout must be positive, got %v", s.TerminateTimeout)
	}
	return nil
}

// ResolveWorkDir 外部程序的工作目录，未配置时为用户主目录
func (s *Settings) ResolveWorkDir() string {
	if s.WorkDir != "" {
		return s.WorkDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// SettingsStore 可并发读取的设置快照
//
// 配置文件被修改时由 viper 的监视 goroutine 写入新快照；
// 主循环在构建下一段时间轴时读取，不会看到半更新的状态。
type SettingsStore struct {
	current atomic.Pointer[Settings]
}

// NewSettingsStore 以初始设置创建
func NewSettingsStore(s Settings) *SettingsStore {
	st := &SettingsStore{}
	st.Store(s)
	return st
}

// Load 读取当前快照
func (st *SettingsStore) Load() Settings {
	return *st.current.Load()
}

// Store 替换快照
func (st *SettingsStore) Store(s Settings) {
	st.current.Store(&s)
}

// Watch 监视配置文件变化并更新快照
//
// 没有使用配置文件时直接返回 false。非法的修改会被忽略并记录警告，
// 保留上一次有效的设置。onChange 在监视 goroutine 中调用，可为 nil。
func (st *SettingsStore) Watch(v *viper.Viper, onChange func(Settings)) bool {
	if v.ConfigFileUsed() == "" {
		return false
	}

	logger := system.Tagged("Settings")
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		s, err := DecodeSettings(v)
		if err != nil {
			logger.Warn("ignoring invalid settings change", "file", e.Name, "err", err)
			return
		}
		st.Store(s)
		logger.Info("settings reloaded", "file", e.Name)
		if onChange != nil {
			onChange(s)
		}
	})
	v.WatchConfig()
	return true
}
