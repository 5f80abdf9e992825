package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestDecodeSettings_Defaults 测试没有配置文件时使用默认值
func TestDecodeSettings_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	v, err := NewViper("")
	if err != nil {
		t.Fatalf("NewViper failed: %v", err)
	}
	s, err := DecodeSettings(v)
	if err != nil {
		t.Fatalf("DecodeSettings failed: %v", err)
	}

	if s.Mode != ModeAuto || s.Program != "ekphos" || s.TPS != 60 {
		t.Errorf("默认值错误: %+v", s)
	}
	if s.TerminateTimeout != 5*time.Second {
		t.Errorf("期望终止超时 5s，实际 %v", s.TerminateTimeout)
	}
	if !s.Fullscreen || !s.GrabKeyboard {
		t.Error("默认应全屏并抓取键盘")
	}
}

func TestDecodeSettings_FileAndEnv(t *testing.T) {
	path := writeSettings(t, "mode: terminal\nprogram: vim\nprogram_args: [\"-R\"]\nterminate_timeout: 2s\ntps: 30\n")
	t.Setenv("GHOST_HORROR_TPS", "45")

	v, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper failed: %v", err)
	}
	s, err := DecodeSettings(v)
	if err != nil {
		t.Fatalf("DecodeSettings failed: %v", err)
	}

	if s.Mode != ModeTerminal || s.Program != "vim" {
		t.Errorf("配置文件未生效: %+v", s)
	}
	if len(s.ProgramArgs) != 1 || s.ProgramArgs[0] != "-R" {
		t.Errorf("参数错误: %v", s.ProgramArgs)
	}
	if s.TerminateTimeout != 2*time.Second {
		t.Errorf("期望 2s，实际 %v", s.TerminateTimeout)
	}
	if s.TPS != 45 {
		t.Errorf("环境变量应覆盖配置文件，期望 45，实际 %d", s.TPS)
	}
}

func TestNewViper_ExplicitMissingFile(t *testing.T) {
	if _, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("显式指定的配置文件不存在时应报错")
	}
}

func TestDecodeSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"未知模式", "mode: vr\n", "unknown mode"},
		{"空程序", "program: \"\"\n", "program"},
		{"帧率", "tps: 0\n", "tps"},
		{"超时", "terminate_timeout: 0s\n", "terminate_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewViper(writeSettings(t, tt.content))
			if err != nil {
				t.Fatalf("NewViper failed: %v", err)
			}
			_, err = DecodeSettings(v)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("期望包含 %q 的错误，实际 %v", tt.wantErr, err)
			}
		})
	}
}

func TestSettingsStore(t *testing.T) {
	st := NewSettingsStore(Settings{Program: "a"})
	if st.Load().Program != "a" {
		t.Fatal("初始值错误")
	}
	st.Store(Settings{Program: "b"})
	if st.Load().Program != "b" {
		t.Error("Store 后应读到新值")
	}
}

func TestSettingsStore_WatchWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	v, err := NewViper("")
	if err != nil {
		t.Fatal(err)
	}
	st := NewSettingsStore(Settings{})
	if st.Watch(v, nil) {
		t.Error("没有配置文件时不应监视")
	}
}

func TestResolveWorkDir(t *testing.T) {
	s := Settings{WorkDir: "/tmp/x"}
	if s.ResolveWorkDir() != "/tmp/x" {
		t.Error("应使用配置的目录")
	}
	s.WorkDir = ""
	home, _ := os.UserHomeDir()
	if home != "" && s.ResolveWorkDir() != home {
		t.Errorf("期望主目录 %s，实际 %s", home, s.ResolveWorkDir())
	}
}
