package launcher

import (
	"errors"
	"reflect"
	"testing"
)

// pathOf 返回只认识给定可执行文件的 LookPath
func pathOf(available ...string) LookPathFunc {
	return func(file string) (string, error) {
		for _, a := range available {
			if a == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestFindTerminal(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		available []string
		wantName  string
		wantArgs  []string
		wantOK    bool
	}{
		{"按优先级选择", "", []string{"xterm", "alacritty"}, "alacritty", []string{"--option", "window.startup_mode=Fullscreen", "-e"}, true},
		{"kitty 无执行参数", "", []string{"kitty", "xterm"}, "kitty", []string{"--start-as=fullscreen"}, true},
		{"首选已知终端", "xterm", []string{"kitty", "xterm"}, "xterm", []string{"-fullscreen", "-e"}, true},
		{"首选未知终端", "myterm", []string{"myterm"}, "myterm", []string{"-e"}, true},
		{"首选不可用", "foot", []string{"kitty"}, "", nil, false},
		{"没有终端", "", nil, "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, ok := FindTerminal(tt.preferred, pathOf(tt.available...))
			if ok != tt.wantOK {
				t.Fatalf("期望 ok=%v，实际 %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if term.Name != tt.wantName || !reflect.DeepEqual(term.Args, tt.wantArgs) {
				t.Errorf("期望 %s %v，实际 %s %v", tt.wantName, tt.wantArgs, term.Name, term.Args)
			}
			if term.Path != "/usr/bin/"+tt.wantName {
				t.Errorf("期望解析路径，实际 %q", term.Path)
			}
		})
	}
}

func TestTerminal_Command(t *testing.T) {
	term := Terminal{Name: "gnome-terminal", Args: []string{"--full-screen", "--"}}
	got := term.Command("ekphos", "notes")
	want := []string{"gnome-terminal", "--full-screen", "--", "ekphos", "notes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}

	term.Path = "/opt/bin/gnome-terminal"
	if got := term.Command("ekphos")[0]; got != "/opt/bin/gnome-terminal" {
		t.Errorf("应优先使用解析路径，实际 %q", got)
	}
}

func TestKnownTerminals_Order(t *testing.T) {
	want := []string{"kitty", "alacritty", "foot", "wezterm", "ghostty", "konsole",
		"gnome-terminal", "xfce4-terminal", "xterm", "urxvt", "st"}
	if len(KnownTerminals) != len(want) {
		t.Fatalf("期望 %d 个终端，实际 %d", len(want), len(KnownTerminals))
	}
	for i, name := range want {
		if KnownTerminals[i].Name != name {
			t.Errorf("第 %d 个期望 %s，实际 %s", i, name, KnownTerminals[i].Name)
		}
	}
}
