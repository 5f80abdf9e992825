package launcher

import (
	"os/exec"
)

// Terminal 终端模拟器及其启动参数
type Terminal struct {
	// Name 可执行文件名
	Name string

	// Args 位于被启动程序之前的参数（全屏标志、执行标志）
	Args []string

	// Path 解析后的可执行文件路径，为空时按 Name 查找
	Path string
}

// Command 返回在该终端中运行 argv 的完整命令行
func (t Terminal) Command(argv ...string) []string {
	bin := t.Path
	if bin == "" {
		bin = t.Name
	}
	cmd := make([]string, 0, 1+len(t.Args)+len(argv))
	cmd = append(cmd, bin)
	cmd = append(cmd, t.Args...)
	return append(cmd, argv...)
}

// KnownTerminals 按优先级排列的终端模拟器
// 没有全屏参数的终端（wezterm、urxvt、st）以普通窗口启动
var KnownTerminals = []Terminal{
	{Name: "kitty", Args: []string{"--start-as=fullscreen"}},
	{Name: "alacritty", Args: []string{"--option", "window.startup_mode=Fullscreen", "-e"}},
	{Name: "foot", Args: []string{"--fullscreen"}},
	{Name: "wezterm", Args: []string{"start", "--maximized"}},
	{Name: "ghostty", Args: []string{"--fullscreen"}},
	{Name: "konsole", Args: []string{"--fullscreen", "-e"}},
	{Name: "gnome-terminal", Args: []string{"--full-screen", "--"}},
	{Name: "xfce4-terminal", Args: []string{"--fullscreen", "-x"}},
	{Name: "xterm", Args: []string{"-fullscreen", "-e"}},
	{Name: "urxvt", Args: []string{"-e"}},
	{Name: "st", Args: []string{"-e"}},
}

// LookPathFunc 在 PATH 中查找可执行文件
type LookPathFunc func(file string) (string, error)

// DefaultLookPath 使用 exec.LookPath
var DefaultLookPath LookPathFunc = exec.LookPath

// KnownTerminal 按名称查找已知终端
func KnownTerminal(name string) (Terminal, bool) {
	for _, t := range KnownTerminals {
		if t.Name == name {
			return t, true
		}
	}
	return Terminal{}, false
}

// FindTerminal 查找可用的终端模拟器
//
// preferred 非空时只尝试该终端：已知终端使用其全屏参数，未知终端使用 "-e"。
// 否则按 KnownTerminals 的顺序返回第一个可用的终端。
func FindTerminal(preferred string, lookPath LookPathFunc) (Terminal, bool) {
	if lookPath == nil {
		lookPath = DefaultLookPath
	}

	if preferred != "" {
		t, ok := KnownTerminal(preferred)
		if !ok {
			t = Terminal{Name: preferred, Args: []string{"-e"}}
		}
		path, err := lookPath(t.Name)
		if err != nil {
			return Terminal{}, false
		}
		t.Path = path
		return t, true
	}

	for _, t := range KnownTerminals {
		if path, err := lookPath(t.Name); err == nil {
			t.Path = path
			return t, true
		}
	}
	return Terminal{}, false
}
