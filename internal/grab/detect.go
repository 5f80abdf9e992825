// Package grab 在开场期间独占键盘，阻止窗口管理器快捷键
//
// 只支持 X11；Wayland 下没有等价机制，调用方应使用 game.NopGrabber。
package grab

import (
	"os"
	"strings"
)

// Getenv 环境变量读取函数
type Getenv func(key string) string

// IsX11 判断当前是否运行在 X11 会话中
//
// WAYLAND_DISPLAY 存在时视为 Wayland；否则以 XDG_SESSION_TYPE 为准，
// 未设置时退回检查 DISPLAY。
func IsX11(getenv Getenv) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv("WAYLAND_DISPLAY") != "" {
		return false
	}
	switch strings.ToLower(getenv("XDG_SESSION_TYPE")) {
	case "x11":
		return true
	case "wayland":
		return false
	}
	return getenv("DISPLAY") != ""
}

// HasDisplay 是否存在任何图形显示
func HasDisplay(getenv Getenv) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
}
