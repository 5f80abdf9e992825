package grab

import "testing"

func envOf(kv map[string]string) Getenv {
	return func(key string) string { return kv[key] }
}

func TestIsX11(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"X11 会话", map[string]string{"XDG_SESSION_TYPE": "x11", "DISPLAY": ":0"}, true},
		{"大小写不敏感", map[string]string{"XDG_SESSION_TYPE": "X11"}, true},
		{"Wayland 会话", map[string]string{"XDG_SESSION_TYPE": "wayland", "DISPLAY": ":0"}, false},
		{"Wayland 显示优先", map[string]string{"XDG_SESSION_TYPE": "x11", "WAYLAND_DISPLAY": "wayland-0"}, false},
		{"只有 DISPLAY", map[string]string{"DISPLAY": ":1"}, true},
		{"无显示", map[string]string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsX11(envOf(tt.env)); got != tt.want {
				t.Errorf("IsX11() = %v, 期望 %v", got, tt.want)
			}
		})
	}
}

func TestHasDisplay(t *testing.T) {
	if HasDisplay(envOf(nil)) {
		t.Error("无环境变量时不应有显示")
	}
	if !HasDisplay(envOf(map[string]string{"WAYLAND_DISPLAY": "wayland-0"})) {
		t.Error("Wayland 显示应被识别")
	}
}

// TestX11Keyboard_ReleaseWithoutGrab 测试未独占时释放是无操作
func TestX11Keyboard_ReleaseWithoutGrab(t *testing.T) {
	k := NewX11Keyboard()
	if err := k.Release(); err != nil {
		t.Errorf("未连接时释放应为无操作: %v", err)
	}
	if k.Grabbed() {
		t.Error("不应处于独占状态")
	}
}
