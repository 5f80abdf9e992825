package animation

import (
	"math"
	"testing"
	"time"
)

// TestGlowPulse_FadeInMonotonic 测试淡入阶段 alpha 单调不减
func TestGlowPulse_FadeInMonotonic(t *testing.T) {
	g, err := NewGlowPulse(DefaultGlowConfig())
	if err != nil {
		t.Fatalf("NewGlowPulse failed: %v", err)
	}
	g.Start(0)

	prev := -1.0
	for now := time.Duration(0); now < time.Second; now += 10 * ms {
		st, _ := g.Advance(now)
		if st.Phase != PhaseFadeIn {
			t.Fatalf("%v: 期望淡入阶段，实际 %q", now, st.Phase)
		}
		if st.Alpha < prev {
			t.Fatalf("%v: alpha 下降 %f -> %f", now, prev, st.Alpha)
		}
		prev = st.Alpha
	}

	// 淡入中点 alpha 约为 127.5
	g.Start(0)
	st, _ := g.Advance(500 * ms)
	if math.Abs(st.Alpha-127.5) > 0.01 {
		t.Errorf("500ms: 期望 alpha=127.5，实际 %f", st.Alpha)
	}
}

// TestGlowPulse_BreatheRange 测试呼吸阶段 alpha 在 [204, 255]、scale 在 [0.95, 1.05]
func TestGlowPulse_BreatheRange(t *testing.T) {
	g, _ := NewGlowPulse(DefaultGlowConfig())
	g.Start(0)
	g.Advance(time.Second) // 进入呼吸阶段，phaseStart = 1000ms

	sawBreathe := false
	for now := time.Second; now < 3*time.Second; now += 7 * ms {
		st, _ := g.Advance(now)
		if st.Phase != PhaseBreathe {
			continue
		}
		sawBreathe = true
		if st.Alpha < 204-1e-9 || st.Alpha > 255+1e-9 {
			t.Fatalf("%v: alpha 越界 %f", now, st.Alpha)
		}
		if st.Scale < 0.95-1e-9 || st.Scale > 1.05+1e-9 {
			t.Fatalf("%v: scale 越界 %f", now, st.Scale)
		}
	}
	if !sawBreathe {
		t.Fatal("未观察到呼吸阶段")
	}
}

// TestGlowPulse_BreathePeak 测试呼吸相位在 250ms 时达到峰值
func TestGlowPulse_BreathePeak(t *testing.T) {
	g, _ := NewGlowPulse(DefaultGlowConfig())
	g.Start(0)
	g.Advance(time.Second)

	st, _ := g.Advance(time.Second + 250*ms)
	if math.Abs(st.Alpha-255) > 1e-6 {
		t.Errorf("期望 alpha 峰值 255，实际 %f", st.Alpha)
	}
	if math.Abs(st.Scale-1.05) > 1e-9 {
		t.Errorf("期望 scale 峰值 1.05，实际 %f", st.Scale)
	}
}

// TestGlowPulse_FadeOutAndTotal 测试淡出单调不增，总时长 3500ms
func TestGlowPulse_FadeOutAndTotal(t *testing.T) {
	g, _ := NewGlowPulse(DefaultGlowConfig())
	if g.TotalDuration() != 3500*ms {
		t.Errorf("期望总时长 3500ms，实际 %v", g.TotalDuration())
	}

	g.Start(0)
	g.Advance(1000 * ms)
	st, _ := g.Advance(3000 * ms)
	if st.Phase != PhaseFadeOut {
		t.Fatalf("3000ms: 期望淡出阶段，实际 %q", st.Phase)
	}

	prev := math.Inf(1)
	var done bool
	for now := 3000 * ms; now <= 3600*ms && !done; now += 10 * ms {
		st, done = g.Advance(now)
		if st.Alpha > prev {
			t.Fatalf("%v: 淡出时 alpha 上升", now)
		}
		prev = st.Alpha
	}
	if !done || st.Alpha != 0 {
		t.Errorf("期望以 alpha=0 结束，实际 %f done=%v", st.Alpha, done)
	}
}

// TestGlowPulse_WholeCycles 测试呼吸时长向上取整到完整周期
func TestGlowPulse_WholeCycles(t *testing.T) {
	cfg := DefaultGlowConfig()
	cfg.Breathe = 2300 * ms
	cfg.WholeCycles = true

	g, err := NewGlowPulse(cfg)
	if err != nil {
		t.Fatalf("NewGlowPulse failed: %v", err)
	}
	want := cfg.FadeIn + 3000*ms + cfg.FadeOut
	if g.TotalDuration() != want {
		t.Errorf("期望总时长 %v，实际 %v", want, g.TotalDuration())
	}
}

func TestGlowPulse_InvalidTiming(t *testing.T) {
	cfg := DefaultGlowConfig()
	cfg.FadeOut = 0
	if _, err := NewGlowPulse(cfg); err == nil {
		t.Error("零时长淡出应被拒绝")
	}
}
