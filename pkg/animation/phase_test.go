package animation

import (
	"errors"
	"testing"
	"time"
)

const ms = time.Millisecond

func linearPhase(name string, d time.Duration) Phase {
	return Phase{
		Name:     name,
		Duration: d,
		Map: func(p float64, _ time.Duration) VisualState {
			return VisualState{Alpha: p * MaxAlpha}
		},
	}
}

// TestNewPhased_InvalidTiming 测试非法计时在构造期被拒绝
func TestNewPhased_InvalidTiming(t *testing.T) {
	tests := []struct {
		name   string
		phases []Phase
	}{
		{"空阶段表", nil},
		{"零时长", []Phase{linearPhase("a", 0)}},
		{"负时长", []Phase{linearPhase("a", 100 * ms), linearPhase("b", -1)}},
		{"缺少映射", []Phase{{Name: "a", Duration: 100 * ms}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPhased(tt.phases...)
			if !errors.Is(err, ErrInvalidTiming) {
				t.Errorf("期望 ErrInvalidTiming，实际 %v", err)
			}
		})
	}
}

// TestPhased_Boundaries 测试阶段边界：duration-1 仍在当前阶段，duration 时切换
func TestPhased_Boundaries(t *testing.T) {
	a, err := NewPhased(linearPhase("a", 100*ms), linearPhase("b", 200*ms))
	if err != nil {
		t.Fatalf("NewPhased failed: %v", err)
	}
	a.Start(0)

	st, done := a.Advance(99 * ms)
	if done || st.Phase != "a" {
		t.Fatalf("99ms: 期望仍在阶段 a，实际 %q done=%v", st.Phase, done)
	}
	if st.Progress < 0.98 || st.Progress > 1 {
		t.Errorf("99ms: 期望 progress≈0.99，实际 %f", st.Progress)
	}

	st, done = a.Advance(100 * ms)
	if done || st.Phase != "b" {
		t.Fatalf("100ms: 期望切换到阶段 b，实际 %q", st.Phase)
	}
	if st.Progress != 0 {
		t.Errorf("切换时 progress 应为 0，实际 %f", st.Progress)
	}
	if a.PhaseStart() != 100*ms {
		t.Errorf("phaseStart 应重置为 now，实际 %v", a.PhaseStart())
	}

	// 阶段 b 从 100ms 开始，300ms 结束
	st, done = a.Advance(299 * ms)
	if done || st.Phase != "b" {
		t.Errorf("299ms: 期望仍在阶段 b")
	}

	st, done = a.Advance(300 * ms)
	if !done {
		t.Fatal("300ms: 期望动画结束")
	}
	if st.Phase != "b" || st.Progress != 1 || st.Alpha != MaxAlpha {
		t.Errorf("终止状态应为最后阶段 progress=1，实际 %+v", st)
	}
}

// TestPhased_OneTransitionPerAdvance 测试一次 Advance 最多切换一个阶段
func TestPhased_OneTransitionPerAdvance(t *testing.T) {
	a, _ := NewPhased(linearPhase("a", 10*ms), linearPhase("b", 10*ms), linearPhase("c", 10*ms))
	a.Start(0)

	// 一次跳过很长时间，也只前进一个阶段
	st, done := a.Advance(time.Second)
	if done || st.Phase != "b" || a.PhaseIndex() != 1 {
		t.Fatalf("期望只前进到阶段 b，实际 %q index=%d", st.Phase, a.PhaseIndex())
	}

	st, _ = a.Advance(time.Second + 5*ms)
	if st.Phase != "b" {
		t.Errorf("超出部分不应被携带，期望仍在 b，实际 %q", st.Phase)
	}
}

// TestPhased_AdvanceAfterDoneIsNoop 测试结束后的调用返回终止状态
func TestPhased_AdvanceAfterDoneIsNoop(t *testing.T) {
	a, _ := NewPhased(linearPhase("a", 10*ms))
	a.Start(0)
	first, done := a.Advance(10 * ms)
	if !done {
		t.Fatal("期望结束")
	}
	for _, now := range []time.Duration{20 * ms, time.Hour} {
		st, done := a.Advance(now)
		if !done || st.Phase != first.Phase || st.Alpha != first.Alpha {
			t.Errorf("结束后 Advance(%v) 应返回相同终止状态", now)
		}
	}
	if a.CurrentPhase() != "" {
		t.Errorf("结束后 CurrentPhase 应为空串")
	}
}

// TestPhased_ClockBeforeStart 测试 now 小于起点时进度被钳制为 0
func TestPhased_ClockBeforeStart(t *testing.T) {
	a, _ := NewPhased(linearPhase("a", 100*ms))
	a.Start(50 * ms)
	st, done := a.Advance(10 * ms)
	if done || st.Progress != 0 {
		t.Errorf("期望 progress=0 且未结束，实际 %f done=%v", st.Progress, done)
	}
}

// TestPhased_Until 测试由外部条件结束的阶段
func TestPhased_Until(t *testing.T) {
	signalled := false
	a, err := NewPhased(Phase{
		Name:  "wait",
		Map:   constant(VisualState{Scale: 1}),
		Until: func(time.Duration) bool { return signalled },
	})
	if err != nil {
		t.Fatalf("Until 阶段不需要时长: %v", err)
	}
	a.Start(0)

	if _, done := a.Advance(time.Hour); done {
		t.Fatal("信号到来前不应结束")
	}
	signalled = true
	if _, done := a.Advance(time.Hour + ms); !done {
		t.Error("信号到来后应结束")
	}
}

// TestPhased_ReplayDeterminism 测试相同时间序列产生相同状态序列
func TestPhased_ReplayDeterminism(t *testing.T) {
	run := func() []VisualState {
		a, _ := NewGlowPulse(DefaultGlowConfig())
		a.Start(0)
		var out []VisualState
		for now := time.Duration(0); now <= 4*time.Second; now += 16 * ms {
			st, _ := a.Advance(now)
			out = append(out, st)
		}
		return out
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("长度不一致: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Phase != second[i].Phase || first[i].Alpha != second[i].Alpha || first[i].Scale != second[i].Scale {
			t.Fatalf("第 %d 帧不一致: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestNewPause(t *testing.T) {
	p, err := NewPause(500 * ms)
	if err != nil {
		t.Fatalf("NewPause failed: %v", err)
	}
	p.Start(0)
	if st, done := p.Advance(499 * ms); done || st.Phase != PhaseBlank {
		t.Errorf("499ms 期望仍在空白阶段")
	}
	if _, done := p.Advance(500 * ms); !done {
		t.Errorf("500ms 期望结束")
	}
	if _, err := NewPause(0); !errors.Is(err, ErrInvalidTiming) {
		t.Errorf("零时长停顿应被拒绝")
	}
}
