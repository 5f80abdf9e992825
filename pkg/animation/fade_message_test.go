package animation

import (
	"testing"
	"time"
)

func TestFade_Directions(t *testing.T) {
	tests := []struct {
		name        string
		dir         FadeDirection
		wantAlpha   float64
		wantOverlay float64
	}{
		{"淡出到黑场", FadeToBlack, 255, 127.5},
		{"从黑场淡入", FadeFromBlack, 127.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFade(tt.dir, time.Second)
			if err != nil {
				t.Fatalf("NewFade failed: %v", err)
			}
			f.Start(0)
			st, done := f.Advance(500 * ms)
			if done {
				t.Fatal("中点不应结束")
			}
			if st.Alpha != tt.wantAlpha || st.OverlayAlpha != tt.wantOverlay {
				t.Errorf("期望 alpha=%v overlay=%v，实际 alpha=%v overlay=%v",
					tt.wantAlpha, tt.wantOverlay, st.Alpha, st.OverlayAlpha)
			}
		})
	}
}

// TestFade_ToBlackEndsOpaque 测试淡出到黑场结束时遮罩完全不透明
func TestFade_ToBlackEndsOpaque(t *testing.T) {
	f, _ := NewFade(FadeToBlack, 200*ms)
	f.Start(0)
	st, done := f.Advance(200 * ms)
	if !done || st.OverlayAlpha != MaxAlpha {
		t.Errorf("期望结束且 overlay=255，实际 %v done=%v", st.OverlayAlpha, done)
	}
}

func TestMessage_Totals(t *testing.T) {
	if FarewellTiming.Total() != 4100*ms {
		t.Errorf("告别消息总时长期望 4100ms，实际 %v", FarewellTiming.Total())
	}
	if RejectionTiming.Total() != 2000*ms {
		t.Errorf("拒绝消息总时长期望 2000ms，实际 %v", RejectionTiming.Total())
	}
}

// TestMessage_Phases 测试消息的淡入、停留、淡出
func TestMessage_Phases(t *testing.T) {
	m, err := NewMessage(RejectionTiming)
	if err != nil {
		t.Fatalf("NewMessage failed: %v", err)
	}
	m.Start(0)

	st, _ := m.Advance(200 * ms)
	if st.Phase != PhaseFadeIn || st.Alpha != 127.5 {
		t.Errorf("200ms: 期望淡入中点，实际 %+v", st)
	}

	st, _ = m.Advance(400 * ms)
	if st.Phase != PhaseHold || st.Alpha != MaxAlpha {
		t.Errorf("400ms: 期望进入停留，实际 %+v", st)
	}

	st, _ = m.Advance(1600 * ms)
	if st.Phase != PhaseFadeOut || st.Alpha != MaxAlpha {
		t.Errorf("1600ms: 期望进入淡出且 alpha=255，实际 %+v", st)
	}

	st, done := m.Advance(2000 * ms)
	if !done || st.Alpha != 0 {
		t.Errorf("2000ms: 期望结束且 alpha=0，实际 %+v done=%v", st, done)
	}
}
