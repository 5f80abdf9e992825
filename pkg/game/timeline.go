package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/ghosthorror/internal/system"
	"github.com/decker502/ghosthorror/pkg/render"
)

// Timeline 线性步骤序列，同一时刻只运行一个步骤
//
// 当前步骤结束后，下一个步骤在下一帧以该帧的 now 开始。
// 支持在运行中 Append，用于提示之后的分支。
type Timeline struct {
	steps   []Step
	index   int
	started bool
	sound   SoundSink
	log     *log.Logger
}

// NewTimeline 创建时间轴
func NewTimeline(steps ...Step) *Timeline {
	return &Timeline{
		steps: steps,
		sound: NopSound{},
		log:   system.Tagged("Timeline"),
	}
}

// SetSound 设置音效接口
func (t *Timeline) SetSound(sound SoundSink) {
	if sound == nil {
		sound = NopSound{}
	}
	t.sound = sound
}

// Append 在末尾追加步骤
func (t *Timeline) Append(steps ...Step) {
	t.steps = append(t.steps, steps...)
}

// Update 推进当前步骤，返回整个时间轴是否结束
func (t *Timeline) Update(f Frame) bool {
	if t.index >= len(t.steps) {
		return true
	}

	step := t.steps[t.index]
	if !t.started {
		t.started = true
		step.Begin(f.Now)
		if cue := step.Cue(); cue != "" {
			t.sound.Play(cue)
		}
		t.log.Debug("step begin", "step", step.Name(), "index", t.index, "now", f.Now)
	}

	if step.Update(f) {
		t.log.Debug("step done", "step", step.Name(), "now", f.Now)
		t.index++
		t.started = false
	}
	return t.index >= len(t.steps)
}

// Draw 绘制当前步骤
// 下一个步骤开始前的那一帧继续绘制刚结束的步骤，避免闪黑
func (t *Timeline) Draw(s render.Surface, now time.Duration) {
	switch {
	case t.started && t.index < len(t.steps):
		t.steps[t.index].Draw(s, now)
	case t.index > 0:
		t.steps[t.index-1].Draw(s, now)
	}
}

// Done 是否全部结束
func (t *Timeline) Done() bool {
	return t.index >= len(t.steps)
}

// Current 当前步骤，结束后返回 nil
func (t *Timeline) Current() Step {
	if t.Done() {
		return nil
	}
	return t.steps[t.index]
}

// Len 步骤数
func (t *Timeline) Len() int {
	return len(t.steps)
}
