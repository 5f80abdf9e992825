// Package clock 提供动画时间轴使用的单调时钟和固定帧率节拍器
//
// 所有动画都以挂钟时间（而不是帧数）推进，保证播放速度与机器性能无关。
// Clock 返回自启动以来的单调时间；Pump 负责把更新频率限制在固定的 TPS。
package clock

import "time"

// DefaultTPS 默认更新频率（每秒 tick 数）
const DefaultTPS = 60

// Clock 单调时钟
type Clock interface {
	// Now 返回自时钟创建以来经过的单调时间
	Now() time.Duration
}

// Since 返回从 t0 到当前时刻经过的时间
func Since(c Clock, t0 time.Duration) time.Duration {
	return c.Now() - t0
}

// SystemClock 基于 time.Time 单调读数的真实时钟
type SystemClock struct {
	start time.Time
}

// NewSystemClock 创建以当前时刻为起点的系统时钟
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now 返回自创建以来经过的时间
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// FakeClock 手动推进的时钟，用于测试和离线检查时间轴
type FakeClock struct {
	now time.Duration
}

// NewFakeClock 创建停在 start 的假时钟
func NewFakeClock(start time.Duration) *FakeClock {
	return &FakeClock{now: start}
}

// Now 返回当前假时间
func (c *FakeClock) Now() time.Duration {
	return c.now
}

// Set 把时钟设置到指定时刻（不允许倒退）
func (c *FakeClock) Set(t time.Duration) {
	if t > c.now {
		c.now = t
	}
}

// Advance 把时钟向前推进 d
func (c *FakeClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}
