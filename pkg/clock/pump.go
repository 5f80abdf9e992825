package clock

import "time"

// Pump 固定帧率节拍器
//
// Tick 只阻塞到距离上一次 tick 满一帧为止（协作式、单 goroutine）。
// 如果一帧的工作本身已经超时，Tick 立即返回，不做追帧。
type Pump struct {
	clock  Clock
	tps    int
	frame  time.Duration
	last   time.Duration
	primed bool
	sleep  func(time.Duration)
}

// PumpOption 节拍器选项
type PumpOption func(*Pump)

// WithSleeper 替换阻塞函数（测试时配合 FakeClock 使用）
func WithSleeper(sleep func(time.Duration)) PumpOption {
	return func(p *Pump) {
		p.sleep = sleep
	}
}

// NewPump 创建节拍器
// tps <= 0 时使用 DefaultTPS
func NewPump(c Clock, tps int, opts ...PumpOption) *Pump {
	if tps <= 0 {
		tps = DefaultTPS
	}
	p := &Pump{
		clock: c,
		tps:   tps,
		frame: FrameDuration(tps),
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FrameDuration 返回给定 TPS 下一帧的时长
func FrameDuration(tps int) time.Duration {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

// TPS 返回节拍器的目标频率
func (p *Pump) TPS() int {
	return p.tps
}

// FrameDuration 返回一帧的时长
func (p *Pump) FrameDuration() time.Duration {
	return p.frame
}

// Tick 等待到下一帧开始，返回距上一次 Tick 实际经过的时间
func (p *Pump) Tick() time.Duration {
	now := p.clock.Now()
	if !p.primed {
		p.primed = true
		p.last = now
		return 0
	}

	if wait := p.frame - (now - p.last); wait > 0 {
		p.sleep(wait)
		now = p.clock.Now()
	}

	elapsed := now - p.last
	p.last = now
	return elapsed
}
