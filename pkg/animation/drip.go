package animation

import (
	"math"
	"time"

	"github.com/decker502/ghosthorror/pkg/clock"
)

// Particle 血滴粒子
type Particle struct {
	X, Y   float64
	Speed  float64 // 下落速度（像素/毫秒）
	Radius float64
	Alpha  float64
}

// DripConfig 血滴模拟参数
//
// 速度与衰减按"每帧"给出（与原始 60 TPS 手感一致），
// 内部按 TickRate 换算为每毫秒，使结果与实际帧率无关。
type DripConfig struct {
	SpeedPerFrame    float64 // 每帧下落像素，默认 2
	DecayPerFrame    float64 // 每帧半径衰减，默认 0.02
	AlphaDecayFactor float64 // alpha 衰减倍数 k（alpha 每帧减 decay*k），默认 100
	InitialRadius    float64 // 初始半径，默认 4
	InitialAlpha     float64 // 初始 alpha，默认 255
	MinRadius        float64 // 半径下限，默认 1
	TickRate         int     // 换算用的参考帧率，默认 60
	Capacity         int     // 存活粒子上限，超出丢弃最旧的，默认 64
}

// DefaultDripConfig 返回默认血滴参数
func DefaultDripConfig() DripConfig {
	return DripConfig{
		SpeedPerFrame:    2,
		DecayPerFrame:    0.02,
		AlphaDecayFactor: 100,
		InitialRadius:    4,
		InitialAlpha:     MaxAlpha,
		MinRadius:        1,
		TickRate:         clock.DefaultTPS,
		Capacity:         64,
	}
}

func (c DripConfig) normalized() DripConfig {
	def := DefaultDripConfig()
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.Capacity <= 0 {
		c.Capacity = def.Capacity
	}
	if c.InitialRadius <= 0 {
		c.InitialRadius = def.InitialRadius
	}
	if c.InitialAlpha <= 0 {
		c.InitialAlpha = def.InitialAlpha
	}
	if c.MinRadius <= 0 {
		c.MinRadius = def.MinRadius
	}
	return c
}

// DripSimulator 短生命周期下落粒子集合
//
// 每次 Update 产生一个新的存活者切片（过滤），不在遍历中原地删除。
type DripSimulator struct {
	cfg           DripConfig
	frameMs       float64
	surfaceHeight float64
	particles     []Particle
}

// NewDripSimulator 创建血滴模拟器
// surfaceHeight 为渲染表面高度，粒子越过底边即被移除
func NewDripSimulator(cfg DripConfig, surfaceHeight float64) *DripSimulator {
	cfg = cfg.normalized()
	return &DripSimulator{
		cfg:           cfg,
		frameMs:       msOf(clock.FrameDuration(cfg.TickRate)),
		surfaceHeight: surfaceHeight,
	}
}

// Spawn 在 (x, y) 生成一个血滴；达到上限时丢弃最旧的
func (d *DripSimulator) Spawn(x, y float64) {
	if len(d.particles) >= d.cfg.Capacity {
		d.particles = d.particles[len(d.particles)-d.cfg.Capacity+1:]
	}
	d.particles = append(d.particles, Particle{
		X:      x,
		Y:      y,
		Speed:  d.cfg.SpeedPerFrame / d.frameMs,
		Radius: d.cfg.InitialRadius,
		Alpha:  d.cfg.InitialAlpha,
	})
}

// Update 推进 dt 并移除 alpha <= 0 或越过底边的粒子
func (d *DripSimulator) Update(dt time.Duration) {
	if dt <= 0 || len(d.particles) == 0 {
		return
	}

	ms := msOf(dt)
	frames := ms / d.frameMs
	decay := d.cfg.DecayPerFrame * frames

	survivors := make([]Particle, 0, len(d.particles))
	for _, p := range d.particles {
		p.Y += p.Speed * ms
		p.Radius = math.Max(d.cfg.MinRadius, p.Radius-decay)
		p.Alpha = math.Max(0, p.Alpha-decay*d.cfg.AlphaDecayFactor)
		if p.Alpha <= 0 || p.Y > d.surfaceHeight {
			continue
		}
		survivors = append(survivors, p)
	}
	d.particles = survivors
}

// Len 存活粒子数
func (d *DripSimulator) Len() int {
	return len(d.particles)
}

// Snapshot 返回存活粒子的副本
func (d *DripSimulator) Snapshot() []Particle {
	if len(d.particles) == 0 {
		return nil
	}
	out := make([]Particle, len(d.particles))
	copy(out, d.particles)
	return out
}

// Reset 清空所有粒子
func (d *DripSimulator) Reset() {
	d.particles = nil
}
