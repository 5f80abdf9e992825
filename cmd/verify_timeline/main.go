// Package main 离线检查时间轴：用假时钟驱动完整序列并打印每个阶段的绘制结果
//
// Usage:
//
//	go run ./cmd/verify_timeline [flags]
//
// Flags:
//
//	--timeline <path>   时间轴配置（默认 data/timeline.yaml）
//	--answer <text>     程序退出后在提示中输入的回答（默认 "yes"）
//	--frame <duration>  每帧时长（默认 16ms）
//	--every <duration>  打印采样间隔（默认 250ms）
//	--verbose           输出调试日志
//
// 外部程序由一个立即退出的假进程代替，不需要显示器和终端模拟器。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/decker502/ghosthorror/internal/system"
	"github.com/decker502/ghosthorror/pkg/clock"
	"github.com/decker502/ghosthorror/pkg/config"
	"github.com/decker502/ghosthorror/pkg/game"
	"github.com/decker502/ghosthorror/pkg/input"
	"github.com/decker502/ghosthorror/pkg/render"
)

var (
	timelineFlag = flag.String("timeline", config.DefaultTimelinePath, "Timeline YAML file")
	answerFlag   = flag.String("answer", "yes", "Answer typed at the exit prompt")
	frameFlag    = flag.Duration("frame", 16*time.Millisecond, "Frame duration")
	everyFlag    = flag.Duration("every", 250*time.Millisecond, "Sampling interval")
	widthFlag    = flag.Float64("width", 1280, "Surface width")
	heightFlag   = flag.Float64("height", 720, "Surface height")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
)

// instantRunner 立即正常退出的假进程
type instantRunner struct {
	launches int
}

func (r *instantRunner) CheckRequirements() (bool, string) { return true, "fake" }

func (r *instantRunner) Launch(string) error {
	r.launches++
	return nil
}

func (r *instantRunner) Running() bool { return false }

func (r *instantRunner) Terminate(time.Duration) error { return nil }

func (r *instantRunner) WaitContext(context.Context) (int, error) { return 0, nil }

func main() {
	flag.Parse()
	system.SetVerbose(*verboseFlag)

	cfg, err := config.LoadTimelineConfig(*timelineFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load timeline: %v\n", err)
		os.Exit(1)
	}

	surface := render.NewRecordingSurface(*widthFlag, *heightFlag)
	runner := &instantRunner{}
	seq := game.NewSequencer(game.NewSequencerState(), game.SequencerOptions{
		Builder:   game.NewBuilder(cfg, surface),
		NewRunner: func() (game.ProcessRunner, error) { return runner, nil },
	})

	clk := clock.NewFakeClock(0)
	if err := seq.Start(clk.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}

	var (
		lastStage  = seq.Stage()
		lastSample = -*everyFlag
		answered   bool
	)
	fmt.Printf("%8s  %-7s  %s\n", "t", "stage", "draw")

	for seq.State().Running() && clk.Now() < 5*time.Minute {
		now := clk.Now()

		if seq.Paused() {
			fmt.Printf("%8s  %-7s  program launched (#%d)\n", ms(now), seq.Stage(), runner.launches)
			if runner.launches > 1 {
				break
			}
			seq.AwaitProcess(context.Background())
		}

		var events []input.Event
		if seq.Stage() == game.StageExit && !answered {
			answered = true
			events = input.Typed(*answerFlag)
		}
		seq.Update(now, events)

		if stage := seq.Stage(); stage != lastStage || now-lastSample >= *everyFlag {
			lastStage = stage
			lastSample = now
			surface.Reset()
			seq.Draw(surface)
			fmt.Printf("%8s  %-7s  %s\n", ms(now), stage, describe(surface))
		}
		clk.Advance(*frameFlag)
	}

	seq.Close()
	fmt.Printf("stopped: %s\n", seq.State().Reason())
	if err := seq.State().Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// describe 汇总一帧的绘制调用
func describe(s *render.RecordingSurface) string {
	var parts []string
	if texts := s.Texts(); len(texts) > 0 {
		parts = append(parts, fmt.Sprintf("text=%q", strings.Join(texts, "")))
	}
	for _, op := range s.Ops {
		if op.Kind == "text" {
			parts = append(parts, fmt.Sprintf("alpha=%.0f", op.Alpha))
			break
		}
	}
	if n := s.Count("circle"); n > 0 {
		parts = append(parts, fmt.Sprintf("circles=%d", n))
	}
	for _, op := range s.Ops {
		if op.Kind == "fill" {
			parts = append(parts, fmt.Sprintf("overlay=%.0f", op.Alpha))
		}
	}
	if len(parts) == 0 {
		return "(black)"
	}
	return strings.Join(parts, " ")
}
