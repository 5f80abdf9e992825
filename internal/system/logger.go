// Package system 提供进程级共享设施（日志）
package system

import (
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger 是全局共享的日志器
// 输出到 stderr，带时间戳；各组件通过 WithPrefix 派生带标签的子日志器，
// 例如 system.Logger.WithPrefix("Sequencer")
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
})

// SetVerbose 切换详细日志
// verbose=false 时只输出 Info 及以上级别
func SetVerbose(verbose bool) {
	if verbose {
		Logger.SetLevel(clog.DebugLevel)
		return
	}
	Logger.SetLevel(clog.InfoLevel)
}

// Tagged 返回带组件标签的子日志器
func Tagged(tag string) *clog.Logger {
	return Logger.WithPrefix(tag)
}
