package game

import "errors"

var (
	// ErrEnvironmentUnavailable 没有可用的渲染表面、外部程序或终端（启动时致命）
	ErrEnvironmentUnavailable = errors.New("environment unavailable")

	// ErrExternalProcess 外部程序启动失败或被杀死，序列中止
	ErrExternalProcess = errors.New("external process failure")
)
