// Package version 保存构建版本号
package version

// AppVersion 构建时通过 -ldflags "-X github.com/decker502/ghosthorror/internal/version.AppVersion=..." 注入
var AppVersion = "0.1.0-dev"
