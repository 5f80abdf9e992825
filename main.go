package main

import (
	"github.com/decker502/ghosthorror/internal/cli"
	"github.com/decker502/ghosthorror/pkg/embedded"
)

func main() {
	// 必须在加载时间轴配置之前初始化嵌入资源
	embedded.Init(dataFS)
	cli.Execute()
}
