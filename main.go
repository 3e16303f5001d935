package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/stealhome/pkg/app"
	"github.com/decker502/stealhome/pkg/embedded"
)

var (
	verbose       = flag.Bool("verbose", false, "启用详细日志输出")
	configPath    = flag.String("config", "", "游戏配置文件路径（默认使用嵌入的 data/game.yaml）")
	seed          = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	reducedMotion = flag.Bool("reduced-motion", false, "减少动态效果")
	mute          = flag.Bool("mute", false, "禁用音效")
)

func main() {
	flag.Parse()

	// 初始化嵌入数据（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		ConfigPath:    *configPath,
		Seed:          *seed,
		ReducedMotion: *reducedMotion,
		DisableAudio:  *mute,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，直接写 stderr
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	width, height := gameApp.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("偷家小游戏")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// 窗口关闭时保存设置
	defer gameApp.Shutdown()

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Printf("[main] RunGame error: %v", err)
	}
}
