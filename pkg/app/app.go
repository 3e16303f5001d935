// Package app 提供窗口宿主的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	cues "github.com/decker502/stealhome/internal/audio"
	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/game"
	"github.com/decker502/stealhome/pkg/scenes"
	"github.com/decker502/stealhome/pkg/systems"
	"github.com/decker502/stealhome/pkg/utils"
)

// AppName 设置存储使用的应用名
const AppName = "stealhome"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件路径，为空则使用嵌入配置或内置默认值
	ConfigPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// ReducedMotion 强制减少动态效果（命令行参数）
	ReducedMotion bool
	// DisableAudio 不创建音频上下文
	DisableAudio bool
}

// App 是窗口宿主的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *scenes.SceneManager
	core         *systems.GameCore
	settings     *game.SettingsManager
	windowWidth  int
	windowHeight int
	verbose      bool

	// 最近一次 Layout 的外部尺寸，在 Update 中应用到视口跟踪器
	outsideWidth  int
	outsideHeight int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化窗口宿主
//
// 使用嵌入配置前，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := config.ResolveGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}

	settings := game.OpenSettingsManager(AppName)
	reduced := cfg.ReducedMotion || settings.GetSettings().ReducedMotion || utils.PrefersReducedMotion()
	if reduced {
		log.Printf("[App] Reduced motion enabled")
	}

	var cuePlayer game.CuePlayer
	if !cfg.DisableAudio {
		audioContext := audio.NewContext(int(cues.SampleRate))
		audioManager, err := NewAudioManager(audioContext, settings)
		if err != nil {
			// 音效失败不影响游戏
			log.Printf("[App] Warning: audio disabled: %v", err)
		} else {
			cuePlayer = audioManager
			log.Printf("[App] AudioManager initialized")
		}
	}

	rng := utils.NewRandomSource(cfg.Seed)
	vp := game.Viewport{
		Width:         gameConfig.Viewport.DefaultWidth,
		Height:        gameConfig.Viewport.DefaultHeight,
		ReducedMotion: reduced,
	}
	core := systems.NewGameCore(gameConfig, vp, cuePlayer, rng)

	sceneManager := scenes.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewGameScene(core, settings))

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Started with %d cards, %d floating elements", len(gameConfig.Cards), core.Floating.Len())

	return &App{
		sceneManager: sceneManager,
		core:         core,
		settings:     settings,
		windowWidth:  int(gameConfig.Viewport.DefaultWidth),
		windowHeight: int(gameConfig.Viewport.DefaultHeight),
		verbose:      cfg.Verbose,
	}, nil
}

// WindowSize 返回初始窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.windowWidth, a.windowHeight
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.outsideWidth > 0 && a.outsideHeight > 0 {
		a.core.Tracker.Resize(float64(a.outsideWidth), float64(a.outsideHeight))
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.windowWidth, a.windowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if fullscreen {
		ebiten.SetFullscreen(true)
	} else {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	}

	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save fullscreen setting: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
//
// 游戏表面随窗口变化（响应式布局），逻辑尺寸等于外部尺寸。
// 新尺寸在下一次 Update 中交给视口跟踪器。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.windowWidth, a.windowHeight
	}
	a.outsideWidth, a.outsideHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存设置
func (a *App) GetSceneManager() *scenes.SceneManager {
	return a.sceneManager
}

// Shutdown 保存设置并释放场景
func (a *App) Shutdown() {
	a.sceneManager.SaveOnExit()
	a.sceneManager.Close()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
