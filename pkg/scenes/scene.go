package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the window host.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存设置
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 用户通过 OS 命令关闭程序
//
// 分数不持久化，只保存用户设置。
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}

// Closer 是一个可选接口，场景被替换或程序退出时释放订阅
type Closer interface {
	Close()
}

// 编译期检查
var (
	_ Scene    = (*GameScene)(nil)
	_ Saveable = (*GameScene)(nil)
	_ Closer   = (*GameScene)(nil)
)
