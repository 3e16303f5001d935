package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/stealhome/pkg/utils"
)

// PointerState 存储当前帧的指针输入状态
// 统一处理鼠标和触摸输入
type PointerState struct {
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 指针位置（逻辑屏幕坐标）
	Position utils.Point
	// 是否来自触摸（触摸设备没有悬停语义）
	IsTouch bool
}

// GetPointerState 获取当前帧的指针状态
// 优先检测触摸，其次检测鼠标
func GetPointerState() PointerState {
	// 新的触摸事件
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerState{JustPressed: true, Position: pointFromInts(x, y), IsTouch: true}
	}

	// 活动中的触摸（仅用于位置）
	allTouchIDs := ebiten.AppendTouchIDs(nil)
	if len(allTouchIDs) > 0 {
		x, y := ebiten.TouchPosition(allTouchIDs[0])
		return PointerState{Position: pointFromInts(x, y), IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Position:    pointFromInts(x, y),
	}
}

func pointFromInts(x, y int) utils.Point {
	return utils.Point{X: float64(x), Y: float64(y)}
}
