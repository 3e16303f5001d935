package components

import "github.com/decker502/stealhome/pkg/utils"

// FlightPhase 精灵飞行阶段
type FlightPhase int

const (
	FlightLaunching FlightPhase = iota // 第一阶段：从边缘飞向点击点
	FlightReturning                    // 第二阶段：从点击点飞向新的边缘点
)

// String 返回阶段名称（日志用）
func (p FlightPhase) String() string {
	switch p {
	case FlightLaunching:
		return "launching"
	case FlightReturning:
		return "returning"
	default:
		return "unknown"
	}
}

// SpriteFlightComponent 一次点击触发的精灵飞行
//
// 工作流程：
//  1. SpriteFlightSystem 在空闲时接受点击，创建 Launching 阶段的飞行
//  2. 渲染层播放 Start → End 的动画，结束时回调 CompletePhase
//  3. Launching 完成后进行命中检测，切换为 Returning 并生成新的终点
//  4. Returning 完成后飞行结束，系统回到空闲
type SpriteFlightComponent struct {
	// ID 飞行标识（单调递增）
	ID int64
	// Phase 当前阶段
	Phase FlightPhase
	// Start 当前阶段起点
	Start utils.Point
	// End 当前阶段终点
	End utils.Point
	// SpriteImage 当前阶段使用的精灵图片引用
	SpriteImage string
}
