package utils

import (
	"os"
	"strings"
)

// ReducedMotionEnv 是系统级"减少动态效果"偏好的环境变量
// 桌面窗口库无法直接读取操作系统的偏好设置，由启动脚本或用户通过此变量传入
const ReducedMotionEnv = "STEALHOME_REDUCED_MOTION"

// PrefersReducedMotion 检测系统是否要求减少动态效果
// 接受 "1"、"true"、"reduce"（不区分大小写）
func PrefersReducedMotion() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(ReducedMotionEnv))) {
	case "1", "true", "reduce":
		return true
	}
	return false
}
