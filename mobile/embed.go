//go:build mobile

// embed.go - 移动端数据嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把 data/game.yaml 复制到 mobile/data/（见 mobile.go 中的构建命令）。
package mobile

import "embed"

//go:embed data/game.yaml
var dataFS embed.FS
