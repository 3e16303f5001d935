//go:build !mobile

// stub.go - 非移动端构建时的占位文件
//
// 普通构建只编译此文件，mobile.go 和 embed.go 需要 -tags mobile。
package mobile

// Dummy 是一个空导出函数，确保包在非移动端构建时也能被引用
func Dummy() {}
