//go:build !mobile

// 非移动端构建时 mobile 包只剩这个文件。
// 游戏注册（mobile.go）和数据嵌入（embed.go）需要 -tags mobile，
// 由 ebitenmobile bind 构建 Android/iOS 库时启用。
package mobile

// Dummy 让 go build ./... 在桌面端也能编译并引用该包
func Dummy() {}
