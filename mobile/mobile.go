//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
// 移动端构建时 utils.IsMobile() 返回 true，游戏场景显示触摸摇杆和动作按钮。
//
// 此文件仅在使用 -tags mobile 构建时编译。
//
//	# Android
//	cp -r data mobile/data && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.highway -o build/android/highway.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/data && ebitenmobile bind -target ios -tags mobile -o build/ios/Highway.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/highway/pkg/app"
	"github.com/decker502/highway/pkg/embedded"
)

func init() {
	// 初始化嵌入数据
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	// 创建游戏应用，使用默认配置
	cfg := app.Config{
		Verbose:          true,
		Profile:          "",    // 使用设置中保存的档案或文件默认档案
		SkipLoadingScene: false, // 显示加载场景
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
