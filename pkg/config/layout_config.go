package config

// 布局配置常量
// 本文件定义了窗口尺寸与 ebiten 场景中 HUD、摇杆等 UI 元素的位置（屏幕像素）

// 窗口配置
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600
	// GameWindowTitle 窗口标题
	GameWindowTitle = "Highway Runner"
)

// HUD 配置
const (
	// HUDMargin HUD 文字距离屏幕边缘的距离
	HUDMargin = 12
	// HUDLineHeight 调试字体的行高
	HUDLineHeight = 16

	// HealthBarWidth 血条宽度
	HealthBarWidth = 160.0
	// HealthBarHeight 血条高度
	HealthBarHeight = 10.0

	// BannerHeight Boss 横幅高度
	BannerHeight = 36.0
)

// 虚拟摇杆配置（左下角）
const (
	// JoystickAreaWidth 可以按下摇杆的区域宽度
	JoystickAreaWidth = 260
	// JoystickAreaHeight 可以按下摇杆的区域高度
	JoystickAreaHeight = 220
	// JoystickRadius 摇杆满偏时的横向偏移（像素）
	JoystickRadius = 60.0
	// JoystickKnobRadius 摇杆手柄半径
	JoystickKnobRadius = 22.0
)

// 加载界面配置
const (
	// LoadingBarWidth 加载进度条宽度
	LoadingBarWidth = 400.0
	// LoadingBarHeight 加载进度条高度
	LoadingBarHeight = 18.0
	// LoadingFinishDelay 加载完成后停留的时间（秒）
	LoadingFinishDelay = 0.3
)
