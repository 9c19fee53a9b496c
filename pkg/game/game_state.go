package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储目录名
const AppName = "highway_runner"

// GameState 存储跨会话的全局状态
// 这是一个单例，持有持久化相关的管理器；单局的可变状态在 SessionState 中
type GameState struct {
	gdataManager    *gdata.Manager   // 可为 nil（降级模式）
	settingsManager *SettingsManager // 偏好设置，只保存在内存中
	highScoreStore  *HighScoreStore  // 最高分
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式；gdata 打开失败时退化为仅内存存储，游戏照常运行
func GetGameState() *GameState {
	if globalGameState == nil {
		globalGameState = newGameState(openGdata(AppName))
	}
	return globalGameState
}

func openGdata(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[GameState] Warning: gdata unavailable: %v (progress will not be saved)", err)
		return nil
	}
	return manager
}

// newGameState 只有最高分写入 gdata，偏好设置不落盘
func newGameState(manager *gdata.Manager) *GameState {
	settingsManager, err := NewSettingsManager(nil)
	if err != nil {
		log.Printf("[GameState] Warning: settings manager: %v", err)
	}
	return &GameState{
		gdataManager:    manager,
		settingsManager: settingsManager,
		highScoreStore:  NewHighScoreStore(manager),
	}
}

// GetGdataManager 返回 gdata 管理器，可能为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetHighScoreStore 返回最高分存储
func (gs *GameState) GetHighScoreStore() *HighScoreStore {
	return gs.highScoreStore
}
