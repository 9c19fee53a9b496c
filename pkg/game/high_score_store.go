package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// RecordStore 持久化后端，*gdata.Manager 实现了该接口
type RecordStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// 存储路径常量
const (
	recordsObject     = "records"
	highScoreProperty = "highscore"
)

// highScoreRecord 持久化的最高分记录，只有一个整数
type highScoreRecord struct {
	HighScore int `yaml:"highScore"`
}

// HighScoreStore 最高分存储
//
// 最高分是整个游戏中唯一跨会话保存的数据。
// store 为 nil 时进入降级模式：只在内存中保存，不报错。
type HighScoreStore struct {
	store  RecordStore
	record highScoreRecord
}

// NewHighScoreStore 基于 gdata 创建最高分存储，gdataManager 可为 nil
func NewHighScoreStore(gdataManager *gdata.Manager) *HighScoreStore {
	if gdataManager == nil {
		return NewHighScoreStoreOn(nil)
	}
	return NewHighScoreStoreOn(gdataManager)
}

// NewHighScoreStoreOn 基于任意后端创建最高分存储，并立即读取已保存的值
func NewHighScoreStoreOn(store RecordStore) *HighScoreStore {
	hs := &HighScoreStore{store: store}
	if err := hs.Load(); err != nil {
		log.Printf("[HighScoreStore] Warning: Failed to load high score: %v (starting from 0)", err)
	}
	return hs
}

// Load 从后端读取最高分；不存在时为 0
func (hs *HighScoreStore) Load() error {
	if hs.store == nil {
		return nil
	}
	if !hs.store.ObjectPropExists(recordsObject, highScoreProperty) {
		hs.record = highScoreRecord{}
		return nil
	}

	data, err := hs.store.LoadObjectProp(recordsObject, highScoreProperty)
	if err != nil {
		return fmt.Errorf("failed to load high score: %w", err)
	}

	var rec highScoreRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("failed to unmarshal high score: %w", err)
	}
	if rec.HighScore < 0 {
		return fmt.Errorf("invalid stored high score %d", rec.HighScore)
	}
	hs.record = rec
	log.Printf("[HighScoreStore] Loaded high score %d", rec.HighScore)
	return nil
}

// HighScore 返回当前最高分
func (hs *HighScoreStore) HighScore() int {
	return hs.record.HighScore
}

// Commit 提交一局的得分；只有超过最高分时才写入
// runID 只用于日志，不会被保存
//
// 返回：
//   - bool: 是否创造了新纪录
//   - error: 写入失败（内存中的值仍会更新）
func (hs *HighScoreStore) Commit(score int, runID string) (bool, error) {
	if score <= hs.record.HighScore {
		return false, nil
	}
	hs.record = highScoreRecord{HighScore: score}

	if hs.store == nil {
		return true, nil
	}
	data, err := yaml.Marshal(&hs.record)
	if err != nil {
		return true, fmt.Errorf("failed to marshal high score: %w", err)
	}
	if err := hs.store.SaveObjectProp(recordsObject, highScoreProperty, data); err != nil {
		return true, fmt.Errorf("failed to save high score: %w", err)
	}
	log.Printf("[HighScoreStore] New high score %d saved (run %s)", score, runID)
	return true, nil
}
