package app

import (
	"fmt"
	"log"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/embedded"
)

// LoadTuningFile 读取调参文件
// path 非空时从磁盘读取（调参时无需重新编译），否则读取嵌入的 data/tuning.yaml
func LoadTuningFile(path string) (*config.TuningFile, error) {
	if path != "" {
		log.Printf("[App] Loading tuning file from disk: %s", path)
		return config.LoadTuningFile(path)
	}

	data, err := embedded.ReadFile(embedded.TuningPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded tuning file: %w", err)
	}
	return config.ParseTuningFile(data)
}

// ResolveProfile 解析调参档案；档案不存在或无效时退回内置默认值
// file 可以为 nil
func ResolveProfile(file *config.TuningFile, name string) *config.TuningConfig {
	if file == nil {
		log.Printf("[App] Warning: no tuning file, using built-in defaults")
		return config.DefaultTuning()
	}
	cfg, err := file.Profile(name)
	if err != nil {
		log.Printf("[App] Warning: %v (using built-in defaults)", err)
		return config.DefaultTuning()
	}
	return cfg
}
