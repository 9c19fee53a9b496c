package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ModelDescriptor 描述一个可生成实体的模型
//
// 渲染细节由外部渲染引擎负责，这里只保留游戏逻辑需要的数据：
// 包围盒尺寸（未缩放）与默认缩放。
//
// 配置文件位置: data/models/<name>.yaml
type ModelDescriptor struct {
	Name  string     `yaml:"name"`
	Size  Vec3Config `yaml:"size"`  // 包围盒尺寸（宽 X, 高 Y, 深 Z）
	Scale float64    `yaml:"scale"` // 生成时的缩放
	Color string     `yaml:"color"` // 调试绘制颜色（#RRGGBB），可选
}

// ParseModelDescriptor 解析并校验模型描述
func ParseModelDescriptor(data []byte) (*ModelDescriptor, error) {
	var desc ModelDescriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse model descriptor: %w", err)
	}
	if desc.Name == "" {
		return nil, fmt.Errorf("model descriptor has no name")
	}
	if desc.Size.X <= 0 || desc.Size.Y <= 0 || desc.Size.Z <= 0 {
		return nil, fmt.Errorf("model %q: size must be positive on every axis", desc.Name)
	}
	if desc.Scale == 0 {
		desc.Scale = 1
	}
	if desc.Scale < 0 {
		return nil, fmt.Errorf("model %q: scale must be > 0, got %.2f", desc.Name, desc.Scale)
	}
	return &desc, nil
}

// ModelPath 返回模型描述文件在数据目录中的路径
func ModelPath(name string) string {
	return "data/models/" + name + ".yaml"
}
