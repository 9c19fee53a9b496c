package components

// ModelComponent 记录实体使用的模型，供渲染快照读取
type ModelComponent struct {
	Name  string
	Color string // #RRGGBB，可为空
}
