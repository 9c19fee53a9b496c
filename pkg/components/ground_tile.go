package components

// GroundTileComponent 标记循环滚动的路面地块
// 地块移出视野后整体后移 TileCount 个地块长度，实现无限路面
type GroundTileComponent struct {
	Index int // 地块序号（0 为最靠近玩家的地块）
}
