// Package utils 提供游戏开发中常用的工具函数
//
// projection.go 把世界坐标投影到屏幕坐标，供 ebiten 场景做伪 3D 绘制。
//
// # 坐标系统概述
//
//   - **世界坐标**：X 横向，Y 高度，Z 行进方向（远处为负，玩家在 Z=0 附近）
//   - **屏幕坐标**：相对于游戏窗口左上角
//
// 摄像机位于玩家身后上方 (0, Height, Back)，朝 -Z 方向观察。
//
// # 核心转换公式
//
//	depth   = Back - Z
//	scale   = FocalLength / depth
//	screenX = CenterX + X*scale
//	screenY = HorizonY + (Height - Y)*scale
//
// depth 小于 Near 的点在摄像机身后或过近，不参与绘制。
package utils

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera 透视投影参数
type Camera struct {
	Height      float64 // 摄像机离地高度（世界单位）
	Back        float64 // 摄像机在玩家身后的距离（世界单位）
	FocalLength float64 // 焦距（像素）
	Near        float64 // 近裁剪距离
	CenterX     float64 // 屏幕水平中心（像素）
	HorizonY    float64 // 地平线的屏幕 Y（像素）
}

// DefaultCamera 返回适配给定屏幕尺寸的默认摄像机
func DefaultCamera(screenWidth, screenHeight int) Camera {
	return Camera{
		Height:      6,
		Back:        12,
		FocalLength: float64(screenHeight) * 0.9,
		Near:        0.5,
		CenterX:     float64(screenWidth) / 2,
		HorizonY:    float64(screenHeight) * 0.3,
	}
}

// Depth 返回点到摄像机平面的距离
func (c Camera) Depth(p mgl64.Vec3) float64 {
	return c.Back - p.Z()
}

// Project 将世界坐标投影到屏幕
//
// 返回：
//   - x, y: 屏幕坐标
//   - scale: 该深度下一个世界单位对应的像素数
//   - ok: 点是否在近裁剪面之前
func (c Camera) Project(p mgl64.Vec3) (x, y, scale float64, ok bool) {
	depth := c.Depth(p)
	if depth < c.Near {
		return 0, 0, 0, false
	}
	scale = c.FocalLength / depth
	x = c.CenterX + p.X()*scale
	y = c.HorizonY + (c.Height-p.Y())*scale
	return x, y, scale, true
}

// ScreenRect 投影后的矩形（像素）
type ScreenRect struct {
	X, Y, W, H float64
}

// ProjectBoxFront 投影包围盒朝向摄像机的那一面
//
// center 为包围盒中心，size 为完整尺寸。
// 返回的矩形以左上角为原点，ok 为 false 表示整个面都在摄像机身后。
func (c Camera) ProjectBoxFront(center, size mgl64.Vec3) (ScreenRect, bool) {
	half := size.Mul(0.5)
	front := mgl64.Vec3{center.X(), center.Y(), center.Z() + half.Z()}

	left, top, _, okTop := c.Project(mgl64.Vec3{front.X() - half.X(), front.Y() + half.Y(), front.Z()})
	right, bottom, _, okBottom := c.Project(mgl64.Vec3{front.X() + half.X(), front.Y() - half.Y(), front.Z()})
	if !okTop || !okBottom {
		return ScreenRect{}, false
	}
	return ScreenRect{X: left, Y: top, W: right - left, H: bottom - top}, true
}

// ProjectGroundQuad 投影一段路面 [zNear, zFar] × [-halfWidth, halfWidth]
//
// 返回梯形的四个顶点：近左、近右、远右、远左。
// 近端被裁剪到 Near 平面，整段都在身后时 ok 为 false。
func (c Camera) ProjectGroundQuad(zNear, zFar, halfWidth float64) ([4][2]float64, bool) {
	var quad [4][2]float64
	limit := c.Back - c.Near
	if zFar > limit {
		return quad, false
	}
	if zNear > limit {
		zNear = limit
	}

	corners := [4]mgl64.Vec3{
		{-halfWidth, 0, zNear},
		{halfWidth, 0, zNear},
		{halfWidth, 0, zFar},
		{-halfWidth, 0, zFar},
	}
	for i, corner := range corners {
		x, y, _, ok := c.Project(corner)
		if !ok {
			return quad, false
		}
		quad[i] = [2]float64{x, y}
	}
	return quad, true
}
