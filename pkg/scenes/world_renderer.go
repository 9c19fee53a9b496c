package scenes

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/decker502/highway/pkg/game"
	"github.com/decker502/highway/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 调色板
var (
	skyColor       = color.RGBA{120, 170, 230, 255}
	grassColor     = color.RGBA{70, 130, 60, 255}
	roadColors     = [2]color.RGBA{{70, 70, 78, 255}, {82, 82, 90, 255}}
	laneColor      = color.RGBA{240, 220, 90, 255}
	shieldColor    = color.RGBA{90, 220, 255, 255}
	projectileFill = color.RGBA{255, 120, 40, 255}
)

// defaultKindColors 模型未指定颜色时按类别取色
var defaultKindColors = map[game.EntityKind]color.RGBA{
	game.KindPlayer:   {240, 240, 240, 255},
	game.KindObstacle: {200, 60, 60, 255},
	game.KindPowerUp:  {250, 200, 40, 255},
	game.KindBoss:     {120, 40, 160, 255},
	game.KindEffect:   {255, 255, 255, 255},
}

// parseHexColor 解析 #RRGGBB，格式错误时返回 fallback
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// entityColor 返回实体的填充色
func entityColor(e game.ViewEntity) color.RGBA {
	return parseHexColor(e.Color, defaultKindColors[e.Kind])
}

// fade 按比例降低不透明度（预乘 alpha）
func fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = utils.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// WorldRenderer 把渲染快照画成伪 3D 画面
// 快照已经按"路面在前、其余由远到近"排序，按顺序绘制即可得到正确遮挡
type WorldRenderer struct {
	Camera    utils.Camera
	ShowDebug bool

	whiteImage *ebiten.Image
}

// NewWorldRenderer 创建渲染器
func NewWorldRenderer(camera utils.Camera) *WorldRenderer {
	return &WorldRenderer{Camera: camera}
}

// Draw 绘制一帧；view 为 nil 时只画天空和草地
func (wr *WorldRenderer) Draw(screen *ebiten.Image, view *game.View) {
	screen.Fill(skyColor)
	bounds := screen.Bounds()
	horizon := float32(wr.Camera.HorizonY)
	vector.DrawFilledRect(screen, 0, horizon, float32(bounds.Dx()), float32(bounds.Dy())-horizon, grassColor, false)

	if view == nil {
		return
	}
	for _, e := range view.Entities {
		switch e.Kind {
		case game.KindGround:
			wr.drawGround(screen, e)
		case game.KindProjectile:
			wr.drawProjectile(screen, e)
		case game.KindEffect:
			wr.drawEffect(screen, e)
		default:
			wr.drawBox(screen, e)
		}
	}
}

func (wr *WorldRenderer) drawGround(screen *ebiten.Image, e game.ViewEntity) {
	halfDepth := e.Size.Z() / 2
	quad, ok := wr.Camera.ProjectGroundQuad(e.Pos.Z()+halfDepth, e.Pos.Z()-halfDepth, e.Size.X()/2)
	if !ok {
		return
	}
	wr.fillQuad(screen, quad, roadColors[e.ID%2])

	// 路面边线
	for _, edge := range [2][2]int{{0, 3}, {1, 2}} {
		a, b := quad[edge[0]], quad[edge[1]]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), 2, laneColor, false)
	}
}

func (wr *WorldRenderer) drawBox(screen *ebiten.Image, e game.ViewEntity) {
	rect, ok := wr.Camera.ProjectBoxFront(e.Pos, e.Size)
	if !ok {
		return
	}
	fill := entityColor(e)
	vector.DrawFilledRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), fill, false)

	// 顶面用较暗的色带示意
	top := float32(rect.H) * 0.15
	vector.DrawFilledRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), top, fade(fill, 0.7), false)

	if e.Shielded {
		pad := float32(4)
		vector.StrokeRect(screen, float32(rect.X)-pad, float32(rect.Y)-pad, float32(rect.W)+2*pad, float32(rect.H)+2*pad, 3, shieldColor, false)
	}
	if wr.ShowDebug {
		vector.StrokeRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), 1, color.Black, false)
		ebitenutil.DebugPrintAt(screen, e.Label, int(rect.X), int(rect.Y)-14)
	}
}

func (wr *WorldRenderer) drawProjectile(screen *ebiten.Image, e game.ViewEntity) {
	x, y, scale, ok := wr.Camera.Project(e.Pos)
	if !ok {
		return
	}
	radius := float32(e.Size.X() / 2 * scale)
	if radius < 2 {
		radius = 2
	}
	vector.DrawFilledCircle(screen, float32(x), float32(y), radius, parseHexColor(e.Color, projectileFill), true)
}

// drawEffect 特效：包围盒随播放进度放大并淡出
func (wr *WorldRenderer) drawEffect(screen *ebiten.Image, e game.ViewEntity) {
	grow := 1 + e.Progress
	rect, ok := wr.Camera.ProjectBoxFront(e.Pos, mgl64.Vec3{e.Size.X() * grow, e.Size.Y() * grow, e.Size.Z()})
	if !ok {
		return
	}
	clr := fade(entityColor(e), 1-e.Progress)
	vector.StrokeRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), 3, clr, true)
}

// fillQuad 用两个三角形填充投影后的梯形
func (wr *WorldRenderer) fillQuad(screen *ebiten.Image, quad [4][2]float64, clr color.RGBA) {
	if wr.whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		wr.whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	var path vector.Path
	path.MoveTo(float32(quad[0][0]), float32(quad[0][1]))
	for _, p := range quad[1:] {
		path.LineTo(float32(p[0]), float32(p[1]))
	}
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = float32(clr.R) / 255
		vertices[i].ColorG = float32(clr.G) / 255
		vertices[i].ColorB = float32(clr.B) / 255
		vertices[i].ColorA = float32(clr.A) / 255
	}
	screen.DrawTriangles(vertices, indices, wr.whiteImage, &ebiten.DrawTrianglesOptions{})
}
