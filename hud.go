package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/touchmove/common"
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/physics"
	"golang.org/x/image/font/basicfont"
)

var (
	hudFace = text.NewGoXFace(basicfont.Face7x13)

	colorBackground = color.NRGBA{R: 0x16, G: 0x1b, B: 0x22, A: 0xff}
	colorPlatform   = color.NRGBA{R: 0x3d, G: 0x5a, B: 0x6c, A: 0xff}
	colorWall       = color.NRGBA{R: 0xb0, G: 0xb8, B: 0xc0, A: 0xff}
	colorPlayer     = color.NRGBA{R: 0xf2, G: 0xc1, B: 0x4e, A: 0xff}
	colorAir        = color.NRGBA{R: 0xf2, G: 0x7a, B: 0x4e, A: 0xff}
	colorShadow     = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x60}
	colorJoystick   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x50}
	colorKnob       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xa0}
	colorText       = color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	colorBanner     = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
)

// HUD draws a top-down view around the camera center. Camera forward points
// up the screen and height lifts things toward the top.
type HUD struct {
	w, h   float64
	center mgl64.Vec3
	fwd    mgl64.Vec3
	right  mgl64.Vec3
	zoom   float64
	lift   float64
}

func NewHUD() *HUD {
	return &HUD{zoom: 32}
}

func (h *HUD) Draw(screen *ebiten.Image, g *Game) {
	screen.Fill(colorBackground)
	b := screen.Bounds()
	h.w, h.h = float64(b.Dx()), float64(b.Dy())

	if g.camera != nil {
		h.center = g.camera.Center
		h.fwd = g.camera.Forward()
		h.right = g.camera.Right()
		h.zoom = g.camera.Zoom
		h.lift = math.Sin(mgl64.DegToRad(g.camera.Pitch))
	}

	h.drawLevel(screen, g)
	h.drawPlayer(screen, g)
	h.drawJoystick(screen, g)
	h.drawBanner(screen, g)
	h.drawText(screen, g)
}

// project maps a world point to screen pixels.
func (h *HUD) project(p mgl64.Vec3) (float32, float32) {
	d := p.Sub(h.center)
	x := h.w/2 + d.Dot(h.right)*h.zoom
	y := h.h/2 - d.Dot(h.fwd)*h.zoom - p[1]*h.lift*h.zoom
	return float32(x), float32(y)
}

func (h *HUD) drawLevel(screen *ebiten.Image, g *Game) {
	if g.level == nil {
		return
	}
	for _, p := range g.level.Platforms {
		clr := p.Color.Or(colorPlatform)
		h.drawQuad(screen, p.Min.Vec(), p.Max.Vec(), p.Top, 2, clr)
		x, y := h.project(mgl64.Vec3{p.Min.X, p.Top, p.Max.Z})
		h.label(screen, fmt.Sprintf("%s %.1f", p.Name, p.Top), float64(x)+4, float64(y)+4, clr)
	}
	for _, w := range g.level.Walls {
		h.drawQuad(screen, w.Min.Vec(), w.Max.Vec(), 0, 3, colorWall)
	}
}

func (h *HUD) drawQuad(screen *ebiten.Image, min, max mgl64.Vec2, y float64, width float32, clr color.Color) {
	corners := [4]mgl64.Vec3{
		{min[0], y, min[1]},
		{max[0], y, min[1]},
		{max[0], y, max[1]},
		{min[0], y, max[1]},
	}
	for i := range corners {
		x0, y0 := h.project(corners[i])
		x1, y1 := h.project(corners[(i+1)%len(corners)])
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

func (h *HUD) drawPlayer(screen *ebiten.Image, g *Game) {
	w := g.world
	t, ok := ecs.Get(w, g.player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	m, _ := ecs.Get(w, g.player, component.MoverComponent.Kind())
	radius := float32(0.4 * h.zoom)

	clr := colorPlayer
	if m != nil && m.Delta.Airborne {
		clr = colorAir
	}

	if sc := levelSpace(w); sc != nil {
		if top, ok := sc.GroundBelow(t.Position, 0.1, physics.CategoryGround); ok && t.Position[1]-top > 0.01 {
			sx, sy := h.project(mgl64.Vec3{t.Position[0], top, t.Position[2]})
			vector.FillCircle(screen, sx, sy, radius*0.8, colorShadow, true)
		}
	}

	x, y := h.project(t.Position)
	vector.FillCircle(screen, x, y, radius, clr, true)

	facing := t.Rotation.Rotate(common.Forward)
	fx, fy := h.project(t.Position.Add(facing.Mul(0.8)))
	vector.StrokeLine(screen, x, y, fx, fy, 3, colorText, true)

	if m != nil && m.Delta.HasDestination {
		dx, dy := h.project(m.Delta.Destination)
		vector.StrokeCircle(screen, dx, dy, 4, 1, colorKnob, true)
	}
}

func (h *HUD) drawJoystick(screen *ebiten.Image, g *Game) {
	m, ok := ecs.Get(g.world, g.player, component.MoverComponent.Kind())
	if !ok || m.Controller == nil {
		return
	}

	js := m.Controller.Input.Joystick()
	if js.Visible {
		ax, ay := float32(js.Anchor[0]), float32(h.h-js.Anchor[1])
		kx, ky := float32(js.Knob[0]), float32(h.h-js.Knob[1])
		vector.StrokeCircle(screen, ax, ay, float32(js.Radius), 2, colorJoystick, true)
		vector.FillCircle(screen, kx, ky, float32(js.Radius*0.35), colorKnob, true)
	}

	btn := g.source.Button
	c := btn.Center(h.w, h.h)
	vector.StrokeCircle(screen, float32(c[0]), float32(h.h-c[1]), float32(btn.Radius), 2, colorJoystick, true)
	h.label(screen, "JUMP", c[0]-14, h.h-c[1]-6, colorJoystick)
}

func (h *HUD) drawBanner(screen *ebiten.Image, g *Game) {
	e, ok := g.world.First(component.BannerComponent.Kind())
	if !ok {
		return
	}
	b, ok := ecs.Get(g.world, e, component.BannerComponent.Kind())
	if !ok {
		return
	}

	alpha := common.Clamp(b.Remaining, 0, 1)
	op := &text.DrawOptions{}
	op.GeoM.Scale(3, 3)
	op.GeoM.Translate(h.w/2-float64(len(b.Text))*7*3/2, 60)
	op.ColorScale.ScaleWithColor(colorBanner)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, b.Text, hudFace, op)
}

func (h *HUD) drawText(screen *ebiten.Image, g *Game) {
	m, ok := ecs.Get(g.world, g.player, component.MoverComponent.Kind())
	if !ok || m.Controller == nil {
		return
	}
	cfg := m.Controller.Config()
	lines := []string{
		fmt.Sprintf("preset %s  %s / %s  jump %s", m.Preset, cfg.Locomotion.Integration, cfg.Locomotion.Turn, cfg.Jump.Strategy),
		fmt.Sprintf("state %s  grounded %v  speed %.2f", m.Controller.Jump.State(), m.Grounded, m.Delta.LocomotionSpeed),
		fmt.Sprintf("tick %d  fps %.0f", g.world.Tick(), ebiten.ActualFPS()),
		"WASD/stick move  Space jump  Q/E camera  F1 debug  F2 copy  Esc menu",
	}
	if anim, ok := ecs.Get(g.world, g.player, component.AnimationComponent.Kind()); ok {
		lines = append(lines, fmt.Sprintf("clip %s frame %d", anim.Current, anim.Frame))
	}
	if g.debug {
		t, _ := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
		if t != nil {
			lines = append(lines, fmt.Sprintf("pos %.2f %.2f %.2f  vel %.2f %.2f %.2f",
				t.Position[0], t.Position[1], t.Position[2],
				m.Delta.Velocity[0], m.Delta.Velocity[1], m.Delta.Velocity[2]))
		}
		lines = append(lines, fmt.Sprintf("input %v", m.Controller.Input.CurrentMovementVector()))
		if deadline, ok := m.Controller.Jump.Deadline(); ok {
			lines = append(lines, fmt.Sprintf("jump deadline %.2f", deadline))
		}
		for _, tm := range g.world.Timings() {
			if tm.Last > 200*time.Microsecond {
				lines = append(lines, fmt.Sprintf("slow %s %v (max %v)", tm.Name, tm.Last, tm.Max))
			}
		}
		for _, evt := range g.lastEvents {
			lines = append(lines, fmt.Sprintf("event %s %v", evt.Type, evt.Entity))
		}
		if g.script != nil {
			lines = append(lines, fmt.Sprintf("script %s %d/%d", g.script.Name(), g.script.Tick(), g.script.Duration()))
		}
	}
	if g.statusTicks > 0 {
		lines = append(lines, g.status)
	}

	for i, line := range lines {
		h.label(screen, line, 10, 10+float64(i)*16, colorText)
	}
}

func (h *HUD) label(screen *ebiten.Image, msg string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, msg, hudFace, op)
}

func levelSpace(w *ecs.World) *physics.Space {
	e, ok := w.First(component.SpaceComponent.Kind())
	if !ok {
		return nil
	}
	sc, ok := ecs.Get(w, e, component.SpaceComponent.Kind())
	if !ok {
		return nil
	}
	return sc.Space
}
