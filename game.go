package main

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/touchmove/common"
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/ecs/entity"
	"github.com/milk9111/touchmove/ecs/system"
	"github.com/milk9111/touchmove/input"
	"github.com/milk9111/touchmove/logger"
	"github.com/milk9111/touchmove/prefabs"
	"github.com/milk9111/touchmove/script"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	gravity = 9.81
	// cameraStep is the yaw change per Q/E press, in degrees.
	cameraStep = 45
)

var errQuit = errors.New("quit")

type Options struct {
	Preset    string
	Level     string
	Script    string
	Debug     bool
	Clipboard bool
}

type Game struct {
	opts Options

	world  *ecs.World
	level  *prefabs.LevelSpec
	player ecs.Entity
	camera *component.Camera

	source  *input.EbitenSource
	script  *script.Source
	watcher *prefabs.Watcher

	preset  string
	debug   bool
	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	hud     *HUD

	status      string
	statusTicks int
	lastEvents  []ecs.Event
	scriptDone  bool
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		opts:   opts,
		preset: opts.Preset,
		debug:  opts.Debug,
		source: input.NewEbitenSource(),
		hud:    NewHUD(),
	}
	if opts.Script != "" {
		sc, err := script.Load(opts.Script)
		if err != nil {
			return nil, err
		}
		g.script = sc
	}
	if err := g.build(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
	if err != nil {
		logger.L().Warn("prefabs: hot reload disabled", "err", err)
	} else {
		g.watcher = watcher
	}
	return g, nil
}

// build creates a fresh world from the level, camera and player prefabs.
func (g *Game) build() error {
	level, err := prefabs.LoadLevelSpec(g.opts.Level)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	for _, s := range system.MovementSystems() {
		w.AddSystem(s)
	}
	_, space, err := entity.NewLevel(w, level, gravity)
	if err != nil {
		return err
	}
	_, cam, err := entity.NewCamera(w)
	if err != nil {
		return err
	}
	if g.camera != nil {
		cam.Yaw = g.camera.Yaw
	}

	var src input.Source = g.source
	if g.script != nil {
		src = input.Multi{g.source, g.script}
	}
	player, err := entity.NewPlayer(w, entity.PlayerOptions{
		Preset: g.preset,
		Spawn:  &level.Spawn,
		Source: src,
		Camera: cam,
		Space:  space,
	})
	if err != nil {
		return err
	}

	if g.world != nil && g.player.Valid() {
		entity.DestroyPlayer(g.world, g.player)
	}
	g.world, g.level, g.player, g.camera = w, level, player, cam
	if m, ok := ecs.Get(w, player, component.MoverComponent.Kind()); ok {
		g.preset = m.Preset
		logger.L().Info("game: level ready", "level", level.Name, "preset", m.Preset, "entity", player)
	}
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.handleKeys()
	g.hotReload()

	g.world.Update()
	g.lastEvents = g.world.Events().Drain()
	for _, evt := range g.lastEvents {
		logger.L().Debug("game: event", "type", evt.Type, "entity", evt.Entity, "tick", g.world.Tick())
	}
	if in, ok := ecs.Get(g.world, g.player, component.InputComponent.Kind()); ok && in.Err != nil {
		g.setStatus("input error: " + in.Err.Error())
	}
	if g.script != nil && g.script.Done() && !g.scriptDone {
		g.scriptDone = true
		logger.L().Info("script: finished", "name", g.script.Name(), "ticks", g.script.Tick())
	}

	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.camera.Yaw -= cameraStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.camera.Yaw += cameraStep
	}
}

func (g *Game) hotReload() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		if err := g.reload(name); err != nil {
			logger.L().Warn("prefabs: reload failed", "name", name, "err", err)
			g.setStatus("reload failed: " + name)
			continue
		}
		logger.L().Info("prefabs: reloaded", "name", name)
		g.setStatus("reloaded " + name)
	}
}

func (g *Game) reload(name string) error {
	switch {
	case name == "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return err
		}
		return entity.ReloadPlayer(g.world, g.player, spec, g.opts.Preset)
	case name == "camera.yaml":
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		g.camera.Pitch = spec.Pitch
		g.camera.Zoom = spec.Zoom
		if spec.Smoothness > 0 {
			g.camera.Smoothness = spec.Smoothness
		}
		return nil
	case strings.HasPrefix(name, "scripts/"):
		if g.script == nil || path.Base(g.script.Name()) != path.Base(name) {
			return nil
		}
		sc, err := script.Load(g.script.Name())
		if err != nil {
			return err
		}
		g.script = sc
		g.scriptDone = false
		return g.build()
	case name == levelFile(g.opts.Level):
		return g.build()
	}
	return nil
}

// SetPreset switches the player's tuning and keeps its pose.
func (g *Game) SetPreset(name string) {
	spec, err := prefabs.LoadPlayerSpec()
	if err == nil {
		err = entity.ReloadPlayer(g.world, g.player, spec, name)
	}
	if err != nil {
		logger.L().Warn("game: preset switch failed", "preset", name, "err", err)
		g.setStatus("preset failed: " + name)
		return
	}
	g.preset = name
	g.opts.Preset = name
	g.setStatus("preset " + name)
}

func (g *Game) copySnapshot() {
	if !g.opts.Clipboard {
		g.setStatus("clipboard unavailable")
		return
	}
	m, ok := ecs.Get(g.world, g.player, component.MoverComponent.Kind())
	if !ok || m.Controller == nil {
		return
	}
	t, _ := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
	snap := prefabs.Snapshot{
		Preset:    m.Preset,
		JumpState: m.Controller.Jump.State().String(),
		Grounded:  m.Grounded,
		Movement:  prefabs.MovementSpecFrom(m.Controller.Config()),
	}
	if t != nil {
		snap.Transform = prefabs.TransformSpec{
			X:   t.Position[0],
			Y:   t.Position[1],
			Z:   t.Position[2],
			Yaw: mgl64.RadToDeg(common.Yaw(t.Rotation)),
		}
	}
	data, err := prefabs.MarshalSnapshot(snap)
	if err != nil {
		logger.L().Warn("game: snapshot failed", "err", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus(fmt.Sprintf("copied snapshot (%d bytes)", len(data)))
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = 180
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.hud.Draw(screen, g)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.source.SetScreen(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func levelFile(name string) string {
	if name == "" {
		name = "level"
	}
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name += ".yaml"
	}
	return name
}
