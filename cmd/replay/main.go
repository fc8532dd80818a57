// Command replay runs a tengo input script through the movement schedule
// without a window and prints one pose line per tick.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/touchmove/common"
	"github.com/milk9111/touchmove/ecs"
	"github.com/milk9111/touchmove/ecs/component"
	"github.com/milk9111/touchmove/ecs/entity"
	"github.com/milk9111/touchmove/ecs/system"
	"github.com/milk9111/touchmove/logger"
	"github.com/milk9111/touchmove/prefabs"
	"github.com/milk9111/touchmove/script"
)

func main() {
	scriptName := flag.String("script", "walk_jump.tengo", "script in prefabs/scripts/")
	preset := flag.String("preset", "", "movement preset; empty uses player.yaml")
	levelName := flag.String("level", "level", "level prefab in prefabs/")
	ticks := flag.Int("ticks", 0, "ticks to run; 0 uses the script's duration")
	list := flag.Bool("list", false, "list embedded scripts and levels and exit")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log := logger.Init(logger.Config{Level: *logLevel, Format: "console", Output: os.Stderr})

	if *list {
		scripts, err := prefabs.ScriptNames()
		if err != nil {
			log.Error("replay: list scripts", "err", err)
			os.Exit(1)
		}
		levels, err := prefabs.LevelNames()
		if err != nil {
			log.Error("replay: list levels", "err", err)
			os.Exit(1)
		}
		fmt.Printf("scripts:\n  %s\nlevels:\n  %s\n", strings.Join(scripts, "\n  "), strings.Join(levels, "\n  "))
		return
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	if err := run(out, *scriptName, *preset, *levelName, *ticks); err != nil {
		out.Flush()
		log.Error("replay failed", "err", err)
		os.Exit(1)
	}
}

func run(out io.Writer, scriptName, preset, levelName string, ticks int) error {
	src, err := script.Load(scriptName)
	if err != nil {
		return err
	}
	if ticks <= 0 {
		ticks = int(src.Duration())
	}
	if ticks <= 0 {
		return fmt.Errorf("replay: %s declares no duration, pass -ticks", scriptName)
	}

	level, err := prefabs.LoadLevelSpec(levelName)
	if err != nil {
		return err
	}
	w := ecs.NewWorld()
	for _, s := range system.MovementSystems() {
		w.AddSystem(s)
	}
	_, space, err := entity.NewLevel(w, level, 9.81)
	if err != nil {
		return err
	}
	_, cam, err := entity.NewCamera(w)
	if err != nil {
		return err
	}
	player, err := entity.NewPlayer(w, entity.PlayerOptions{
		Preset: preset,
		Spawn:  &level.Spawn,
		Source: src,
		Camera: cam,
		Space:  space,
	})
	if err != nil {
		return err
	}

	for i := 0; i < ticks; i++ {
		w.Update()
		if in, ok := ecs.Get(w, player, component.InputComponent.Kind()); ok && in.Err != nil {
			return in.Err
		}
		if _, err := fmt.Fprintln(out, poseLine(w, player)); err != nil {
			return err
		}
	}
	return nil
}

func poseLine(w *ecs.World, player ecs.Entity) string {
	t, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	m, _ := ecs.Get(w, player, component.MoverComponent.Kind())
	if t == nil || m == nil || m.Controller == nil {
		return fmt.Sprintf("%d missing", w.Tick())
	}

	var events []string
	for _, evt := range w.Events().Drain() {
		events = append(events, string(evt.Type))
	}
	return fmt.Sprintf("%d pos=%.3f,%.3f,%.3f yaw=%.1f state=%s grounded=%v speed=%.3f events=%s",
		w.Tick(),
		t.Position[0], t.Position[1], t.Position[2],
		mgl64.RadToDeg(common.Yaw(t.Rotation)),
		m.Controller.Jump.State(),
		m.Grounded,
		m.Delta.LocomotionSpeed,
		strings.Join(events, ","),
	)
}
