package main

import (
	"flag"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/touchmove/logger"
	"github.com/milk9111/touchmove/movement"
	"golang.design/x/clipboard"
)

func main() {
	preset := flag.String("preset", "", "movement preset ("+strings.Join(movement.PresetNames(), ", ")+"); empty uses player.yaml")
	levelName := flag.String("level", "level", "level prefab in prefabs/ (basename, .yaml optional)")
	scriptName := flag.String("script", "", "tengo input script in prefabs/scripts/ to play alongside live input")
	debug := flag.Bool("debug", false, "enable debug overlay and logs")
	logFormat := flag.String("log-format", "console", "log format: console, text or json")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	log := logger.Init(logger.Config{Level: level, Format: *logFormat, Output: os.Stderr})

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable, F2 export disabled", "err", err)
		clipboardOK = false
	}

	game, err := NewGame(Options{
		Preset:    *preset,
		Level:     *levelName,
		Script:    *scriptName,
		Debug:     *debug,
		Clipboard: clipboardOK,
	})
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("touchmove")

	if err := ebiten.RunGame(game); err != nil && err != errQuit {
		log.Error("game exited", "err", err)
		os.Exit(1)
	}
}

