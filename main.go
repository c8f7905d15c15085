package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/doggo/logger"
	"github.com/milk9111/doggo/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	scriptName := flag.String("script", "", "drive the player from a tengo script in prefabs/scripts (basename, .tengo optional)")
	configName := flag.String("config", prefabs.GameSpecFile, "game config in prefabs/")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec(*configName)
	if err != nil {
		logger.L().Warn("failed to load config, using defaults", "file", *configName, "err", err)
		spec = prefabs.DefaultGameSpec()
	}
	logger.Init(loggerConfig(spec, *debug))

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(spec.Render.Width, spec.Render.Height)
	ebiten.SetWindowTitle(spec.Render.Title)
	// one loop iteration per display refresh
	ebiten.SetTPS(ebiten.SyncWithFPS)

	game, err := NewGame(spec, GameOptions{
		ConfigName: *configName,
		ScriptName: *scriptName,
		Debug:      *debug,
	})
	if err != nil {
		logger.L().Error("failed to start", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.L().Error("game exited", "err", err)
		game.Close()
		os.Exit(1)
	}
}

func loggerConfig(spec *prefabs.GameSpec, debug bool) logger.Config {
	cfg := logger.Config{Level: spec.Logging.Level, Format: spec.Logging.Format}
	if debug {
		cfg.Level = "debug"
	}
	return cfg
}
