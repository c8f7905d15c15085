// Command autopilot runs the game loop headless, driven by a tengo input
// script, and prints the player pose as it goes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/milk9111/doggo/input"
	"github.com/milk9111/doggo/logger"
	"github.com/milk9111/doggo/loop"
	"github.com/milk9111/doggo/prefabs"
)

func main() {
	scriptName := flag.String("script", "forward", "tengo script in prefabs/scripts (basename, .tengo optional)")
	frames := flag.Int("frames", 300, "number of frames to run")
	every := flag.Int("every", 30, "print the pose every N frames (0 prints only the last)")
	configName := flag.String("config", prefabs.GameSpecFile, "game config in prefabs/")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := "warn"
	if *debug {
		level = "debug"
	}
	logger.Init(logger.Config{Level: level, Format: "console"})

	if err := run(os.Stdout, *configName, *scriptName, *frames, *every); err != nil {
		logger.L().Error("autopilot failed", "err", err)
		os.Exit(1)
	}
}

func run(out io.Writer, configName, scriptName string, frames, every int) error {
	spec, err := prefabs.LoadGameSpec(configName)
	if err != nil {
		return err
	}
	src, err := prefabs.LoadScript(scriptName)
	if err != nil {
		return fmt.Errorf("autopilot: load script %s: %w", scriptName, err)
	}
	script, err := input.NewScriptSource(scriptName, src)
	if err != nil {
		return err
	}

	gl, err := loop.New(spec, &input.Queue{}, loop.NopRenderer{})
	if err != nil {
		return err
	}
	// headless runs don't race the loader
	res := <-loop.LoadModelAsync()
	if res.Err == nil {
		if err := gl.AttachModel(res.Spec); err != nil {
			return err
		}
	}

	for i := 1; i <= frames; i++ {
		script.Poll(gl.Queue())
		gl.Frame()
		if (every > 0 && i%every == 0) || i == frames {
			fmt.Fprintf(out, "%5d %s\n", i, gl.Pose())
		}
	}
	return nil
}
