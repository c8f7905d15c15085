package loop

import (
	"time"

	"github.com/milk9111/doggo/logger"
	"github.com/milk9111/doggo/prefabs"
)

// ModelResult is the outcome of a background model load.
type ModelResult struct {
	Spec *prefabs.PlayerModelSpec
	Err  error
}

// LoadModelAsync loads the player model off the frame loop. The channel
// yields exactly one result.
func LoadModelAsync() <-chan ModelResult {
	ch := make(chan ModelResult, 1)
	go func() {
		start := time.Now()
		logger.L().Info("loading player model", "file", prefabs.PlayerSpecFile)
		spec, err := prefabs.LoadPlayerModelSpec()
		if err != nil {
			logger.L().Error("failed to load player model", "file", prefabs.PlayerSpecFile, "err", err)
		} else {
			logger.L().Info("player model loaded", "file", prefabs.PlayerSpecFile, "took", time.Since(start))
		}
		ch <- ModelResult{Spec: spec, Err: err}
	}()
	return ch
}

// PollModel attaches the model if the load has finished. It reports whether
// the channel is done with, so callers can drop it.
func (g *GameLoop) PollModel(ch <-chan ModelResult) bool {
	select {
	case res := <-ch:
		if res.Err != nil {
			return true
		}
		if err := g.AttachModel(res.Spec); err != nil {
			logger.L().Error("failed to attach player model", "err", err)
		}
		return true
	default:
		return false
	}
}
