package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/milk9111/roomscroller/levels"
	"github.com/milk9111/roomscroller/prefabs"
)

// Reloader hot-reloads the world file and prefabs while the game runs.
// Poll is called by the frame loop between ticks.
type Reloader struct {
	ctx     *Context
	world   *levels.Watcher
	prefabs *prefabs.Watcher
}

// Watch starts watching the world file (when it exists on disk) and the
// prefab directories under the working directory.
func (c *Context) Watch() (*Reloader, error) {
	r := &Reloader{ctx: c}
	if _, err := os.Stat(c.opts.WorldPath); err == nil {
		w, err := levels.Watch(c.opts.WorldPath)
		if err != nil {
			return nil, err
		}
		r.world = w
	}

	var dirs []string
	for _, dir := range []string{"prefabs", filepath.Join("prefabs", "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) > 0 {
		pw, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.prefabs = pw
	}
	if r.world == nil && r.prefabs == nil {
		c.logger.Info("nothing on disk to watch")
	}
	return r, nil
}

// Poll applies pending edits. Reload failures are logged and the running
// game keeps its previous state.
func (r *Reloader) Poll() {
	if r == nil {
		return
	}
	c := r.ctx
	if r.world != nil && r.world.Changed() {
		if err := c.ReloadWorld(c.opts.WorldPath); err != nil {
			c.logger.Error("world reload failed", "path", c.opts.WorldPath, "err", err)
		} else {
			c.logger.Info("world reloaded", "path", c.opts.WorldPath)
		}
	}
	if r.prefabs != nil {
		if changed := r.prefabs.Drain(); len(changed) > 0 {
			if err := c.ReloadPrefabs(); err != nil {
				c.logger.Error("prefab reload failed", "files", changed, "err", err)
			} else {
				c.logger.Info("prefabs reloaded", "files", changed)
			}
		}
	}
}

// Close stops both watchers.
func (r *Reloader) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	if r.world != nil {
		errs = append(errs, r.world.Close())
	}
	if r.prefabs != nil {
		errs = append(errs, r.prefabs.Close())
	}
	return errors.Join(errs...)
}

// Run ticks the game headless for frames frames (forever when frames <= 0)
// or until ctx is cancelled. With a nil pacer every tick advances by
// Options.FrameTime and the loop does not sleep. reload may be nil.
func (c *Context) Run(ctx context.Context, frames int, pacer *Pacer, reload *Reloader) Stats {
	for i := 0; frames <= 0 || i < frames; i++ {
		if ctx.Err() != nil {
			break
		}
		dt := c.opts.FrameTime
		if pacer != nil {
			dt = pacer.Begin()
		}
		c.Tick(dt)
		c.Render(c.Queue)
		reload.Poll()
		if pacer != nil {
			pacer.End()
		}
	}
	return c.Stats
}
