// Package system owns one running game: the loaded world, the atlas, the
// player and enemies, and the fixed order in which they are ticked. All of
// it hangs off a Context that callers pass around explicitly.
package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/roomscroller/arena"
	"github.com/milk9111/roomscroller/assets"
	"github.com/milk9111/roomscroller/atlas"
	"github.com/milk9111/roomscroller/levels"
	"github.com/milk9111/roomscroller/obj"
	"github.com/milk9111/roomscroller/prefabs"
	"github.com/milk9111/roomscroller/render"
)

// PlayerMarker is the entity identifier of the player spawn point. Every
// other marker identifier names an enemy kind.
const PlayerMarker = "Player"

const scratchSize = 16 << 20

// Options configures NewContext. Zero values fall back to defaults.
type Options struct {
	WorldPath   string
	WorldArena  int
	AtlasWidth  int
	AtlasHeight int
	ViewWidth   int
	ViewHeight  int
	CameraDecay float64
	QueueSize   int
	FrameTime   float64
	Logger      *log.Logger
}

func (o *Options) defaults() {
	if o.WorldPath == "" {
		o.WorldPath = levels.DefaultWorld
	}
	if o.WorldArena <= 0 {
		o.WorldArena = arena.DefaultCapacity
	}
	if o.AtlasWidth <= 0 {
		o.AtlasWidth = 512
	}
	if o.AtlasHeight <= 0 {
		o.AtlasHeight = 512
	}
	if o.ViewWidth <= 0 {
		o.ViewWidth = obj.DefaultViewWidth
	}
	if o.ViewHeight <= 0 {
		o.ViewHeight = obj.DefaultViewHeight
	}
	if o.FrameTime <= 0 {
		o.FrameTime = 1.0 / 60
	}
	if o.Logger == nil {
		o.Logger = log.WithPrefix("system")
	}
}

// Stats are counters for the current session.
type Stats struct {
	Frames  int
	Seconds float64
	Deaths  int
	Kills   int
}

// Context is the whole mutable state of one game.
type Context struct {
	World   *levels.World
	Atlas   *atlas.Atlas
	Player  *obj.Player
	Enemies []*obj.Enemy
	Rooms   obj.ActiveRooms
	Camera  *obj.Camera
	Input   obj.Input
	Queue   *render.Queue
	Stats   Stats

	opts       Options
	scratch    *arena.Arena
	enemySpecs map[string]*prefabs.EnemySpec
	brains     map[string]*prefabs.Brain
	deadTimer  float64
	logger     *log.Logger
}

// NewContext loads the world and prefabs, packs the atlas and spawns every
// entity from the world's markers.
func NewContext(opts Options) (*Context, error) {
	opts.defaults()
	c := &Context{
		opts:       opts,
		logger:     opts.Logger,
		enemySpecs: make(map[string]*prefabs.EnemySpec),
		brains:     make(map[string]*prefabs.Brain),
		Queue:      render.NewQueue(opts.QueueSize),
		Camera:     obj.NewCamera(float64(opts.ViewWidth), float64(opts.ViewHeight), opts.CameraDecay),
	}

	var err error
	if c.scratch, err = arena.New(scratchSize); err != nil {
		return nil, fmt.Errorf("system: scratch arena: %w", err)
	}
	if c.World, err = c.loadWorld(opts.WorldPath); err != nil {
		c.Close()
		return nil, err
	}
	if c.Atlas, err = atlas.New(opts.AtlasWidth, opts.AtlasHeight, c.scratch); err != nil {
		c.Close()
		return nil, err
	}

	reg := assets.NewRegistrar(c.Atlas)
	if err := c.World.LoadAssets(reg); err != nil {
		c.logger.Warn("world assets incomplete", "err", err)
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("system: %w", err)
	}
	registerSprite(reg, playerSpec.Sprite)
	registerSprite(reg, playerSpec.Projectile.Sprite)
	c.Player = obj.NewPlayer(playerSpec)

	for kind := range c.enemyKinds() {
		if _, err := c.loadEnemyKind(kind); err != nil {
			c.logger.Warn("enemy kind skipped", "kind", kind, "err", err)
			continue
		}
		spec := c.enemySpecs[kind]
		registerSprite(reg, spec.Sprite)
		registerSprite(reg, spec.Projectile.Sprite)
	}

	if err := c.Atlas.Pack(); err != nil {
		if !errors.Is(err, atlas.ErrNoSpace) {
			c.Close()
			return nil, err
		}
		c.logger.Warn("atlas too small, some sprites will not draw", "err", err)
	}

	c.Player.BindSprites(c.Atlas)
	c.Spawn()
	return c, nil
}

func (c *Context) loadWorld(path string) (*levels.World, error) {
	w, err := levels.LoadWorld(path,
		levels.WithScratch(c.scratch),
		levels.WithCapacity(c.opts.WorldArena),
		levels.WithLogger(log.WithPrefix("levels")),
	)
	if err != nil {
		return nil, err
	}
	c.logger.Info("world loaded", "path", path, "rooms", len(w.Rooms()), "bytes", w.MemoryUsed())
	return w, nil
}

// registerSprite adds a prefab sprite unless its key is already in the atlas.
func registerSprite(reg *assets.Registrar, s prefabs.SpriteSpec) {
	if s.Key == "" || s.Image == "" {
		return
	}
	if reg.Find(s.Key) != atlas.InvalidSlot {
		return
	}
	sheet := ""
	if s.Sheet != "" {
		sheet = assetPath(s.Sheet)
	}
	reg.Add(s.Key, assetPath(s.Image), sheet)
}

func assetPath(name string) string {
	return "assets/" + name
}

// Close releases the world, the atlas and the scratch arena.
func (c *Context) Close() {
	if c == nil {
		return
	}
	if c.World != nil {
		_ = c.World.Release()
		c.World = nil
	}
	if c.Atlas != nil {
		c.Atlas.Release()
		c.Atlas = nil
	}
	if c.scratch != nil {
		_ = c.scratch.Release()
		c.scratch = nil
	}
}

// ReloadWorld swaps in the world at path, keeping the packed atlas, and
// respawns every entity. On error the current world stays loaded.
func (c *Context) ReloadWorld(path string) error {
	w, err := c.loadWorld(path)
	if err != nil {
		return err
	}
	if missing := w.AdoptSlots(c.Atlas.Find); missing > 0 {
		c.logger.Warn("reloaded world uses tilesets not in the atlas", "missing", missing)
	}
	for kind := range kindsOf(w) {
		if _, ok := c.enemySpecs[kind]; ok {
			continue
		}
		if _, err := c.loadEnemyKind(kind); err != nil {
			c.logger.Warn("enemy kind skipped", "kind", kind, "err", err)
		}
	}
	old := c.World
	c.World = w
	_ = old.Release()
	c.opts.WorldPath = path
	c.Spawn()
	return nil
}

// ReloadPrefabs re-reads the player and enemy tuning and recompiles enemy
// scripts. Sprites stay as packed.
func (c *Context) ReloadPrefabs() error {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	c.Player.Spec = playerSpec

	var errs []error
	for kind, old := range c.enemySpecs {
		spec, err := prefabs.LoadEnemySpec(kind)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*old = *spec
		delete(c.brains, kind)
		if spec.Script != "" {
			brain, err := prefabs.CompileBrain(spec.Script)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			c.brains[kind] = brain
		}
	}
	for _, e := range c.Enemies {
		e.SetBrain(c.brains[e.Kind].Clone())
	}
	return errors.Join(errs...)
}

func (c *Context) loadEnemyKind(kind string) (*prefabs.EnemySpec, error) {
	spec, err := prefabs.LoadEnemySpec(kind)
	if err != nil {
		return nil, err
	}
	if spec.Script != "" {
		brain, err := prefabs.CompileBrain(spec.Script)
		if err != nil {
			return nil, err
		}
		c.brains[kind] = brain
	}
	c.enemySpecs[kind] = spec
	return spec, nil
}

func (c *Context) enemyKinds() map[string]struct{} {
	return kindsOf(c.World)
}

func kindsOf(w *levels.World) map[string]struct{} {
	kinds := make(map[string]struct{})
	eachMarker(w, func(_ int, name string, _ *levels.Marker) {
		if name != PlayerMarker {
			kinds[strings.Clone(name)] = struct{}{}
		}
	})
	return kinds
}

// eachMarker passes identifiers that live in w's arena. Clone any name kept
// past w.Release.
func eachMarker(w *levels.World, fn func(room int, name string, m *levels.Marker)) {
	for ri := range w.Rooms() {
		layers := w.Layers(ri)
		for li := range layers {
			if layers[li].Kind != levels.LayerEntities {
				continue
			}
			markers := w.Markers(&layers[li])
			for mi := range markers {
				fn(ri, w.String(markers[mi].Identifier), &markers[mi])
			}
		}
	}
}

func markerPos(m *levels.Marker) cp.Vector {
	return cp.Vector{X: float64(m.WorldX), Y: float64(m.WorldY)}
}
