package prefabs

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// BrainInput is what an enemy script sees each tick. DX/DY point from the
// enemy to the player.
type BrainInput struct {
	T          float64
	DT         float64
	DX, DY     float64
	Dist       float64
	Alert      bool
	Speed      float64
	PatrolTime float64
}

// BrainOutput is what the script decides.
type BrainOutput struct {
	VX   float64
	Fire bool
}

// Brain is a compiled enemy script. Each enemy owns a clone so globals do
// not leak between instances.
type Brain struct {
	path     string
	compiled *tengo.Compiled
}

var brainGlobals = []string{"t", "dt", "dx", "dy", "dist", "speed", "patrol_time", "vx"}

// CompileBrain loads and compiles the script at path (relative to the
// prefabs scripts directory).
func CompileBrain(path string) (*Brain, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("prefabs: empty script path")
	}
	src, err := LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", path, err)
	}
	return compileBrain(path, src)
}

func compileBrain(path string, src []byte) (*Brain, error) {
	script := tengo.NewScript(src)
	for _, name := range brainGlobals {
		_ = script.Add(name, 0.0)
	}
	_ = script.Add("alert", false)
	_ = script.Add("fire", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile script %s: %w", path, err)
	}
	return &Brain{path: path, compiled: compiled}, nil
}

// Path is the script the brain was compiled from.
func (b *Brain) Path() string {
	if b == nil {
		return ""
	}
	return b.path
}

// Clone returns an independent copy for one enemy.
func (b *Brain) Clone() *Brain {
	if b == nil {
		return nil
	}
	return &Brain{path: b.path, compiled: b.compiled.Clone()}
}

// Think runs the script once.
func (b *Brain) Think(in BrainInput) (BrainOutput, error) {
	if b == nil || b.compiled == nil {
		return BrainOutput{}, fmt.Errorf("prefabs: nil brain")
	}
	c := b.compiled
	sets := []struct {
		name string
		val  any
	}{
		{"t", in.T}, {"dt", in.DT}, {"dx", in.DX}, {"dy", in.DY},
		{"dist", in.Dist}, {"alert", in.Alert}, {"speed", in.Speed},
		{"patrol_time", in.PatrolTime},
	}
	for _, s := range sets {
		if err := c.Set(s.name, s.val); err != nil {
			return BrainOutput{}, err
		}
	}
	if err := c.Run(); err != nil {
		return BrainOutput{}, fmt.Errorf("prefabs: run %s: %w", b.path, err)
	}
	return BrainOutput{VX: c.Get("vx").Float(), Fire: c.Get("fire").Bool()}, nil
}
