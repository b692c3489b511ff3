package atlas

import (
	"encoding/json"
	"fmt"
	"image"
	"os"

	"github.com/milk9111/roomscroller/arena"
	"github.com/milk9111/roomscroller/component"
)

type asepriteSheet struct {
	Frames []struct {
		Frame struct {
			X int `json:"x"`
			Y int `json:"y"`
			W int `json:"w"`
			H int `json:"h"`
		} `json:"frame"`
		Duration float64 `json:"duration"`
	} `json:"frames"`
	Meta struct {
		FrameTags []struct {
			Name      string `json:"name"`
			From      int    `json:"from"`
			To        int    `json:"to"`
			Direction string `json:"direction"`
		} `json:"frameTags"`
	} `json:"meta"`
}

// LoadSheet reads an aseprite sheet export (array form) into slices owned
// by a. Durations are converted from milliseconds to seconds. A sheet
// without tags gets one forward tag covering every frame.
func LoadSheet(path string, a *arena.Arena) (component.SpriteSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return component.SpriteSheet{}, fmt.Errorf("atlas: read sheet %s: %w", path, err)
	}
	return ParseSheet(data, a)
}

// ParseSheet is LoadSheet for in-memory JSON.
func ParseSheet(data []byte, a *arena.Arena) (component.SpriteSheet, error) {
	var doc asepriteSheet
	if err := json.Unmarshal(data, &doc); err != nil {
		return component.SpriteSheet{}, fmt.Errorf("atlas: decode sheet: %w", err)
	}
	if len(doc.Frames) == 0 {
		return component.SpriteSheet{}, fmt.Errorf("atlas: sheet has no frames")
	}

	frames := arena.PushSlice[component.Frame](a, len(doc.Frames))
	for i, f := range doc.Frames {
		frames[i] = component.Frame{
			Src:      image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H),
			Duration: f.Duration / 1000,
		}
	}

	last := len(frames) - 1
	tags := doc.Meta.FrameTags
	if len(tags) == 0 {
		anims := arena.PushSlice[component.AnimMeta](a, 1)
		anims[0] = component.AnimMeta{Start: 0, End: last}
		return component.SpriteSheet{Frames: frames, Anims: anims}, nil
	}
	anims := arena.PushSlice[component.AnimMeta](a, len(tags))
	for i, t := range tags {
		from, to := min(max(t.From, 0), last), min(max(t.To, 0), last)
		if to < from {
			from, to = to, from
		}
		anims[i] = component.AnimMeta{Start: from, End: to, Dir: component.ParseDirection(t.Direction)}
	}
	return component.SpriteSheet{Frames: frames, Anims: anims}, nil
}
