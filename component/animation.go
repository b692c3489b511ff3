package component

import (
	"image"
	"math"
)

// Direction is the playback order of an animation tag.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	PingPong
)

// ParseDirection maps aseprite tag directions onto Direction. Unknown values
// play forward.
func ParseDirection(s string) Direction {
	switch s {
	case "reverse", "backward":
		return Backward
	case "pingpong", "pingpong_reverse":
		return PingPong
	default:
		return Forward
	}
}

func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case PingPong:
		return "pingpong"
	default:
		return "forward"
	}
}

// Frame is one cell of a sprite sheet. Duration is in seconds.
type Frame struct {
	Src      image.Rectangle
	Duration float64
}

// AnimMeta is a tagged frame range [Start, End] of a sheet.
type AnimMeta struct {
	Start int
	End   int
	Dir   Direction
}

// SpriteSheet holds the frames and animation tags of one atlas sprite.
// Both slices are pointer-free and may live in an arena.
type SpriteSheet struct {
	Frames []Frame
	Anims  []AnimMeta
}

// Anim returns the tag at i, clamped to the valid range.
func (s *SpriteSheet) Anim(i int) (AnimMeta, bool) {
	if s == nil || len(s.Anims) == 0 {
		return AnimMeta{}, false
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.Anims) {
		i = len(s.Anims) - 1
	}
	return s.Anims[i], true
}

// Animator is the per-entity animation cursor.
type Animator struct {
	Anim    int
	Frame   int
	Timer   float64
	Reverse bool
}

// Play switches to anim and rewinds. Calling it with the running anim is a no-op.
func (a *Animator) Play(sheet *SpriteSheet, anim int) {
	if a == nil || a.Anim == anim {
		return
	}
	a.Restart(sheet, anim)
}

// Restart rewinds to the first frame of anim. Backward tags start on their
// last frame.
func (a *Animator) Restart(sheet *SpriteSheet, anim int) {
	if a == nil {
		return
	}
	a.Anim = anim
	a.Timer = 0
	a.Reverse = false
	meta, ok := sheet.Anim(anim)
	if !ok {
		a.Frame = 0
		return
	}
	if meta.Dir == Backward {
		a.Frame = meta.End
	} else {
		a.Frame = meta.Start
	}
}

// Update accumulates dt and advances at most one frame once the current
// frame's duration has elapsed.
func (a *Animator) Update(dt float64, sheet *SpriteSheet) {
	if a == nil || sheet == nil || len(sheet.Frames) == 0 {
		return
	}
	meta, ok := sheet.Anim(a.Anim)
	if !ok {
		return
	}
	if a.Frame < 0 || a.Frame >= len(sheet.Frames) {
		a.Frame = meta.Start
	}
	dur := sheet.Frames[a.Frame].Duration
	a.Timer += dt
	if dur <= 0 {
		a.Timer = 0
		a.Frame, a.Reverse = Step(meta, a.Frame, a.Reverse)
		return
	}
	if a.Timer < dur {
		return
	}
	a.Timer = math.Mod(a.Timer, dur)
	a.Frame, a.Reverse = Step(meta, a.Frame, a.Reverse)
}

// Src returns the source rectangle of the current frame.
func (a *Animator) Src(sheet *SpriteSheet) image.Rectangle {
	if a == nil || sheet == nil || a.Frame < 0 || a.Frame >= len(sheet.Frames) {
		return image.Rectangle{}
	}
	return sheet.Frames[a.Frame].Src
}

// Step returns the frame after f within meta and the new ping-pong
// direction. Ping-pong turns around without repeating the end frames.
func Step(meta AnimMeta, f int, reverse bool) (int, bool) {
	if meta.End <= meta.Start {
		return meta.Start, false
	}
	switch meta.Dir {
	case Backward:
		f--
		if f < meta.Start || f > meta.End {
			f = meta.End
		}
		return f, false
	case PingPong:
		if reverse {
			f--
			if f < meta.Start {
				return meta.Start + 1, false
			}
			return f, true
		}
		f++
		if f > meta.End {
			return meta.End - 1, true
		}
		if f < meta.Start {
			f = meta.Start
		}
		return f, false
	default:
		f++
		if f > meta.End || f < meta.Start {
			f = meta.Start
		}
		return f, false
	}
}
