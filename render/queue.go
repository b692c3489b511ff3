// Package render collects draw commands during the tick and hands them to
// a backend. Only the backend knows about ebiten, so everything that fills
// the queue stays testable without a window.
package render

import (
	"image"
	"image/color"
)

// DefaultCapacity is the number of commands a queue holds before dropping.
const DefaultCapacity = 8192

// DrawCmd draws Src of atlas slot Slot into Dst, both in pixels. Src is
// relative to the slot's region; an empty Src means the whole region. Dst
// is in screen space. A zero Tint draws the sprite unchanged.
type DrawCmd struct {
	Dst   image.Rectangle
	Src   image.Rectangle
	Slot  uint32
	FlipH bool
	FlipV bool
	Tint  color.RGBA
}

// Queue is a preallocated list of draw commands, reset every frame.
type Queue struct {
	cmds    []DrawCmd
	dropped int
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{cmds: make([]DrawCmd, 0, capacity)}
}

// Push appends cmd. Commands past capacity are dropped and counted.
func (q *Queue) Push(cmd DrawCmd) bool {
	if len(q.cmds) == cap(q.cmds) {
		q.dropped++
		return false
	}
	q.cmds = append(q.cmds, cmd)
	return true
}

// Commands returns the queued commands in submission order.
func (q *Queue) Commands() []DrawCmd { return q.cmds }

func (q *Queue) Len() int { return len(q.cmds) }

// Dropped counts commands lost to a full queue since the last Reset.
func (q *Queue) Dropped() int { return q.dropped }

// Reset empties the queue without freeing it.
func (q *Queue) Reset() {
	q.cmds = q.cmds[:0]
	q.dropped = 0
}

// Visible reports whether dst intersects a screen of w×h pixels.
func Visible(dst image.Rectangle, w, h int) bool {
	return dst.Overlaps(image.Rect(0, 0, w, h))
}

// SourceRect maps src, relative to an atlas region, into atlas pixels and
// clips it to the region.
func SourceRect(region, src image.Rectangle) image.Rectangle {
	if src.Empty() {
		return region
	}
	return src.Add(region.Min).Intersect(region)
}
