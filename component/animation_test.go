package component

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func fourFrameSheet(dir Direction) *SpriteSheet {
	frames := make([]Frame, 4)
	for i := range frames {
		frames[i] = Frame{Src: image.Rect(i*16, 0, i*16+16, 16), Duration: 0.1}
	}
	return &SpriteSheet{Frames: frames, Anims: []AnimMeta{{Start: 0, End: 3, Dir: dir}}}
}

func TestStepSequences(t *testing.T) {
	tests := []struct {
		name  string
		dir   Direction
		start int
		want  []int
	}{
		{"forward wraps", Forward, 0, []int{0, 1, 2, 3, 0, 1}},
		{"backward wraps", Backward, 3, []int{3, 2, 1, 0, 3, 2, 1, 0}},
		{"pingpong bounces", PingPong, 0, []int{0, 1, 2, 3, 2, 1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := AnimMeta{Start: 0, End: 3, Dir: tt.dir}
			f, rev := tt.start, false
			got := []int{f}
			for len(got) < len(tt.want) {
				f, rev = Step(meta, f, rev)
				got = append(got, f)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestStepSingleFrame(t *testing.T) {
	for _, dir := range []Direction{Forward, Backward, PingPong} {
		f, rev := Step(AnimMeta{Start: 2, End: 2, Dir: dir}, 2, true)
		if f != 2 || rev {
			t.Fatalf("%s: got frame %d reverse %v", dir, f, rev)
		}
	}
}

func TestAnimatorAdvancesOneFramePerDuration(t *testing.T) {
	sheet := fourFrameSheet(PingPong)
	var a Animator
	a.Restart(sheet, 0)

	got := []int{a.Frame}
	for i := 0; i < 7; i++ {
		a.Update(0.1, sheet)
		got = append(got, a.Frame)
	}
	require.Equal(t, []int{0, 1, 2, 3, 2, 1, 0, 1}, got)

	// partial durations accumulate
	a.Restart(sheet, 0)
	a.Update(0.05, sheet)
	require.Equal(t, 0, a.Frame)
	a.Update(0.06, sheet)
	require.Equal(t, 1, a.Frame)
	require.InDelta(t, 0.01, a.Timer, 1e-9)
}

func TestAnimatorRestartBackwardStartsAtEnd(t *testing.T) {
	sheet := fourFrameSheet(Backward)
	var a Animator
	a.Restart(sheet, 0)
	require.Equal(t, 3, a.Frame)
	require.Equal(t, image.Rect(48, 0, 64, 16), a.Src(sheet))
}

func TestAnimatorNilSheet(t *testing.T) {
	var a Animator
	a.Update(1, nil)
	require.Equal(t, 0, a.Frame)
	require.Equal(t, image.Rectangle{}, a.Src(nil))
}

func TestParseDirection(t *testing.T) {
	require.Equal(t, Backward, ParseDirection("reverse"))
	require.Equal(t, PingPong, ParseDirection("pingpong"))
	require.Equal(t, Forward, ParseDirection("forward"))
	require.Equal(t, Forward, ParseDirection(""))
}
