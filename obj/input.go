package obj

// Action is a logical button. Devices are mapped onto actions by the
// poller that fills the snapshot.
type Action uint8

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionA // confirm / jump
	ActionB // cancel / shoot
	ActionStart
	ActionSelect
	numActions
)

var actionNames = [numActions]string{"up", "down", "left", "right", "a", "b", "start", "select"}

func (a Action) String() string {
	if a >= numActions {
		return "unknown"
	}
	return actionNames[a]
}

// Input is the per-tick input snapshot. The poller calls Set for every
// action before the tick and EndFrame after it.
type Input struct {
	down     [numActions]bool
	prevDown [numActions]bool
}

// Set records whether a is held this tick.
func (i *Input) Set(a Action, down bool) {
	if a >= numActions {
		return
	}
	i.down[a] = down
}

// Held reports whether a is down this tick.
func (i *Input) Held(a Action) bool {
	return a < numActions && i.down[a]
}

// Pressed reports a down edge.
func (i *Input) Pressed(a Action) bool {
	return a < numActions && i.down[a] && !i.prevDown[a]
}

// Released reports an up edge.
func (i *Input) Released(a Action) bool {
	return a < numActions && !i.down[a] && i.prevDown[a]
}

// AxisX is -1, 0 or 1 from Left/Right.
func (i *Input) AxisX() float64 {
	var x float64
	if i.Held(ActionLeft) {
		x--
	}
	if i.Held(ActionRight) {
		x++
	}
	return x
}

// EndFrame latches the current state for next tick's edge detection.
func (i *Input) EndFrame() {
	i.prevDown = i.down
}

// Clear releases every action without producing Released edges next tick.
func (i *Input) Clear() {
	i.down = [numActions]bool{}
	i.prevDown = [numActions]bool{}
}
