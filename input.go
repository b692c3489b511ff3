package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/roomscroller/obj"
)

const stickDeadzone = 0.4

var keyBindings = [...]struct {
	action obj.Action
	keys   []ebiten.Key
	button ebiten.StandardGamepadButton
}{
	{obj.ActionUp, []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, ebiten.StandardGamepadButtonLeftTop},
	{obj.ActionDown, []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, ebiten.StandardGamepadButtonLeftBottom},
	{obj.ActionLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, ebiten.StandardGamepadButtonLeftLeft},
	{obj.ActionRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, ebiten.StandardGamepadButtonLeftRight},
	{obj.ActionA, []ebiten.Key{ebiten.KeySpace, ebiten.KeyZ}, ebiten.StandardGamepadButtonRightBottom},
	{obj.ActionB, []ebiten.Key{ebiten.KeyX, ebiten.KeyJ}, ebiten.StandardGamepadButtonRightLeft},
	{obj.ActionStart, []ebiten.Key{ebiten.KeyEnter, ebiten.KeyEscape}, ebiten.StandardGamepadButtonCenterRight},
	{obj.ActionSelect, []ebiten.Key{ebiten.KeyTab}, ebiten.StandardGamepadButtonCenterLeft},
}

// pollInput writes the keyboard and first gamepad into in. Edges are
// derived by obj.Input from the previous frame's snapshot.
func pollInput(in *obj.Input) {
	gamepad := ebiten.GamepadID(-1)
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 && ebiten.IsStandardGamepadLayoutAvailable(ids[0]) {
		gamepad = ids[0]
	}

	for _, b := range keyBindings {
		down := false
		for _, k := range b.keys {
			if ebiten.IsKeyPressed(k) {
				down = true
				break
			}
		}
		if !down && gamepad >= 0 {
			down = ebiten.IsStandardGamepadButtonPressed(gamepad, b.button)
		}
		in.Set(b.action, down)
	}

	if gamepad >= 0 {
		x := ebiten.StandardGamepadAxisValue(gamepad, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if x < -stickDeadzone {
			in.Set(obj.ActionLeft, true)
		}
		if x > stickDeadzone {
			in.Set(obj.ActionRight, true)
		}
	}
}
