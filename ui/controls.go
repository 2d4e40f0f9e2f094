package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a one-shot command requested from the controls panel.
type Action int

const (
	ActionFire Action = iota + 1
	ActionReset
	ActionAddFloor
	ActionRemoveFloor
	ActionCycleGravity
	ActionCycleFriction
	ActionCycleSize
	ActionCycleRandomness
	ActionCycleSpeed
	ActionCycleAppearance
)

// Toggles mirrors the boolean switches of the environment.
type Toggles struct {
	Paused          bool
	ContinuousFire  bool
	RandomSpeed     bool
	RemoveParticles bool
	Collisions      bool
	Paths           bool
}

// ControlsState is the environment as shown by the panel.
type ControlsState struct {
	Toggles    Toggles
	Gravity    float64
	Friction   float64
	Scale      float64
	Spread     float64
	RefreshMs  int
	Appearance string
	Floors     int
}

// ControlsResult holds the toggles after user edits and any requested actions.
type ControlsResult struct {
	Toggles Toggles
	Actions []Action
}

// Controls renders the right-side panel with raygui widgets.
type Controls struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControls creates a new controls panel.
func NewControls(x, y, width int32) *Controls {
	return &Controls{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *Controls) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the edited toggles and clicked actions.
func (c *Controls) Draw(state ControlsState) ControlsResult {
	r := c.renderer
	pad := r.Theme.Padding
	row := float32(22)

	r.DrawPanel(c.x, c.y, c.width, 470)

	x := float32(c.x + pad)
	y := float32(c.y + pad)
	w := float32(c.width - 2*pad)

	y = float32(r.DrawSectionHeader(int32(x), int32(y), "Switches"))

	t := state.Toggles
	box := func(label string, v bool) bool {
		out := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, label, v)
		y += row
		return out
	}
	t.Paused = box("Paused", t.Paused)
	t.ContinuousFire = box("Continuous fire", t.ContinuousFire)
	t.RandomSpeed = box("Random speed", t.RandomSpeed)
	t.RemoveParticles = box("Remove particles", t.RemoveParticles)
	t.Collisions = box("Collisions", t.Collisions)
	t.Paths = box("Paths", t.Paths)

	result := ControlsResult{Toggles: t}

	y += 4
	y = float32(r.DrawSectionHeader(int32(x), int32(y), "Presets"))

	button := func(label string, a Action) {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: row - 2}, label) {
			result.Actions = append(result.Actions, a)
		}
		y += row
	}
	button(fmt.Sprintf("Gravity %.3f", state.Gravity), ActionCycleGravity)
	button(fmt.Sprintf("Friction %.2f", state.Friction), ActionCycleFriction)
	button(fmt.Sprintf("Size %.3f", state.Scale), ActionCycleSize)
	button(fmt.Sprintf("Spread %.2f", state.Spread), ActionCycleRandomness)
	button(fmt.Sprintf("Refresh %d ms", state.RefreshMs), ActionCycleSpeed)
	button(state.Appearance, ActionCycleAppearance)

	y += 4
	y = float32(r.DrawSectionHeader(int32(x), int32(y), fmt.Sprintf("Floors: %d", state.Floors)))

	half := (w - float32(pad)) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: row - 2}, "-") {
		result.Actions = append(result.Actions, ActionRemoveFloor)
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(pad), Y: y, Width: half, Height: row - 2}, "+") {
		result.Actions = append(result.Actions, ActionAddFloor)
	}
	y += row + 4

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 28}, "Fire") {
		result.Actions = append(result.Actions, ActionFire)
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(pad), Y: y, Width: half, Height: 28}, "Reset") {
		result.Actions = append(result.Actions, ActionReset)
	}

	return result
}
