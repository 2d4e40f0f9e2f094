package game

import rl "github.com/gen2brain/raylib-go/raylib"

// Camera steps per frame while a key is held
const (
	yawStep    = 0.1
	heightStep = 1.0
	zoomStep   = 1.0
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyF) {
		g.Fire()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		g.logDiagnostics()
	}
	if rl.IsKeyPressed(rl.KeyP) || rl.IsKeyPressed(rl.KeySpace) {
		g.world.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.showPanel = !g.showPanel
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	// Floors
	if rl.IsKeyPressed(rl.KeyQ) {
		g.world.RemoveFloor()
	}
	if rl.IsKeyPressed(rl.KeyW) {
		g.world.AddFloor()
	}

	g.handleCannonInput()
	g.handleCameraInput()
}

// handleCannonInput moves the fire position on the horizontal plane.
func (g *Game) handleCannonInput() {
	step := g.cfg.Cannon.MoveStep

	if rl.IsKeyPressed(rl.KeySeven) {
		g.world.MoveCannon(-step, 0)
	}
	if rl.IsKeyPressed(rl.KeyEight) {
		g.world.MoveCannon(step, 0)
	}
	if rl.IsKeyPressed(rl.KeyNine) {
		g.world.MoveCannon(0, -step)
	}
	if rl.IsKeyPressed(rl.KeyZero) {
		g.world.MoveCannon(0, step)
	}
}

// handleCameraInput processes orbit camera controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	if rl.IsKeyDown(rl.KeyOne) {
		g.camera.Rotate(yawStep)
	}
	if rl.IsKeyDown(rl.KeyTwo) {
		g.camera.Rotate(-yawStep)
	}
	if rl.IsKeyDown(rl.KeyThree) {
		g.camera.Raise(heightStep)
	}
	if rl.IsKeyDown(rl.KeyFour) {
		g.camera.Raise(-heightStep)
	}
	if rl.IsKeyDown(rl.KeyFive) {
		g.camera.ZoomBy(zoomStep)
	}
	if rl.IsKeyDown(rl.KeySix) {
		g.camera.ZoomBy(-zoomStep)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(-float64(wheel) * zoomStep * 2)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
