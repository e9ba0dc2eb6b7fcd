package event

// Topics published by the device layer.
const (
	KeyDown      = "key.down"
	KeyUp        = "key.up"
	MouseMove    = "mouse.move"
	Wheel        = "mouse.wheel"
	CaptureEnter = "capture.enter"
	CaptureExit  = "capture.exit"
)

// KeyEvent carries a physical key code in the "KeyW" / "ArrowUp" / "Space" naming.
type KeyEvent struct {
	Code string
}

// MouseMoveEvent is a relative pointer movement in screen pixels.
type MouseMoveEvent struct {
	DX, DY float32
}

// WheelEvent follows the DOM convention: positive DeltaY scrolls down (away from the user).
type WheelEvent struct {
	DeltaY float32
}
