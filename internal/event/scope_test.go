package event

import "testing"

type counter struct {
	moves int
}

func (c *counter) Attach(b *Bus) []*Subscription {
	return []*Subscription{
		b.Subscribe(MouseMove, func(any) { c.moves++ }),
	}
}

func TestScopeAttachesOnlyWhileEntered(t *testing.T) {
	bus := NewBus(nil)
	scope := NewScope(bus)
	c := &counter{}
	scope.Register(c)

	bus.Publish(MouseMove, MouseMoveEvent{DX: 1})
	if c.moves != 0 {
		t.Fatalf("moves = %d before Enter, want 0", c.moves)
	}

	scope.Enter()
	scope.Enter()
	bus.Publish(MouseMove, MouseMoveEvent{DX: 1})
	if c.moves != 1 {
		t.Fatalf("moves = %d after Enter, want 1 (double Enter must not double-attach)", c.moves)
	}

	scope.Exit()
	bus.Publish(MouseMove, MouseMoveEvent{DX: 1})
	if c.moves != 1 {
		t.Errorf("moves = %d after Exit, want 1", c.moves)
	}
	if bus.Count(MouseMove) != 0 {
		t.Errorf("Count(MouseMove) = %d after Exit, want 0", bus.Count(MouseMove))
	}
}

func TestScopeListenFollowsCaptureTopics(t *testing.T) {
	bus := NewBus(nil)
	scope := NewScope(bus)
	c := &counter{}
	scope.Register(c)
	var exits int
	scope.OnExit(func() { exits++ })
	scope.Listen()

	bus.Publish(CaptureEnter, nil)
	if !scope.Active() {
		t.Fatal("scope not active after capture.enter")
	}
	bus.Publish(MouseMove, MouseMoveEvent{})
	bus.Publish(CaptureExit, nil)
	bus.Publish(MouseMove, MouseMoveEvent{})

	if c.moves != 1 {
		t.Errorf("moves = %d, want 1", c.moves)
	}
	if exits != 1 {
		t.Errorf("OnExit ran %d times, want 1", exits)
	}

	scope.Close()
	bus.Publish(CaptureEnter, nil)
	if scope.Active() {
		t.Error("scope re-entered after Close")
	}
}

func TestRegisterWhileEnteredAttachesImmediately(t *testing.T) {
	bus := NewBus(nil)
	scope := NewScope(bus)
	scope.Enter()
	c := &counter{}
	scope.Register(c)
	bus.Publish(MouseMove, MouseMoveEvent{})
	if c.moves != 1 {
		t.Errorf("moves = %d, want 1", c.moves)
	}
}
