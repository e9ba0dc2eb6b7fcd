package event

// Attacher subscribes a consumer's handlers and hands the subscriptions back to the caller.
type Attacher interface {
	Attach(b *Bus) []*Subscription
}

// AttachFunc adapts a function to Attacher.
type AttachFunc func(b *Bus) []*Subscription

func (f AttachFunc) Attach(b *Bus) []*Subscription { return f(b) }

// Scope holds listeners that are live only while pointer capture is active.
// Enter attaches every registered Attacher; Exit releases what Enter acquired.
type Scope struct {
	bus       *Bus
	attachers []Attacher
	onExit    []func()
	active    []*Subscription
	entered   bool
	own       []*Subscription
}

// NewScope returns a scope bound to bus. Call Listen to drive it from capture topics.
func NewScope(bus *Bus) *Scope {
	return &Scope{bus: bus}
}

// Register adds a consumer. If the scope is already entered it is attached immediately.
func (s *Scope) Register(a Attacher) {
	s.attachers = append(s.attachers, a)
	if s.entered {
		s.active = append(s.active, a.Attach(s.bus)...)
	}
}

// OnExit adds a callback run after listeners are released.
func (s *Scope) OnExit(fn func()) {
	s.onExit = append(s.onExit, fn)
}

func (s *Scope) Enter() {
	if s.entered {
		return
	}
	s.entered = true
	for _, a := range s.attachers {
		s.active = append(s.active, a.Attach(s.bus)...)
	}
}

func (s *Scope) Exit() {
	if !s.entered {
		return
	}
	s.entered = false
	for _, sub := range s.active {
		sub.Release()
	}
	s.active = nil
	for _, fn := range s.onExit {
		fn()
	}
}

func (s *Scope) Active() bool {
	return s.entered
}

// Listen ties Enter/Exit to the CaptureEnter/CaptureExit topics.
func (s *Scope) Listen() {
	if s.own != nil {
		return
	}
	s.own = []*Subscription{
		s.bus.Subscribe(CaptureEnter, func(any) { s.Enter() }),
		s.bus.Subscribe(CaptureExit, func(any) { s.Exit() }),
	}
}

// Close exits the scope and stops listening to capture topics.
func (s *Scope) Close() {
	s.Exit()
	for _, sub := range s.own {
		sub.Release()
	}
	s.own = nil
}
