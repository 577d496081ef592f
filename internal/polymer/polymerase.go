package polymer

import "fmt"

// Polymerase is a species that moves along a Polymer, occupying
// [start, stop] with stop - start + 1 == footprint for its whole
// lifetime.
type Polymerase struct {
	name         string
	start, stop  int
	footprint    int
	speed        float64
	readingFrame int
	moveSignal   *Signal[struct{}]
}

// NewPolymerase constructs a Polymerase with the given footprint and
// speed. Its position is undefined until SetPosition is called, normally
// by Polymer.Bind.
func NewPolymerase(name string, footprint int, speed float64) *Polymerase {
	return &Polymerase{
		name:       name,
		footprint:  footprint,
		speed:      speed,
		moveSignal: NewSignal[struct{}](),
	}
}

// Name returns the polymerase's species name.
func (p *Polymerase) Name() string { return p.name }

// Start returns the polymerase's first occupied position, its trailing
// edge (polymerases move toward higher positions).
func (p *Polymerase) Start() int { return p.start }

// Stop returns the polymerase's last occupied position, its leading edge.
func (p *Polymerase) Stop() int { return p.stop }

// Footprint returns the fixed number of positions this polymerase
// occupies.
func (p *Polymerase) Footprint() int { return p.footprint }

// Speed returns the polymerase's base translocation speed.
func (p *Polymerase) Speed() float64 { return p.speed }

// ReadingFrame returns the polymerase's current reading frame, relevant
// only for polymerases translating a Transcript.
func (p *Polymerase) ReadingFrame() int { return p.readingFrame }

// SetReadingFrame sets the polymerase's reading frame.
func (p *Polymerase) SetReadingFrame(frame int) { p.readingFrame = frame }

// SetPosition places the polymerase's trailing edge at start, extending
// stop by its footprint.
func (p *Polymerase) SetPosition(start int) {
	p.start = start
	p.stop = start + p.footprint - 1
}

// Move advances the polymerase by one position and emits its move
// signal.
func (p *Polymerase) Move() {
	p.start++
	p.stop++
	p.EmitMove()
}

// MoveBack reverts the polymerase by one position, without emitting a
// move signal. It fails if doing so would move the polymerase to a
// negative coordinate.
func (p *Polymerase) MoveBack() error {
	if p.start <= 0 {
		return fmt.Errorf("polymerase %q: cannot move back past coordinate 0", p.name)
	}
	p.start--
	p.stop--
	return nil
}

// EmitMove fires the move signal without changing position, used to
// notify subscribers that a terminator's readthrough region has been
// fully exposed even though the polymerase itself has already stopped.
func (p *Polymerase) EmitMove() {
	p.moveSignal.Emit(struct{}{})
}

// OnMove registers fn to run on every Move/EmitMove call and returns a
// function that unregisters it.
func (p *Polymerase) OnMove(fn func()) (disconnect func()) {
	return p.moveSignal.Connect(func(struct{}) { fn() })
}
