package polymer

// Mask represents the unexposed suffix of a polymer: the interval
// [start, stop] that has not yet been synthesized or transcribed, and so
// cannot be bound or crossed except by the polymerases named in its
// interaction table. A mask with Start() > Stop() is exhausted and no
// longer affects the polymer.
type Mask struct {
	start, stop  int
	interactions map[string]float64
}

// NewMask constructs a Mask covering [start, stop]. allowed lists the
// polymerase names that may push the mask back by interacting with it;
// a nil or empty list means no polymerase can push it.
func NewMask(start, stop int, allowed map[string]float64) *Mask {
	return &Mask{start: start, stop: stop, interactions: cloneWeights(allowed)}
}

// Start returns the mask's current leading edge.
func (m *Mask) Start() int { return m.start }

// Stop returns the mask's trailing edge, fixed for the mask's lifetime.
func (m *Mask) Stop() int { return m.stop }

// Exhausted reports whether the mask has receded past its own stop and
// no longer covers anything.
func (m *Mask) Exhausted() bool { return m.start > m.stop }

// CheckInteraction reports whether pol is allowed to push this mask back.
func (m *Mask) CheckInteraction(pol string) bool {
	_, ok := m.interactions[pol]
	return ok
}

// Recede advances the mask's leading edge by one position.
func (m *Mask) Recede() { m.start++ }
