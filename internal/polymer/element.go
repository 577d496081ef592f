package polymer

import "fmt"

// elementCore holds the fields and reference-counted coverage state
// shared by Promoter and Terminator, modeling the common capability set
// (name, span, Cover/Uncover, IsCovered, SaveState, CheckInteraction)
// described for binding and release sites rather than a base class.
type elementCore struct {
	name         string
	start, stop  int
	gene         string
	coveredCount int
	snapshot     bool
	interactions map[string]float64
}

func validateSite(name string, start, stop int, interactions map[string]float64, isEfficiency bool) error {
	if start < 0 || stop < 0 {
		return fmt.Errorf("polymer: element %q: start and stop must be non-negative, got (%d, %d)", name, start, stop)
	}
	if start > stop {
		return fmt.Errorf("polymer: element %q: start (%d) must not be after stop (%d)", name, start, stop)
	}
	for pol, w := range interactions {
		if w < 0 {
			return fmt.Errorf("polymer: element %q: interaction constant for %q must not be negative, got %v", name, pol, w)
		}
		if isEfficiency && w > 1 {
			return fmt.Errorf("polymer: element %q: efficiency for %q must not exceed 1, got %v", name, pol, w)
		}
	}
	return nil
}

func cloneWeights(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Name returns the element's species name.
func (e *elementCore) Name() string { return e.name }

// Start returns the element's first covered position.
func (e *elementCore) Start() int { return e.start }

// Stop returns the element's last covered position.
func (e *elementCore) Stop() int { return e.stop }

// Gene returns the gene label associated with this element, if any.
func (e *elementCore) Gene() string { return e.gene }

// SetGene sets the gene label, used for RBS promoters and stop-codon
// terminators so ribosome bookkeeping and termination reporting can
// attribute the event to a gene.
func (e *elementCore) SetGene(gene string) { e.gene = gene }

// IsCovered reports whether the element is currently covered by at least
// one occluding polymerase or mask.
func (e *elementCore) IsCovered() bool { return e.coveredCount > 0 }

// WasCovered reports whether the element is covered now but was not as of
// the last SaveState call.
func (e *elementCore) WasCovered() bool { return e.IsCovered() && !e.snapshot }

// WasUncovered reports whether the element is uncovered now but was
// covered as of the last SaveState call.
func (e *elementCore) WasUncovered() bool { return !e.IsCovered() && e.snapshot }

// SaveState snapshots the current covered state, resetting WasCovered and
// WasUncovered until the next transition.
func (e *elementCore) SaveState() { e.snapshot = e.IsCovered() }

// Cover increments the element's coverage reference count.
func (e *elementCore) Cover() { e.coveredCount++ }

// Uncover decrements the element's coverage reference count.
func (e *elementCore) Uncover() {
	if e.coveredCount > 0 {
		e.coveredCount--
	}
}

// CheckInteraction reports whether pol has an entry in this element's
// interaction table.
func (e *elementCore) CheckInteraction(pol string) bool {
	_, ok := e.interactions[pol]
	return ok
}

// Promoter is a binding site a polymerase can attach to.
type Promoter struct {
	elementCore
}

// NewPromoter constructs a Promoter, validating its span and binding
// constants.
func NewPromoter(name string, start, stop int, interactions map[string]float64) (*Promoter, error) {
	if err := validateSite(name, start, stop, interactions, false); err != nil {
		return nil, err
	}
	return &Promoter{elementCore{
		name:         name,
		start:        start,
		stop:         stop,
		interactions: cloneWeights(interactions),
	}}, nil
}

// BindingConstant returns the binding constant for pol, or zero if pol
// does not interact with this promoter.
func (p *Promoter) BindingConstant(pol string) float64 { return p.interactions[pol] }

// Clone returns an independent copy of p, used when a Genome's promoter
// is incorporated into a freshly transcribed Transcript.
func (p *Promoter) Clone() *Promoter {
	c := *p
	c.interactions = cloneWeights(p.interactions)
	return &c
}

// Terminator is a release site that, when encountered in-frame by a
// polymerase it interacts with, probabilistically ends translocation.
type Terminator struct {
	elementCore
	readthrough  bool
	readingFrame int
	frameSet     bool
}

// NewTerminator constructs a Terminator, validating its span and release
// efficiencies (each of which must lie in [0, 1]).
func NewTerminator(name string, start, stop int, efficiency map[string]float64) (*Terminator, error) {
	if err := validateSite(name, start, stop, efficiency, true); err != nil {
		return nil, err
	}
	return &Terminator{
		elementCore: elementCore{
			name:         name,
			start:        start,
			stop:         stop,
			interactions: cloneWeights(efficiency),
		},
		readingFrame: -1,
	}, nil
}

// Efficiency returns the release efficiency for pol, or zero if pol does
// not interact with this terminator.
func (t *Terminator) Efficiency(pol string) float64 { return t.interactions[pol] }

// Readthrough reports whether a polymerase has failed its release roll
// at this terminator and not yet moved past it. Polymer.move clears the
// latch once that polymerase's start has passed the terminator's stop.
func (t *Terminator) Readthrough() bool { return t.readthrough }

// SetReadthrough sets or clears the readthrough latch.
func (t *Terminator) SetReadthrough(v bool) { t.readthrough = v }

// SetReadingFrame restricts this terminator to only interact with
// polymerases currently in the given reading frame, as for a stop codon.
func (t *Terminator) SetReadingFrame(frame int) {
	t.readingFrame = frame
	t.frameSet = true
}

// CheckInteractionFrame reports whether pol interacts with this
// terminator and, if a reading frame requirement was set, whether frame
// matches it.
func (t *Terminator) CheckInteractionFrame(pol string, frame int) bool {
	if !t.CheckInteraction(pol) {
		return false
	}
	if t.frameSet && frame != t.readingFrame {
		return false
	}
	return true
}

// Clone returns an independent copy of t, used when a Genome's stop
// codon is incorporated into a freshly transcribed Transcript.
func (t *Terminator) Clone() *Terminator {
	c := *t
	c.interactions = cloneWeights(t.interactions)
	return &c
}
