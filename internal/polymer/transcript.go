package polymer

import "github.com/benjaminjack/pinetree/internal/species"

// Transcript is an RNA molecule produced by a Genome, embedding a Polymer
// value rather than inheriting from one: the only Transcript-specific
// behavior is setting a bound ribosome's reading frame, so a thin
// post-Bind hook is enough.
type Transcript struct {
	Polymer
}

// newTranscript constructs a Transcript spanning [start, stop] with the
// given per-position weights and initial mask.
func newTranscript(name string, start, stop int, weights []float64, mask *Mask, tracker species.Tracker) *Transcript {
	t := &Transcript{Polymer: *NewPolymer(name, start, stop, tracker)}
	t.weights = weights
	t.mask = mask
	return t
}

// Bind attaches a ribosome to promoterName and sets its reading frame
// from its landing position.
func (t *Transcript) Bind(pol *Polymerase, promoterName string) error {
	if err := t.Polymer.Bind(pol, promoterName); err != nil {
		return err
	}
	pol.SetReadingFrame(pol.Start() % 3)
	return nil
}
