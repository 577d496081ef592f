package polymer

import (
	"github.com/benjaminjack/pinetree/internal/interval"
	"github.com/benjaminjack/pinetree/internal/species"
)

// Genome is a DNA polymer that, on each RNA polymerase binding event,
// spawns a Transcript carrying the ribosome binding sites and stop
// codons contained within the newly transcribed region, and keeps its
// mask shifting in lockstep with the polymerase via the move signal.
type Genome struct {
	Polymer

	transcriptRBSIntervals  []interval.Interval[*Promoter]
	transcriptStopIntervals []interval.Interval[*Terminator]
	transcriptRBS           *interval.Index[*Promoter]
	transcriptStopSites     *interval.Index[*Terminator]
	transcriptWeights       []float64

	bindings map[string]map[string]float64

	transcriptSignal *Signal[*Transcript]
	tracker          species.Tracker
}

// NewGenome constructs a Genome of the given length, starting at
// position 1.
func NewGenome(name string, length int, tracker species.Tracker) *Genome {
	weights := make([]float64, length)
	for i := range weights {
		weights[i] = 1.0
	}
	g := &Genome{
		Polymer:           *NewPolymer(name, 1, length, tracker),
		transcriptWeights: weights,
		bindings:          make(map[string]map[string]float64),
		transcriptSignal:  NewSignal[*Transcript](),
		tracker:           tracker,
	}
	return g
}

// Initialize builds the genome's own interval indices and the separate
// indices used to seed new transcripts.
func (g *Genome) Initialize() error {
	if err := g.Polymer.Initialize(); err != nil {
		return err
	}
	g.transcriptRBS = interval.Build(g.transcriptRBSIntervals)
	g.transcriptStopSites = interval.Build(g.transcriptStopIntervals)
	return nil
}

// AddMask installs a mask starting at start and covering the rest of the
// genome, pushed back only by the named polymerases.
func (g *Genome) AddMask(start int, interactingPolymerases []string) {
	interactions := make(map[string]float64, len(interactingPolymerases))
	for _, name := range interactingPolymerases {
		interactions[name] = 1.0
	}
	g.mask = NewMask(start, g.stop, interactions)
}

// AddPromoter registers a promoter that polymerases can bind to directly
// on the genome (e.g. a phage promoter).
func (g *Genome) AddPromoter(name string, start, stop int, interactions map[string]float64) error {
	prom, err := NewPromoter(name, start, stop, interactions)
	if err != nil {
		return err
	}
	g.addBindingSite(prom)
	g.bindings[name] = cloneWeights(interactions)
	return nil
}

// AddTerminator registers a terminator that polymerases release at when
// traversing the genome directly (e.g. a phage terminator, not a gene's
// stop codon).
func (g *Genome) AddTerminator(name string, start, stop int, efficiency map[string]float64) error {
	term, err := NewTerminator(name, start, stop, efficiency)
	if err != nil {
		return err
	}
	g.addReleaseSite(term)
	return nil
}

// AddGene registers a gene's ribosome binding site and stop codon, both
// of which are only ever bound on transcripts spawned from this genome,
// never on the genome itself.
func (g *Genome) AddGene(name string, start, stop, rbsStart, rbsStop int, rbsStrength float64) error {
	binding := map[string]float64{"ribosome": rbsStrength}
	release := map[string]float64{"ribosome": 1.0}

	rbs, err := NewPromoter(name+"_rbs", rbsStart, rbsStop, binding)
	if err != nil {
		return err
	}
	rbs.SetGene(name)
	g.transcriptRBSIntervals = append(g.transcriptRBSIntervals, interval.Interval[*Promoter]{
		Start: rbs.Start(), Stop: rbs.Stop(), Value: rbs,
	})
	g.bindings[name+"_rbs"] = cloneWeights(binding)

	stopCodon, err := NewTerminator("stop_codon", stop-1, stop, release)
	if err != nil {
		return err
	}
	stopCodon.SetReadingFrame(start % 3)
	stopCodon.SetGene(name)
	g.transcriptStopIntervals = append(g.transcriptStopIntervals, interval.Interval[*Terminator]{
		Start: stopCodon.Start(), Stop: stopCodon.Stop(), Value: stopCodon,
	})

	return nil
}

// AddWeights replaces the per-position weight vector used to seed every
// transcript spawned from this genome from here on.
func (g *Genome) AddWeights(weights []float64) error {
	if len(weights) != g.stop-g.start+1 {
		return &WeightsMismatchError{Polymer: g.name, Want: g.stop - g.start + 1, Got: len(weights)}
	}
	g.transcriptWeights = weights
	return nil
}

// Bindings returns the interaction table registered for every promoter
// and RBS, keyed by promoter/RBS name.
func (g *Genome) Bindings() map[string]map[string]float64 { return g.bindings }

// OnTranscript registers fn to run whenever a new transcript is spawned.
func (g *Genome) OnTranscript(fn func(*Transcript)) (disconnect func()) {
	return g.transcriptSignal.Connect(fn)
}

// Bind attaches pol to promoterName on the genome itself, then spawns a
// Transcript carrying every RBS and stop codon contained within the
// region from pol's new leading edge (its Stop) to the genome's end, and wires the
// transcript's mask to recede on every subsequent move of pol.
func (g *Genome) Bind(pol *Polymerase, promoterName string) error {
	if err := g.Polymer.Bind(pol, promoterName); err != nil {
		return err
	}

	transcript, err := g.buildTranscript(pol.Stop(), g.stop)
	if err != nil {
		return err
	}

	pol.OnMove(func() { transcript.ShiftMask() })
	g.transcriptSignal.Emit(transcript)
	return nil
}

func (g *Genome) buildTranscript(from, to int) (*Transcript, error) {
	var rbsIntervals []interval.Interval[*Promoter]
	for _, rbs := range g.transcriptRBS.FindContained(from, to) {
		clone := rbs.Clone()
		rbsIntervals = append(rbsIntervals, interval.Interval[*Promoter]{
			Start: clone.Start(), Stop: clone.Stop(), Value: clone,
		})
	}

	var stopIntervals []interval.Interval[*Terminator]
	for _, stopCodon := range g.transcriptStopSites.FindContained(from, to) {
		clone := stopCodon.Clone()
		stopIntervals = append(stopIntervals, interval.Interval[*Terminator]{
			Start: clone.Start(), Stop: clone.Stop(), Value: clone,
		})
	}

	weights := make([]float64, len(g.transcriptWeights))
	copy(weights, g.transcriptWeights)

	mask := NewMask(from, to, nil)
	transcript := newTranscript("rna", g.start, g.stop, weights, mask, g.tracker)
	transcript.bindingIntervals = rbsIntervals
	transcript.releaseIntervals = stopIntervals

	if err := transcript.Initialize(); err != nil {
		return nil, err
	}
	return transcript, nil
}
