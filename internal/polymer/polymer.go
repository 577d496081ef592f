// Package polymer implements the stochastic simulation core: polymerases
// moving along a linear polymer, binding at promoters, colliding with one
// another and with a receding mask, and releasing at terminators.
//
// A Polymer tracks its own polymerases, per-position weights and a
// Gillespie-style cached propensity list so that Execute can advance the
// simulation by exactly one reaction without rescanning the whole
// polymerase list.
package polymer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/benjaminjack/pinetree/internal/interval"
	"github.com/benjaminjack/pinetree/internal/randutil"
	"github.com/benjaminjack/pinetree/internal/species"
)

// TerminationEvent describes a polymerase leaving a polymer, either by
// running off a terminator or by falling off the end.
type TerminationEvent struct {
	PolymerIndex int
	PolymerName  string
	Polymerase   string
	Gene         string
}

// coverable is the minimal capability shared by Promoter and Terminator
// needed to drive the uncovered/species_log bookkeeping generically.
type coverable interface {
	Name() string
	IsCovered() bool
	Cover()
	Uncover()
}

// Polymer is a linear sequence of positions along which polymerases move,
// with a fixed set of promoters and terminators and an optional receding
// mask over its unsynthesized suffix.
type Polymer struct {
	name        string
	start, stop int
	weights     []float64

	bindingIntervals []interval.Interval[*Promoter]
	releaseIntervals []interval.Interval[*Terminator]
	bindingSites     *interval.Index[*Promoter]
	releaseSites     *interval.Index[*Terminator]

	polymerases []*Polymerase
	propList    []float64
	propSum     float64

	uncovered  map[string]int
	speciesLog map[string]int

	mask *Mask

	index             int
	terminationSignal *Signal[TerminationEvent]

	logger  *zap.Logger
	tracker species.Tracker
}

// NewPolymer constructs a Polymer spanning [start, stop] with uniform
// weight 1.0 at every position and no mask (fully exposed).
func NewPolymer(name string, start, stop int, tracker species.Tracker) *Polymer {
	weights := make([]float64, stop-start+1)
	for i := range weights {
		weights[i] = 1.0
	}
	return &Polymer{
		name:              name,
		start:             start,
		stop:              stop,
		weights:           weights,
		uncovered:         make(map[string]int),
		speciesLog:        make(map[string]int),
		mask:              NewMask(stop+1, stop, nil),
		terminationSignal: NewSignal[TerminationEvent](),
		logger:            zap.NewNop(),
		tracker:           tracker,
	}
}

// SetLogger sets the polymer's structured logger.
func (p *Polymer) SetLogger(l *zap.Logger) { p.logger = l }

// Name returns the polymer's name.
func (p *Polymer) Name() string { return p.name }

// Start returns the polymer's first position.
func (p *Polymer) Start() int { return p.start }

// Stop returns the polymer's last position.
func (p *Polymer) Stop() int { return p.stop }

// Index returns the scheduler-assigned index of this polymer.
func (p *Polymer) Index() int { return p.index }

// SetIndex sets the scheduler-assigned index of this polymer.
func (p *Polymer) SetIndex(i int) { p.index = i }

// PropSum returns the polymer's total cached propensity.
func (p *Polymer) PropSum() float64 { return p.propSum }

// Uncovered returns the number of currently-exposed, uncovered instances
// of the binding-site species name.
func (p *Polymer) Uncovered(name string) int { return p.uncovered[name] }

// SpeciesLog returns the coverage-transition deltas accumulated since the
// last Execute call. The caller must not mutate the returned map.
func (p *Polymer) SpeciesLog() map[string]int { return p.speciesLog }

// Polymerases returns the polymer's current polymerases, ordered by
// position.
func (p *Polymer) Polymerases() []*Polymerase { return p.polymerases }

// Mask returns the polymer's mask.
func (p *Polymer) Mask() *Mask { return p.mask }

// OnTermination registers fn to run whenever a polymerase terminates on
// this polymer.
func (p *Polymer) OnTermination(fn func(TerminationEvent)) (disconnect func()) {
	return p.terminationSignal.Connect(fn)
}

// SetWeights replaces the polymer's per-position weight vector. len(w)
// must equal Stop()-Start()+1.
func (p *Polymer) SetWeights(w []float64) error {
	if len(w) != p.stop-p.start+1 {
		return &WeightsMismatchError{Polymer: p.name, Want: p.stop - p.start + 1, Got: len(w)}
	}
	p.weights = w
	return nil
}

// addBindingSite registers a promoter to be indexed on the next
// Initialize call.
func (p *Polymer) addBindingSite(prom *Promoter) {
	p.bindingIntervals = append(p.bindingIntervals, interval.Interval[*Promoter]{
		Start: prom.Start(), Stop: prom.Stop(), Value: prom,
	})
}

// addReleaseSite registers a terminator to be indexed on the next
// Initialize call.
func (p *Polymer) addReleaseSite(term *Terminator) {
	p.releaseIntervals = append(p.releaseIntervals, interval.Interval[*Terminator]{
		Start: term.Start(), Stop: term.Stop(), Value: term,
	})
}

// Initialize builds the polymer's interval indices from every registered
// promoter and terminator, then establishes initial coverage: sites
// overlapping the mask start covered, and sites strictly before the mask
// start uncovered.
func (p *Polymer) Initialize() error {
	if len(p.weights) != p.stop-p.start+1 {
		return &WeightsMismatchError{Polymer: p.name, Want: p.stop - p.start + 1, Got: len(p.weights)}
	}

	p.bindingSites = interval.Build(p.bindingIntervals)
	p.releaseSites = interval.Build(p.releaseIntervals)

	for _, prom := range p.bindingSites.FindOverlapping(p.mask.Start(), p.mask.Stop()) {
		if err := p.coverElement(prom); err != nil {
			return err
		}
		prom.SaveState()
	}

	if upper := p.mask.Start() - 1; upper >= p.start {
		for _, prom := range p.bindingSites.FindOverlapping(p.start, upper) {
			if prom.Stop() >= p.mask.Start() {
				continue
			}
			p.uncoverElement(prom)
			prom.SaveState()
		}
	}

	return nil
}

// Bind attaches pol to a free promoter named promoterName, choosing among
// candidates weighted by their binding constant for pol's name.
func (p *Polymer) Bind(pol *Polymerase, promoterName string) error {
	var candidates []*Promoter
	if upper := p.mask.Start() - 1; upper >= p.start {
		candidates = p.bindingSites.FindOverlapping(p.start, upper)
	}

	var free []*Promoter
	for _, prom := range candidates {
		if prom.Name() == promoterName && !prom.IsCovered() {
			free = append(free, prom)
		}
	}
	if len(free) == 0 {
		return &NoFreePromoterError{Polymer: p.name, Polymerase: pol.Name(), Promoter: promoterName}
	}

	var interacting []*Promoter
	for _, prom := range free {
		if prom.CheckInteraction(pol.Name()) {
			interacting = append(interacting, prom)
		}
	}
	if len(interacting) == 0 {
		return &NoInteractionError{Polymerase: pol.Name(), Element: promoterName}
	}

	weights := make([]float64, len(interacting))
	for i, prom := range interacting {
		weights[i] = prom.BindingConstant(pol.Name())
	}
	chosen, err := randutil.ChooseWeighted(interacting, weights)
	if err != nil {
		return fmt.Errorf("polymer %q: choosing promoter %q: %w", p.name, promoterName, err)
	}

	newStart := chosen.Start()
	newStop := newStart + pol.Footprint() - 1
	if newStop >= p.mask.Start() {
		return &MaskOverlapOnBindError{Polymer: p.name, Polymerase: pol.Name()}
	}

	pol.SetPosition(newStart)

	if err := p.coverElement(chosen); err != nil {
		return err
	}
	chosen.SaveState()

	if err := p.insertPolymerase(pol); err != nil {
		return err
	}

	if chosen.CheckInteraction("ribosome") && p.tracker != nil {
		p.tracker.IncrementRibo(chosen.Gene(), 1)
	}

	p.logger.Debug("polymerase bound",
		zap.String("polymer", p.name),
		zap.String("polymerase", pol.Name()),
		zap.String("promoter", chosen.Name()),
	)
	return nil
}

// insertPolymerase inserts pol into the polymerase and propensity lists
// in position order and updates the cached propensity sum.
func (p *Polymer) insertPolymerase(pol *Polymerase) error {
	idx := 0
	for idx < len(p.polymerases) && p.polymerases[idx].Start() < pol.Start() {
		idx++
	}

	propensity, err := p.propensityFor(pol)
	if err != nil {
		return err
	}

	p.polymerases = append(p.polymerases, nil)
	copy(p.polymerases[idx+1:], p.polymerases[idx:])
	p.polymerases[idx] = pol

	p.propList = append(p.propList, 0)
	copy(p.propList[idx+1:], p.propList[idx:])
	p.propList[idx] = propensity

	p.propSum += propensity

	if len(p.propList) != len(p.polymerases) {
		return &InvariantViolationError{Polymer: p.name, Detail: "polymerase and propensity list lengths disagree after insert"}
	}
	return nil
}

// propensityFor computes a polymerase's cached propensity from the
// per-position weight at index pol.Stop()-p.start-1 (just behind its
// leading edge) and its speed.
func (p *Polymer) propensityFor(pol *Polymerase) (float64, error) {
	idx := pol.Stop() - p.start - 1
	if idx < 0 || idx >= len(p.weights) {
		return 0, &InvariantViolationError{Polymer: p.name, Detail: fmt.Sprintf("weight index %d out of range for polymerase %q", idx, pol.Name())}
	}
	return p.weights[idx] * pol.Speed(), nil
}

// Execute chooses one polymerase to move, weighted by its cached
// propensity, and advances it by one position.
func (p *Polymer) Execute() error {
	if p.propSum <= 0 {
		return &EmptyPropensityError{Polymer: p.name}
	}
	for k := range p.speciesLog {
		delete(p.speciesLog, k)
	}

	idx, err := randutil.ChooseIndex(p.propList)
	if err != nil {
		return fmt.Errorf("polymer %q: choosing reaction: %w", p.name, err)
	}
	return p.move(idx)
}

// move advances the polymerase at index idx by one position, applying
// collision, mask, and termination checks in order, then refreshes its
// cached propensity.
func (p *Polymer) move(idx int) error {
	if idx < 0 || idx >= len(p.polymerases) {
		return &InvariantViolationError{Polymer: p.name, Detail: "polymerase index out of range"}
	}
	pol := p.polymerases[idx]
	oldStart, oldStop := pol.Start(), pol.Stop()

	pol.Move()

	if idx+1 < len(p.polymerases) {
		next := p.polymerases[idx+1]
		if pol.Stop() >= next.Start() {
			if pol.Stop() > next.Start() {
				return &InvariantViolationError{Polymer: p.name, Detail: fmt.Sprintf("polymerase %q overlaps %q by more than one position", pol.Name(), next.Name())}
			}
			if err := pol.MoveBack(); err != nil {
				return err
			}
			p.logger.Debug("move reverted: polymerase collision", zap.String("polymer", p.name), zap.String("polymerase", pol.Name()))
			return nil
		}
	}

	if pol.Stop() > p.stop {
		if err := pol.MoveBack(); err != nil {
			return err
		}
		p.logger.Debug("move reverted: polymer boundary", zap.String("polymer", p.name), zap.String("polymerase", pol.Name()))
		return nil
	}

	if !p.mask.Exhausted() && pol.Stop() >= p.mask.Start() {
		if pol.Stop()-p.mask.Start() > 0 {
			return &InvariantViolationError{Polymer: p.name, Detail: fmt.Sprintf("polymerase %q overlaps mask by more than one position", pol.Name())}
		}
		if p.mask.CheckInteraction(pol.Name()) {
			p.ShiftMask()
		} else {
			if err := pol.MoveBack(); err != nil {
				return err
			}
			p.logger.Debug("move reverted: blocked by mask", zap.String("polymer", p.name), zap.String("polymerase", pol.Name()))
			return nil
		}
	}

	terminated, err := p.checkTermination(pol)
	if err != nil {
		return err
	}
	if terminated {
		return nil
	}

	p.checkBehind(oldStart, pol.Start())
	if err := p.checkAhead(oldStop, pol.Stop()); err != nil {
		return err
	}
	for _, term := range p.releaseSites.FindOverlapping(oldStart, pol.Start()) {
		if term.Stop() < pol.Start() {
			term.SetReadthrough(false)
		}
	}

	newProp, err := p.propensityFor(pol)
	if err != nil {
		return err
	}
	p.propSum += newProp - p.propList[idx]
	p.propList[idx] = newProp

	return nil
}

// ShiftMask recedes the polymer's mask by one position and uncovers any
// binding site that just became fully exposed.
func (p *Polymer) ShiftMask() {
	if p.mask.Exhausted() {
		return
	}
	oldStart := p.mask.Start()
	p.mask.Recede()
	p.checkBehind(oldStart, p.mask.Start())
}

// checkAhead covers every binding site whose start now lies behind the
// leading edge sweeping from oldPos to newPos, recording a species_log
// decrement for each newly covered site.
func (p *Polymer) checkAhead(oldPos, newPos int) error {
	if newPos <= oldPos {
		return nil
	}
	for _, prom := range p.bindingSites.FindOverlapping(oldPos, newPos) {
		if prom.Start() >= oldPos && prom.Start() < newPos {
			if err := p.coverElement(prom); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkBehind uncovers every binding site whose stop now lies behind the
// trailing edge sweeping from oldPos to newPos, recording a species_log
// increment for each newly uncovered site.
func (p *Polymer) checkBehind(oldPos, newPos int) {
	if newPos <= oldPos {
		return
	}
	for _, prom := range p.bindingSites.FindOverlapping(oldPos, newPos) {
		if prom.Stop() < newPos {
			p.uncoverElement(prom)
		}
	}
}

// checkTermination looks for a release site under pol that it interacts
// with in-frame, resolving readthrough latching and probabilistic
// release.
func (p *Polymer) checkTermination(pol *Polymerase) (bool, error) {
	for _, term := range p.releaseSites.FindOverlapping(pol.Start(), pol.Stop()) {
		if !term.CheckInteractionFrame(pol.Name(), pol.ReadingFrame()) {
			continue
		}
		if term.Readthrough() {
			continue
		}

		if randutil.Float64() <= term.Efficiency(pol.Name()) {
			for i := term.Stop() - pol.Stop() + 1; i > 0; i-- {
				pol.EmitMove()
			}
			if err := p.Terminate(pol, term.Gene()); err != nil {
				return false, err
			}
			return true, nil
		}

		term.SetReadthrough(true)
		p.logger.Debug("readthrough latched",
			zap.String("polymer", p.name),
			zap.String("polymerase", pol.Name()),
			zap.String("terminator", term.Name()),
		)
	}
	return false, nil
}

// Terminate removes pol from the polymer, emitting a TerminationEvent.
func (p *Polymer) Terminate(pol *Polymerase, gene string) error {
	idx := p.indexOf(pol)
	if idx < 0 {
		return &InvariantViolationError{Polymer: p.name, Detail: fmt.Sprintf("polymerase %q not found for termination", pol.Name())}
	}

	p.propSum -= p.propList[idx]
	p.terminationSignal.Emit(TerminationEvent{
		PolymerIndex: p.index,
		PolymerName:  p.name,
		Polymerase:   pol.Name(),
		Gene:         gene,
	})

	p.polymerases = append(p.polymerases[:idx], p.polymerases[idx+1:]...)
	p.propList = append(p.propList[:idx], p.propList[idx+1:]...)
	if len(p.propList) != len(p.polymerases) {
		return &InvariantViolationError{Polymer: p.name, Detail: "polymerase and propensity list lengths disagree after terminate"}
	}

	p.logger.Debug("polymerase terminated",
		zap.String("polymer", p.name),
		zap.String("polymerase", pol.Name()),
		zap.String("gene", gene),
	)
	return nil
}

func (p *Polymer) indexOf(pol *Polymerase) int {
	for i, cand := range p.polymerases {
		if cand == pol {
			return i
		}
	}
	return -1
}

func (p *Polymer) coverElement(site coverable) error {
	wasCovered := site.IsCovered()
	site.Cover()
	if !wasCovered {
		return p.coverSpecies(site.Name())
	}
	return nil
}

func (p *Polymer) uncoverElement(site coverable) {
	site.Uncover()
	if !site.IsCovered() {
		p.uncoverSpecies(site.Name())
	}
}

func (p *Polymer) coverSpecies(name string) error {
	if _, ok := p.uncovered[name]; !ok {
		p.uncovered[name] = 0
	} else {
		p.uncovered[name]--
	}
	if p.uncovered[name] < 0 {
		return &InvariantViolationError{Polymer: p.name, Detail: fmt.Sprintf("uncovered count for %q went negative", name)}
	}
	p.speciesLog[name]--
	return nil
}

func (p *Polymer) uncoverSpecies(name string) {
	if _, ok := p.uncovered[name]; !ok {
		p.uncovered[name] = 1
	} else {
		p.uncovered[name]++
	}
	p.speciesLog[name]++
}
