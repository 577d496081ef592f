// Package species tracks per-gene ribosome occupancy across polymers. A
// Tracker is shared by every Polymer/Genome/Transcript in a simulation so
// that ribosome counts on a gene reflect all transcripts producing it, not
// just the one the ribosome happens to be bound to.
package species

// Tracker is the collaborator a Polymer calls into when a ribosome binds
// an RBS, so species counts can be reported independently of any single
// polymer's lifetime.
type Tracker interface {
	IncrementRibo(gene string, delta int)
	RiboCount(gene string) int
}

// InMemoryTracker is a map-backed Tracker, the default collaborator for a
// single simulation run.
type InMemoryTracker struct {
	counts map[string]int
}

// NewInMemoryTracker returns an empty InMemoryTracker.
func NewInMemoryTracker() *InMemoryTracker {
	return &InMemoryTracker{counts: make(map[string]int)}
}

// IncrementRibo adjusts the ribosome count for gene by delta.
func (t *InMemoryTracker) IncrementRibo(gene string, delta int) {
	t.counts[gene] += delta
}

// RiboCount returns the current ribosome count for gene.
func (t *InMemoryTracker) RiboCount(gene string) int {
	return t.counts[gene]
}

// Counts returns a snapshot of every gene's current ribosome count.
func (t *InMemoryTracker) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}
