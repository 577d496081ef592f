package tracestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminjack/pinetree/internal/polymer"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteAndCountTerminationEvents(t *testing.T) {
	s := openInMemory(t)

	events := []TerminationEvent{
		{Tick: 1, TerminationEvent: polymer.TerminationEvent{PolymerIndex: 0, PolymerName: "plasmid", Polymerase: "rnapol", Gene: ""}},
		{Tick: 2, TerminationEvent: polymer.TerminationEvent{PolymerIndex: 0, PolymerName: "plasmid", Polymerase: "rnapol", Gene: "rbfp"}},
	}
	require.NoError(t, s.WriteTerminationEvents(events))

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM termination_events").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestWriteSpeciesCounts(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteSpeciesCounts([]SpeciesCount{
		{Tick: 1, Species: "phi1", Delta: -1},
		{Tick: 5, Species: "phi1", Delta: 1},
	}))

	var sum int
	require.NoError(t, s.DB().QueryRow("SELECT SUM(delta) FROM species_counts WHERE species = 'phi1'").Scan(&sum))
	assert.Equal(t, 0, sum)
}

func TestSubscribeTermination(t *testing.T) {
	s := openInMemory(t)

	genome := polymer.NewGenome("plasmid", 100, nil)
	require.NoError(t, genome.AddPromoter("phi1", 1, 10, map[string]float64{"rnapol": 1.0}))
	require.NoError(t, genome.Initialize())

	var recordErr error
	disconnect := s.SubscribeTermination(&genome.Polymer, func() int64 { return 7 }, func(err error) { recordErr = err })
	defer disconnect()

	pol := polymer.NewPolymerase("rnapol", 10, 40)
	require.NoError(t, genome.Bind(pol, "phi1"))
	require.NoError(t, genome.Terminate(pol, "rbfp"))

	require.NoError(t, recordErr)

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM termination_events").Scan(&count))
	assert.Equal(t, 1, count)
}
