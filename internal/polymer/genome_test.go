package polymer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminjack/pinetree/internal/species"
)

// Scenario 6: binding a polymerase to a genomic promoter spawns a
// transcript whose ribosome binding site starts out masked, and the mask
// recedes in lockstep with the polymerase's movement along the genome
// until the site is fully exposed.
func TestGenome_BindSpawnsTranscriptWithRecedingMask(t *testing.T) {
	tracker := species.NewInMemoryTracker()
	genome := NewGenome("plasmid", 200, tracker)

	require.NoError(t, genome.AddPromoter("phi1", 1, 10, map[string]float64{"rnapol": 1.0}))
	require.NoError(t, genome.AddGene("rbfp", 50, 150, 30, 40, 1e7))
	require.NoError(t, genome.Initialize())

	var transcript *Transcript
	disconnect := genome.OnTranscript(func(t *Transcript) { transcript = t })
	defer disconnect()

	pol := NewPolymerase("rnapol", 10, 40)
	require.NoError(t, genome.Bind(pol, "phi1"))

	require.NotNil(t, transcript)
	assert.Equal(t, 1, transcript.Start())
	assert.Equal(t, 200, transcript.Stop())
	assert.Equal(t, 10, transcript.Mask().Start())
	assert.Equal(t, 0, transcript.Uncovered("rbfp_rbs"), "rbs starts out masked")

	for i := 0; i < 31; i++ {
		require.NoError(t, genome.Execute())
	}
	assert.Equal(t, 41, transcript.Mask().Start())
	assert.Equal(t, 1, transcript.Uncovered("rbfp_rbs"), "rbs should be fully exposed once the mask recedes past it")

	ribo := NewPolymerase("ribosome", 10, 30)
	require.NoError(t, transcript.Bind(ribo, "rbfp_rbs"))
	assert.Equal(t, ribo.Start()%3, ribo.ReadingFrame())
}

func TestGenome_AddTerminator(t *testing.T) {
	genome := NewGenome("phage", 100, nil)
	require.NoError(t, genome.AddPromoter("phi1", 1, 10, map[string]float64{"rnapol": 1.0}))
	require.NoError(t, genome.AddTerminator("t1", 90, 90, map[string]float64{"rnapol": 1.0}))
	require.NoError(t, genome.Initialize())

	pol := NewPolymerase("rnapol", 10, 1e6)
	require.NoError(t, genome.Bind(pol, "phi1"))

	terminated := false
	genome.OnTermination(func(ev TerminationEvent) { terminated = true })

	for i := 0; i < 200 && !terminated; i++ {
		require.NoError(t, genome.Execute())
	}
	assert.True(t, terminated)
}

func TestGenome_AddWeights_LengthMismatch(t *testing.T) {
	genome := NewGenome("plasmid", 50, nil)
	err := genome.AddWeights([]float64{1, 2, 3})
	var mismatchErr *WeightsMismatchError
	assert.ErrorAs(t, err, &mismatchErr)
}

// AddGene must name every gene's stop codon with the bare species key
// "stop_codon", not a per-gene variant, since that name is what
// uncovered/species-log bookkeeping keys on (unlike the RBS, which is
// gene-prefixed because distinct genes' ribosome binding sites are
// distinct species).
func TestGenome_AddGene_StopCodonUsesSharedSpeciesName(t *testing.T) {
	genome := NewGenome("plasmid", 200, nil)
	require.NoError(t, genome.AddPromoter("phi1", 1, 10, map[string]float64{"rnapol": 1.0}))
	require.NoError(t, genome.AddGene("rbfp", 50, 150, 30, 40, 1e7))
	require.Len(t, genome.transcriptStopIntervals, 1)
	assert.Equal(t, "stop_codon", genome.transcriptStopIntervals[0].Value.Name())

	pol := NewPolymerase("rnapol", 10, 40)
	require.NoError(t, genome.Initialize())

	var transcript *Transcript
	disconnect := genome.OnTranscript(func(t *Transcript) { transcript = t })
	defer disconnect()
	require.NoError(t, genome.Bind(pol, "phi1"))
	require.NotNil(t, transcript)
	require.Len(t, transcript.releaseIntervals, 1)
	assert.Equal(t, "stop_codon", transcript.releaseIntervals[0].Value.Name())
}

func TestGenome_Bindings(t *testing.T) {
	genome := NewGenome("plasmid", 100, nil)
	require.NoError(t, genome.AddPromoter("phi1", 1, 10, map[string]float64{"rnapol": 2.0}))
	require.NoError(t, genome.AddGene("rbfp", 20, 80, 15, 20, 1e7))

	bindings := genome.Bindings()
	assert.Equal(t, map[string]float64{"rnapol": 2.0}, bindings["phi1"])
	assert.Equal(t, map[string]float64{"ribosome": 1e7}, bindings["rbfp_rbs"])
}
