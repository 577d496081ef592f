package polymer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPromoter_Validation(t *testing.T) {
	_, err := NewPromoter("promoter", -1, 10, nil)
	assert.Error(t, err)

	_, err = NewPromoter("promoter", -1, -10, nil)
	assert.Error(t, err)

	_, err = NewPromoter("promoter", 1, -10, nil)
	assert.Error(t, err)

	_, err = NewPromoter("promoter", 1, 10, map[string]float64{"rnapol": -2})
	assert.Error(t, err)

	_, err = NewPromoter("promoter", 1, 10, map[string]float64{"rnapol": -2, "ecolipol": 1})
	assert.Error(t, err)
}

func TestPromoter_Coverings(t *testing.T) {
	site, err := NewPromoter("promoter", 1, 10, map[string]float64{"rnapol": 1.0})
	require.NoError(t, err)

	assert.False(t, site.WasCovered())
	assert.False(t, site.IsCovered())
	assert.False(t, site.WasUncovered())

	site.Cover()
	assert.True(t, site.IsCovered())
	assert.True(t, site.WasCovered())
	assert.False(t, site.WasUncovered())

	site.SaveState()
	assert.True(t, site.IsCovered())
	assert.False(t, site.WasCovered())
	assert.False(t, site.WasUncovered())

	site.Uncover()
	assert.False(t, site.IsCovered())
	assert.False(t, site.WasCovered())
	assert.True(t, site.WasUncovered())

	site.SaveState()
	assert.False(t, site.IsCovered())
	assert.False(t, site.WasCovered())
	assert.False(t, site.WasUncovered())
}

func TestPromoter_CheckInteraction(t *testing.T) {
	site, err := NewPromoter("promoter", 1, 10, map[string]float64{"rnapol": 1.0})
	require.NoError(t, err)

	assert.True(t, site.CheckInteraction("rnapol"))
	assert.False(t, site.CheckInteraction("otherpol"))
}

func TestPromoter_Clone(t *testing.T) {
	site, err := NewPromoter("promoter", 1, 10, map[string]float64{"rnapol": 1.0})
	require.NoError(t, err)

	clone := site.Clone()
	assert.NotSame(t, site, clone)

	site.Cover()
	assert.True(t, site.IsCovered())
	assert.False(t, clone.IsCovered())
}

func TestNewTerminator_Validation(t *testing.T) {
	_, err := NewTerminator("terminator", 1, 10, map[string]float64{"rnapol": 2.0})
	assert.Error(t, err)

	_, err = NewTerminator("terminator", 1, 10, map[string]float64{"rnapol": -2.0})
	assert.Error(t, err)
}

func TestTerminator_Readthrough(t *testing.T) {
	site, err := NewTerminator("term", 1, 10, map[string]float64{"rnapol": 0.8})
	require.NoError(t, err)

	assert.False(t, site.Readthrough())
	site.SetReadthrough(true)
	assert.True(t, site.Readthrough())
}

func TestTerminator_Efficiency(t *testing.T) {
	site, err := NewTerminator("term", 1, 10, map[string]float64{"rnapol": 0.8})
	require.NoError(t, err)
	assert.Equal(t, 0.8, site.Efficiency("rnapol"))

	site, err = NewTerminator("term", 1, 10, map[string]float64{"rnapol": 0.8, "ecolipol": 0.3})
	require.NoError(t, err)
	assert.Equal(t, 0.3, site.Efficiency("ecolipol"))
}

func TestTerminator_CheckInteractionFrame(t *testing.T) {
	site, err := NewTerminator("stop_codon", 1, 10, map[string]float64{"ribosome": 1.0})
	require.NoError(t, err)
	site.SetReadingFrame(1)

	assert.True(t, site.CheckInteractionFrame("ribosome", 1))
	assert.False(t, site.CheckInteractionFrame("ribosome", 0))
	assert.False(t, site.CheckInteractionFrame("rnapol", 1))
}
