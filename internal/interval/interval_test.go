package interval

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_Empty(t *testing.T) {
	ix := Build[string](nil)
	assert.Empty(t, ix.FindOverlapping(0, 100))
	assert.Empty(t, ix.FindContained(0, 100))
}

func TestFindOverlapping_SingleInterval(t *testing.T) {
	ix := Build([]Interval[string]{{Start: 100, Stop: 200, Value: "A"}})

	assert.Equal(t, []string{"A"}, ix.FindOverlapping(150, 150))
	assert.Equal(t, []string{"A"}, ix.FindOverlapping(100, 100), "start boundary inclusive")
	assert.Equal(t, []string{"A"}, ix.FindOverlapping(200, 200), "stop boundary inclusive")
	assert.Empty(t, ix.FindOverlapping(99, 99), "before start")
	assert.Empty(t, ix.FindOverlapping(201, 201), "after stop")
}

func TestFindOverlapping_Multiple(t *testing.T) {
	ix := Build([]Interval[string]{
		{Start: 100, Stop: 300, Value: "A"},
		{Start: 150, Stop: 250, Value: "B"},
		{Start: 200, Stop: 400, Value: "C"},
	})

	assertNames(t, []string{"A", "B"}, ix.FindOverlapping(175, 175))
	assertNames(t, []string{"A", "B", "C"}, ix.FindOverlapping(250, 250))
	assertNames(t, []string{"C"}, ix.FindOverlapping(350, 350))
}

func TestFindOverlapping_NestedBehindShortIntervals(t *testing.T) {
	// A long-lived interval sorted first by start, with several short
	// intervals sorted after it that don't reach the query point. A
	// suffix-max-array point query would prune this away incorrectly;
	// the centered tree must not.
	ix := Build([]Interval[string]{
		{Start: 0, Stop: 1000, Value: "long"},
		{Start: 10, Stop: 15, Value: "short1"},
		{Start: 20, Stop: 25, Value: "short2"},
	})

	assertNames(t, []string{"long"}, ix.FindOverlapping(500, 500))
}

func TestFindContained(t *testing.T) {
	ix := Build([]Interval[string]{
		{Start: 35, Stop: 50, Value: "rbs"},
		{Start: 5, Stop: 400, Value: "too-wide"},
		{Start: 60, Stop: 70, Value: "inside"},
	})

	assertNames(t, []string{"rbs", "inside"}, ix.FindContained(10, 300))
}

func TestFindContained_BoundaryInclusive(t *testing.T) {
	ix := Build([]Interval[string]{{Start: 10, Stop: 20, Value: "A"}})

	assertNames(t, []string{"A"}, ix.FindContained(10, 20))
	assert.Empty(t, ix.FindContained(11, 20))
	assert.Empty(t, ix.FindContained(10, 19))
}

func assertNames(t *testing.T, want, got []string) {
	t.Helper()
	sort.Strings(want)
	sort.Strings(got)
	assert.Equal(t, want, got)
}
