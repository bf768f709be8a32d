package integral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dabke-research/sumgraph/pkg/apperror"
)

func TestFindBound_Identity(t *testing.T) {
	f := func(x float64) float64 { return x }
	cfg := Config{MaxUpperBound: 1000, Tolerance: 1e-7, MaxIterations: 1000}

	got, err := FindBound(f, 0, 1, cfg)
	assert.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, got, 1e-4)
}

func TestFindBound_Indicator(t *testing.T) {
	// f is 1 on [5, 10) and 0 elsewhere; integral from 0 reaches 1 at x=6.
	f := func(x float64) float64 {
		if x >= 5 && x < 10 {
			return 1
		}
		return 0
	}
	cfg := DefaultConfig()

	got, err := FindBound(f, 0, 1, cfg)
	assert.NoError(t, err)
	assert.InDelta(t, 6.0, got, 1e-3)
}

func TestFindBound_InfiniteBound(t *testing.T) {
	f := func(x float64) float64 { return x }
	cfg := Config{MaxUpperBound: 5, Tolerance: 1e-4, MaxIterations: 1000}

	got, err := FindBound(f, 0, 100, cfg)
	assert.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestFindBound_RootJustPastMaxUpperBound(t *testing.T) {
	// True root is at x=6 (integral of x from 0 is 18 at x=6), just past
	// maxUpperBound=5. The bracket doubling sequence (1, 2, 4, 8) would
	// evaluate hi=8 and find it satisfies the target before checking that
	// 8 already exceeds maxUpperBound; the bound check must gate before
	// that evaluation is accepted, so the answer is +Inf, not 6.
	f := func(x float64) float64 { return x }
	cfg := Config{MaxUpperBound: 5, Tolerance: 1e-4, MaxIterations: 1000}

	got, err := FindBound(f, 0, 18, cfg)
	assert.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestFindBound_MaxIterations(t *testing.T) {
	f := func(x float64) float64 { return x }
	cfg := Config{MaxUpperBound: 1000, Tolerance: 1e-12, MaxIterations: 1}

	_, err := FindBound(f, 0, 100, cfg)
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeToleranceNotReached, apperror.Code(err))
}

func TestFindBound_LowerAlreadyInfinite(t *testing.T) {
	f := func(x float64) float64 { return x }
	cfg := DefaultConfig()

	got, err := FindBound(f, math.Inf(1), 1, cfg)
	assert.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestFindBound_ZeroTarget(t *testing.T) {
	f := func(x float64) float64 { return x }
	cfg := DefaultConfig()

	got, err := FindBound(f, 3, 0, cfg)
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, got, 0.01)
}
