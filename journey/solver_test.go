package journey

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dabke-research/sumgraph/graph"
	"github.com/dabke-research/sumgraph/integral"
	"github.com/dabke-research/sumgraph/pkg/apperror"
)

func buildLine(t *testing.T) *graph.Dynamic {
	t.Helper()
	g := graph.New(graph.TraversalTime)
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("b"))
	require.NoError(t, g.AddVertex("c"))
	require.NoError(t, g.DefineEdgeWeight("a", "b", graph.Constant(1), true))
	require.NoError(t, g.DefineEdgeWeight("b", "c", graph.Constant(1), true))
	return g
}

func TestSolve_ConstantWeightLine(t *testing.T) {
	g := buildLine(t)

	result, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Arrival["a"])
	assert.InDelta(t, 1.0, result.Arrival["b"], 1e-3)
	assert.InDelta(t, 2.0, result.Arrival["c"], 1e-3)
	assert.Equal(t, "a", result.Predecessor["b"])
	assert.Equal(t, "b", result.Predecessor["c"])
}

func TestSolve_HeapMatchesDense(t *testing.T) {
	g := buildLine(t)

	dense, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	require.NoError(t, err)

	heapOpts := DefaultOptions()
	heapOpts.UseHeap = true
	viaHeap, err := Solve(context.Background(), g, "a", 0, heapOpts)
	require.NoError(t, err)

	for v := range dense.Arrival {
		assert.InDelta(t, dense.Arrival[v], viaHeap.Arrival[v], 1e-6)
	}
}

func TestSolve_PredecessorIsImmediatePriorVertex(t *testing.T) {
	// Diamond: a->b->d and a->c->d, with the a->c->d route arriving
	// earlier. The predecessor of d must be c (the vertex relaxation
	// actually came from), never the outer-loop source a.
	g := graph.New(graph.TraversalTime)
	for _, v := range []string{"a", "b", "c", "d"} {
		require.NoError(t, g.AddVertex(v))
	}
	require.NoError(t, g.DefineEdgeWeight("a", "b", graph.Constant(1), true))
	require.NoError(t, g.DefineEdgeWeight("b", "d", graph.Constant(1), true))
	require.NoError(t, g.DefineEdgeWeight("a", "c", graph.Constant(2), true))
	require.NoError(t, g.DefineEdgeWeight("c", "d", graph.Constant(2), true))

	result, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "c", result.Predecessor["d"])
	assert.NotEqual(t, "a", result.Predecessor["d"])
}

func TestSolve_UnreachableVertexStaysInfinite(t *testing.T) {
	g := graph.New(graph.TraversalTime)
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("isolated"))

	result, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, math.IsInf(result.Arrival["isolated"], 1))
	_, hasPred := result.Predecessor["isolated"]
	assert.False(t, hasPred)
}

func TestSolve_WrongConvention(t *testing.T) {
	g := graph.New(graph.Cost)
	require.NoError(t, g.AddVertex("a"))

	_, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeWrongConvention, apperror.Code(err))
}

func TestSolve_UnknownSource(t *testing.T) {
	g := graph.New(graph.TraversalTime)
	require.NoError(t, g.AddVertex("a"))

	_, err := Solve(context.Background(), g, "ghost", 0, DefaultOptions())
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeUnknownVertex, apperror.Code(err))
}

func TestSolve_Cancelled(t *testing.T) {
	g := buildLine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, g, "a", 0, DefaultOptions())
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeCancelled, apperror.Code(err))
}

func TestSolve_TimeVaryingWeight(t *testing.T) {
	g := graph.New(graph.TraversalTime)
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("b"))

	// Weight doubles after t=5, so crossing starting before 5 takes longer
	// per unit than crossing starting after.
	fn := func(t float64) float64 {
		if t < 5 {
			return 1
		}
		return 2
	}
	require.NoError(t, g.DefineEdgeWeight("a", "b", fn, true))

	result, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Arrival["b"], 1e-3)
}

func TestSolve_TemporarilyBrokenLinkStillCrossable(t *testing.T) {
	g := graph.New(graph.TraversalTime)
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("b"))

	// Link is down (infinite weight) until t=1, then carries rate 1. The
	// outage must contribute zero progress rather than poisoning the
	// integrand, so crossing from t=0 completes near t=2 instead of
	// failing outright.
	fn := func(t float64) float64 {
		if t < 1 {
			return math.Inf(1)
		}
		return 1
	}
	require.NoError(t, g.DefineEdgeWeight("a", "b", fn, true))

	result, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 2.0, result.Arrival["b"], 0.05)
}

func TestSolve_PermanentlyBrokenLinkIsUnreachable(t *testing.T) {
	g := graph.New(graph.TraversalTime)
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("b"))
	require.NoError(t, g.DefineEdgeWeight("a", "b", graph.Constant(math.Inf(1)), true))

	opts := DefaultOptions()
	opts.Integral.MaxUpperBound = 10

	result, err := Solve(context.Background(), g, "a", 0, opts)
	require.NoError(t, err)
	assert.True(t, math.IsInf(result.Arrival["b"], 1))
}

func TestPath_Reconstruction(t *testing.T) {
	g := buildLine(t)
	result, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	require.NoError(t, err)

	path, err := Path(result, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, path)
}

func TestPath_SourceToSource(t *testing.T) {
	g := buildLine(t)
	result, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	require.NoError(t, err)

	path, err := Path(result, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, path)
}

func TestPath_UnknownTarget(t *testing.T) {
	g := buildLine(t)
	result, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	require.NoError(t, err)

	_, err = Path(result, "ghost")
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeUnknownVertex, apperror.Code(err))
}

func TestPath_UnreachedTargetIsEmptyNotError(t *testing.T) {
	g := graph.New(graph.TraversalTime)
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("isolated"))

	result, err := Solve(context.Background(), g, "a", 0, DefaultOptions())
	require.NoError(t, err)

	path, err := Path(result, "isolated")
	require.NoError(t, err)
	assert.Equal(t, []string{}, path)
}

func TestPath_BrokenChain(t *testing.T) {
	result := &Result{
		Source:      "a",
		Arrival:     map[string]float64{"a": 0, "b": 1, "c": 2},
		Predecessor: map[string]string{"c": "b"}, // "b" has no predecessor entry
	}

	_, err := Path(result, "c")
	assert.Error(t, err)
	assert.Equal(t, apperror.CodeBrokenPredecessorChain, apperror.Code(err))
}

func TestSolve_DoesNotHangOnSlowIntegration(t *testing.T) {
	g := buildLine(t)
	opts := DefaultOptions()
	opts.Integral = integral.Config{MaxUpperBound: 1000, Tolerance: 1e-4, MaxIterations: 1000}

	done := make(chan struct{})
	go func() {
		_, _ = Solve(context.Background(), g, "a", 0, opts)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Solve took too long")
	}
}
