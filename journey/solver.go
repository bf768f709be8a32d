// Package journey implements the foremost-journey solver: a Dijkstra-like
// relaxation loop over a dynamic weighted graph where "distance" is the
// time at which a vertex first becomes reachable from a source, and
// crossing an edge costs whatever time it takes for the edge's weight
// function to integrate to 1, per the integral package.
package journey

import (
	"container/heap"
	"context"
	"math"
	"time"

	"github.com/dabke-research/sumgraph/graph"
	"github.com/dabke-research/sumgraph/integral"
	"github.com/dabke-research/sumgraph/pkg/apperror"
	"github.com/dabke-research/sumgraph/pkg/metrics"
)

// Result holds the outcome of solving foremost journeys from a single
// source: the earliest arrival time at every vertex, and the predecessor
// each vertex was finalized through.
type Result struct {
	Source      string
	Departure   float64
	Arrival     map[string]float64
	Predecessor map[string]string
}

// Options configures a single Solve call.
type Options struct {
	Integral integral.Config
	UseHeap  bool // select the next vertex via a binary heap instead of a dense scan
}

// DefaultOptions mirrors integral.DefaultConfig with dense vertex
// selection, suitable for small-to-medium vertex sets.
func DefaultOptions() Options {
	return Options{Integral: integral.DefaultConfig()}
}

// Solve computes foremost journeys from source at departureTime across g.
// g must use the TraversalTime convention; any other convention returns a
// CodeWrongConvention error, since "edge weight" only means "crossing
// rate" under that convention. Solve checks ctx for cancellation between
// vertex finalizations and returns CodeCancelled with no partial result if
// it is cancelled mid-run.
func Solve(ctx context.Context, g *graph.Dynamic, source string, departureTime float64, opts Options) (result *Result, err error) {
	defer func(start time.Time) {
		metrics.Get().RecordSolverInvocation(err == nil, time.Since(start))
	}(time.Now())

	if g.Convention() != graph.TraversalTime {
		return nil, apperror.New(apperror.CodeWrongConvention,
			"foremost-journey solver requires the TraversalTime convention")
	}
	if !g.HasVertex(source) {
		return nil, apperror.NewWithField(apperror.CodeUnknownVertex, "source vertex not present", source)
	}

	vertices := g.Vertices()
	arrival := make(map[string]float64, len(vertices))
	predecessor := make(map[string]string, len(vertices))
	finalized := make(map[string]bool, len(vertices))

	for _, v := range vertices {
		arrival[v] = math.Inf(1)
	}
	arrival[source] = departureTime

	if opts.UseHeap {
		err = relaxHeap(ctx, g, arrival, predecessor, finalized, opts)
	} else {
		err = relaxDense(ctx, g, vertices, arrival, predecessor, finalized, opts)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Source:      source,
		Departure:   departureTime,
		Arrival:     arrival,
		Predecessor: predecessor,
	}, nil
}

// relaxDense finalizes vertices one at a time by scanning the full arrival
// map for the minimum unvisited value. O(V^2 + VE) — adequate for the
// vertex counts this module targets.
func relaxDense(ctx context.Context, g *graph.Dynamic, vertices []string, arrival map[string]float64, predecessor map[string]string, finalized map[string]bool, opts Options) error {
	for range vertices {
		if err := ctx.Err(); err != nil {
			return apperror.New(apperror.CodeCancelled, "journey solve cancelled")
		}

		u, ok := pickMinUnfinalized(vertices, arrival, finalized)
		if !ok {
			break
		}
		finalized[u] = true
		if math.IsInf(arrival[u], 1) {
			continue
		}

		if err := relaxFrom(g, u, arrival, predecessor, opts); err != nil {
			return err
		}
	}
	return nil
}

func pickMinUnfinalized(vertices []string, arrival map[string]float64, finalized map[string]bool) (string, bool) {
	best := ""
	bestVal := math.Inf(1)
	found := false
	for _, v := range vertices {
		if finalized[v] {
			continue
		}
		if !found || arrival[v] < bestVal {
			best, bestVal, found = v, arrival[v], true
		}
	}
	return best, found
}

// relaxFrom relaxes every explicitly defined outgoing edge of u.
func relaxFrom(g *graph.Dynamic, u string, arrival map[string]float64, predecessor map[string]string, opts Options) error {
	for _, v := range g.Neighbors(u) {
		fn, err := g.EdgeWeight(u, v)
		if err != nil {
			return err
		}

		crossed, err := integral.FindBound(finiteRate(fn), arrival[u], 1, opts.Integral)
		if err != nil {
			return err
		}
		if math.IsInf(crossed, 1) {
			metrics.Get().RecordIntegralBoundUnreachable()
			continue
		}

		if crossed < arrival[v] {
			arrival[v] = crossed
			predecessor[v] = u
		}
	}
	return nil
}

// finiteRate adapts an edge weight function for integration: +Inf rate
// samples become 0, so a link that is broken for part of the window
// accumulates no crossing progress during the outage instead of feeding a
// non-finite value into the quadrature. An edge that stays broken simply
// never integrates to 1 and comes back as an unreachable +Inf bound.
func finiteRate(fn graph.EdgeWeightFn) integral.Func {
	return func(t float64) float64 {
		w := fn(t)
		if math.IsInf(w, 1) {
			return 0
		}
		return w
	}
}

// relaxHeap finalizes vertices via a binary heap keyed by arrival time,
// ties broken by vertex ID so selection order is deterministic.
func relaxHeap(ctx context.Context, g *graph.Dynamic, arrival map[string]float64, predecessor map[string]string, finalized map[string]bool, opts Options) error {
	pq := &vertexHeap{}
	heap.Init(pq)
	for v, a := range arrival {
		heap.Push(pq, &heapItem{vertex: v, arrival: a})
	}

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return apperror.New(apperror.CodeCancelled, "journey solve cancelled")
		}

		item := heap.Pop(pq).(*heapItem)
		u := item.vertex
		if finalized[u] {
			continue
		}
		if item.arrival != arrival[u] {
			continue // stale entry from before a relaxation improved arrival[u]
		}
		finalized[u] = true
		if math.IsInf(arrival[u], 1) {
			continue
		}

		before := make(map[string]float64, len(arrival))
		for k, val := range arrival {
			before[k] = val
		}

		if err := relaxFrom(g, u, arrival, predecessor, opts); err != nil {
			return err
		}

		for v, val := range arrival {
			if !finalized[v] && val != before[v] {
				heap.Push(pq, &heapItem{vertex: v, arrival: val})
			}
		}
	}
	return nil
}

type heapItem struct {
	vertex  string
	arrival float64
}

type vertexHeap []*heapItem

func (h vertexHeap) Len() int { return len(h) }
func (h vertexHeap) Less(i, j int) bool {
	if h[i].arrival != h[j].arrival {
		return h[i].arrival < h[j].arrival
	}
	return h[i].vertex < h[j].vertex
}
func (h vertexHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *vertexHeap) Push(x any)   { *h = append(*h, x.(*heapItem)) }
func (h *vertexHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
