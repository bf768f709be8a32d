// Package summary implements the summary graph: a static, scalar-weighted
// graph that accumulates participation fractions across a sampling window.
package summary

import (
	"sort"
	"sync"

	"github.com/dabke-research/sumgraph/pkg/apperror"
)

// DefaultEdgeWeight is returned for any (source, target) pair that has
// never been incremented.
const DefaultEdgeWeight = 0.0

type edgeKey struct {
	from, to string
}

// Graph is a directed, static graph whose edge weights accumulate via
// repeated increments, since the journey-traversal summarizer adds a 1/N
// fraction to an edge every time a sampled foremost journey crosses it.
// SetEdgeWeight also allows a one-shot assignment for weights that come
// from measured data.
type Graph struct {
	mu       sync.RWMutex
	vertices map[string]struct{}
	weights  map[edgeKey]float64
}

// New creates an empty summary graph.
func New() *Graph {
	return &Graph{
		vertices: make(map[string]struct{}),
		weights:  make(map[edgeKey]float64),
	}
}

// HasVertex reports whether v is present.
func (g *Graph) HasVertex(v string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[v]
	return ok
}

// AddVertex adds v. Returns CodeDuplicateVertex if already present.
func (g *Graph) AddVertex(v string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.vertices[v]; ok {
		return apperror.NewWithField(apperror.CodeDuplicateVertex, "vertex already present", v)
	}
	g.vertices[v] = struct{}{}
	return nil
}

// Vertices returns the sorted vertex set, so two graphs over the same
// vertices compare and print deterministically.
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.vertices))
	for v := range g.vertices {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// EdgeWeight returns the accumulated weight of (from, to), or
// DefaultEdgeWeight if it was never incremented.
func (g *Graph) EdgeWeight(from, to string) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.weights[edgeKey{from, to}]
}

// Increment adds delta to the weight of (from, to), defining the edge with
// weight delta if it did not already exist. Returns CodeUnknownVertex if
// either endpoint is missing.
func (g *Graph) Increment(from, to string, delta float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.vertices[from]; !ok {
		return apperror.NewWithField(apperror.CodeUnknownVertex, "source vertex not present", from)
	}
	if _, ok := g.vertices[to]; !ok {
		return apperror.NewWithField(apperror.CodeUnknownVertex, "target vertex not present", to)
	}
	g.weights[edgeKey{from, to}] += delta
	return nil
}

// SetEdgeWeight overwrites the weight of (from, to), regardless of any
// accumulated value. Returns CodeUnknownVertex if either endpoint is
// missing.
func (g *Graph) SetEdgeWeight(from, to string, weight float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.vertices[from]; !ok {
		return apperror.NewWithField(apperror.CodeUnknownVertex, "source vertex not present", from)
	}
	if _, ok := g.vertices[to]; !ok {
		return apperror.NewWithField(apperror.CodeUnknownVertex, "target vertex not present", to)
	}
	g.weights[edgeKey{from, to}] = weight
	return nil
}

// Edges returns every edge with a nonzero accumulated weight.
func (g *Graph) Edges() map[[2]string]float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(map[[2]string]float64, len(g.weights))
	for k, w := range g.weights {
		if w == 0 {
			continue
		}
		out[[2]string{k.from, k.to}] = w
	}
	return out
}

// Sum returns a new summary graph whose edge weights are the pointwise sum
// of g and other's weights. Both graphs must share the same vertex set, in
// any order; otherwise Sum returns CodeVertexSetMismatch. Sum lets the
// summarizer run independent workers over disjoint time samples and
// combine their partial summaries into one.
func Sum(a, b *Graph) (*Graph, error) {
	av, bv := a.Vertices(), b.Vertices()
	if len(av) != len(bv) {
		return nil, apperror.New(apperror.CodeVertexSetMismatch, "summary graphs have different vertex counts")
	}
	for i := range av {
		if av[i] != bv[i] {
			return nil, apperror.New(apperror.CodeVertexSetMismatch, "summary graphs have different vertex sets")
		}
	}

	out := New()
	for _, v := range av {
		if err := out.AddVertex(v); err != nil {
			return nil, err
		}
	}

	a.mu.RLock()
	for k, w := range a.weights {
		out.weights[k] += w
	}
	a.mu.RUnlock()

	b.mu.RLock()
	for k, w := range b.weights {
		out.weights[k] += w
	}
	b.mu.RUnlock()

	return out, nil
}
