// Package graph implements the dynamic weighted graph: a vertex set where
// each edge's weight is a function of time rather than a scalar.
package graph

import (
	"sync"

	"github.com/dabke-research/sumgraph/pkg/apperror"
)

// EdgeWeightFn gives the instantaneous weight of an edge at time t. Under
// the TraversalTime convention it is the crossing rate; a dynamic graph
// accumulates 1 unit of this rate, via the integral package, to determine
// how long a traversal of the edge takes.
type EdgeWeightFn func(t float64) float64

type edgeKey struct {
	from, to string
}

// Dynamic is a directed graph of vertices with optional per-edge,
// time-varying weight functions. Edges that were never explicitly defined
// fall back to the convention's default weight rather than erroring, so
// EdgeWeight is usable for every pair of known vertices.
type Dynamic struct {
	mu         sync.RWMutex
	convention Convention
	vertices   map[string]struct{}
	weights    map[edgeKey]EdgeWeightFn
}

// New creates an empty Dynamic graph under the given convention.
func New(convention Convention) *Dynamic {
	return &Dynamic{
		convention: convention,
		vertices:   make(map[string]struct{}),
		weights:    make(map[edgeKey]EdgeWeightFn),
	}
}

// Convention returns the graph's edge-weight convention.
func (g *Dynamic) Convention() Convention {
	return g.convention
}

// HasVertex reports whether v is present in the graph.
func (g *Dynamic) HasVertex(v string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[v]
	return ok
}

// AddVertex adds v to the graph. Returns CodeDuplicateVertex if v is
// already present.
func (g *Dynamic) AddVertex(v string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.vertices[v]; ok {
		return apperror.NewWithField(apperror.CodeDuplicateVertex, "vertex already present", v)
	}
	g.vertices[v] = struct{}{}
	return nil
}

// Vertices returns the graph's vertex set. The returned slice is a copy.
func (g *Dynamic) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.vertices))
	for v := range g.vertices {
		out = append(out, v)
	}
	return out
}

// HasEdgeWeight reports whether (from, to) has an explicitly defined
// weight function, as opposed to falling back to the convention default.
func (g *Dynamic) HasEdgeWeight(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.weights[edgeKey{from, to}]
	return ok
}

// DefineEdgeWeight sets the weight function for (from, to). If directed is
// false, the reverse edge (to, from) is set to the same function. Returns
// CodeUnknownVertex if either endpoint is missing, or CodeDuplicateEdge if
// the edge already has a weight function.
func (g *Dynamic) DefineEdgeWeight(from, to string, fn EdgeWeightFn, directed bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.vertices[from]; !ok {
		return apperror.NewWithField(apperror.CodeUnknownVertex, "source vertex not present", from)
	}
	if _, ok := g.vertices[to]; !ok {
		return apperror.NewWithField(apperror.CodeUnknownVertex, "target vertex not present", to)
	}

	key := edgeKey{from, to}
	if _, ok := g.weights[key]; ok {
		return apperror.New(apperror.CodeDuplicateEdge, "edge weight already defined for "+from+"->"+to)
	}
	g.weights[key] = fn

	if !directed {
		rev := edgeKey{to, from}
		if _, ok := g.weights[rev]; ok {
			return apperror.New(apperror.CodeDuplicateEdge, "edge weight already defined for "+to+"->"+from)
		}
		g.weights[rev] = fn
	}
	return nil
}

// EdgeWeight returns the weight function for (from, to): the explicitly
// defined one if present, else the convention's default. Returns
// CodeUnknownVertex if either endpoint is missing.
func (g *Dynamic) EdgeWeight(from, to string) (EdgeWeightFn, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.vertices[from]; !ok {
		return nil, apperror.NewWithField(apperror.CodeUnknownVertex, "source vertex not present", from)
	}
	if _, ok := g.vertices[to]; !ok {
		return nil, apperror.NewWithField(apperror.CodeUnknownVertex, "target vertex not present", to)
	}

	if fn, ok := g.weights[edgeKey{from, to}]; ok {
		return fn, nil
	}
	return DefaultWeight(g.convention), nil
}

// Neighbors returns the vertices with an explicitly defined outgoing edge
// from v. Vertices reachable only through the convention default are not
// included, since that default models "no edge" for TraversalTime/Cost.
func (g *Dynamic) Neighbors(v string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for k := range g.weights {
		if k.from == v {
			out = append(out, k.to)
		}
	}
	return out
}
