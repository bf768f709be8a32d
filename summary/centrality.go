package summary

import (
	"sync"

	"github.com/dabke-research/sumgraph/pkg/apperror"
)

// Centrality maps vertices to a single accumulated scalar weight, used to
// rank vertices by how often they participate in sampled journeys.
type Centrality struct {
	mu      sync.RWMutex
	weights map[string]float64
}

// NewCentrality creates an empty centrality map.
func NewCentrality() *Centrality {
	return &Centrality{weights: make(map[string]float64)}
}

// HasVertex reports whether v has an entry.
func (c *Centrality) HasVertex(v string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.weights[v]
	return ok
}

// AddVertex adds v with weight 0 if it is not already present; it is a
// no-op otherwise.
func (c *Centrality) AddVertex(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.weights[v]; !ok {
		c.weights[v] = 0
	}
}

// SetVertexWeight overwrites v's weight. Returns CodeUnknownVertex if v was
// never added.
func (c *Centrality) SetVertexWeight(v string, weight float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.weights[v]; !ok {
		return apperror.NewWithField(apperror.CodeUnknownVertex, "vertex not present", v)
	}
	c.weights[v] = weight
	return nil
}

// VertexWeight returns v's weight, or 0 if v was never added.
func (c *Centrality) VertexWeight(v string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.weights[v]
}

// Increment adds delta to v's weight. Returns CodeUnknownVertex if v was
// never added.
func (c *Centrality) Increment(v string, delta float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.weights[v]; !ok {
		return apperror.NewWithField(apperror.CodeUnknownVertex, "vertex not present", v)
	}
	c.weights[v] += delta
	return nil
}

// FromGraph derives a Centrality map from a summary graph: each vertex's
// weight is the sum of the weights of its outgoing edges, a measure of how
// often sampled journeys depart through that vertex.
func FromGraph(g *Graph) *Centrality {
	c := NewCentrality()
	for _, v := range g.Vertices() {
		c.AddVertex(v)
	}
	for k, w := range g.Edges() {
		c.weights[k[0]] += w
	}
	return c
}
