// Package topology defines the adapter-facing shape for zigzag persistent
// homology over a time-varying connectivity graph. No mature
// computational-topology library exists for Go (the established
// implementations, such as dionysus, are C++/Python), so this package
// stops at the seam: it builds the Filtration an external
// computational-topology library would consume, and declares the
// PersistenceComputer interface such a library would implement.
package topology

import (
	"github.com/dabke-research/sumgraph/internal/accessor"
)

// Interval is a half-open [rise, set) visibility window between two
// satellites, the birth/death times of the corresponding simplex.
type Interval struct {
	Rise float64
	Set  float64
}

// Simplex is either a single vertex (one satellite) or an edge (two
// satellites), named by the indices they hold in a Filtration's Vertices
// slice, the integer-indexed form persistence libraries consume.
type Simplex struct {
	VertexIndices []int
	Intervals     []Interval
}

// Filtration is the input a zigzag persistent homology computation would
// consume: every satellite as a 0-simplex, and every connected pair as a
// 1-simplex carrying the rise/set intervals during which the connection
// existed.
type Filtration struct {
	Vertices  []string
	Simplices []Simplex
}

// BuildFiltration converts a visibility-shaped connections export into a
// Filtration, one 0-simplex per satellite and one 1-simplex per pair that
// was ever connected. It does not also invoke a persistence computation —
// see PersistenceComputer.
func BuildFiltration(satellites []string, connections map[string]map[string][]Interval) Filtration {
	indexOf := make(map[string]int, len(satellites))
	f := Filtration{Vertices: append([]string(nil), satellites...)}

	for i, s := range f.Vertices {
		indexOf[s] = i
		f.Simplices = append(f.Simplices, Simplex{VertexIndices: []int{i}})
	}

	seen := make(map[[2]int]bool)
	for source, targets := range connections {
		for target, intervals := range targets {
			si, ok1 := indexOf[source]
			ti, ok2 := indexOf[target]
			if !ok1 || !ok2 {
				continue
			}
			key := [2]int{si, ti}
			if si > ti {
				key = [2]int{ti, si}
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			f.Simplices = append(f.Simplices, Simplex{
				VertexIndices: []int{key[0], key[1]},
				Intervals:     intervals,
			})
		}
	}

	return f
}

// PersistenceDiagram is a set of (birth, death) points — the output shape
// a zigzag persistence computation produces for one homological dimension.
type PersistenceDiagram [][2]float64

// PersistenceComputer is the seam an external computational-topology
// library would fill in: given a Filtration, compute its zigzag
// persistence diagrams. No implementation is provided in this module.
type PersistenceComputer interface {
	ComputeZigzagPersistence(f Filtration) ([]PersistenceDiagram, error)
}

// VisibilityToFiltration builds a Filtration straight from an
// accessor.VisibilityData value, treating nonzero entries as "was
// connected at some point". Only the full connections SOAP export
// (distinct from the pared-down visibility export) carries literal
// rise/set intervals; this helper lets callers who only have visibility
// percentages still build a filtration.
func VisibilityToFiltration(data accessor.VisibilityData) Filtration {
	connections := make(map[string]map[string][]Interval, len(data.Visibility))
	for source, targets := range data.Visibility {
		for target, percent := range targets {
			if percent <= 0 {
				continue
			}
			if connections[source] == nil {
				connections[source] = make(map[string][]Interval)
			}
			connections[source][target] = []Interval{{Rise: 0, Set: percent}}
		}
	}
	return BuildFiltration(data.Satellites, connections)
}
