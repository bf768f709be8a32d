package adapter

import (
	"github.com/dabke-research/sumgraph/internal/accessor"
	"github.com/dabke-research/sumgraph/summary"
)

// VisibilityToSummary turns a visibility export directly into a
// *summary.Graph, using the measured visibility percentage as the edge
// weight. A summary graph built from ground-truth link uptime is the
// shape needed to validate a computed summary graph (from
// summarize.Summarize) against real telemetry.
func VisibilityToSummary(data accessor.VisibilityData) (*summary.Graph, error) {
	g := summary.New()

	for _, satellite := range data.Satellites {
		if err := g.AddVertex(satellite); err != nil {
			return nil, err
		}
	}

	for source, targets := range data.Visibility {
		for target, percent := range targets {
			if percent == 0 {
				continue
			}
			if err := g.SetEdgeWeight(source, target, percent); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}
