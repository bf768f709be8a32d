// Package adapter converts accessor data into the domain model: dynamic
// weighted graphs for distance exports, and summary graphs for visibility
// exports.
package adapter

import (
	"github.com/dabke-research/sumgraph/graph"
	"github.com/dabke-research/sumgraph/internal/accessor"
	"github.com/dabke-research/sumgraph/search"
)

// FundamentalSpeedConstant converts a distance sample into a traversal
// time: the speed of light in km/s.
const FundamentalSpeedConstant = 299792.0

// DistancesToDynamicGraph builds a *graph.Dynamic in the TraversalTime
// convention from a distances export: one vertex per satellite, and one
// edge weight closure per unordered satellite pair that looks up the
// nearest sampled distance for a given time and scales it into a
// traversal time via FundamentalSpeedConstant.
func DistancesToDynamicGraph(data accessor.DistancesData) (*graph.Dynamic, error) {
	g := graph.New(graph.TraversalTime)

	for _, satellite := range data.Satellites {
		if err := g.AddVertex(satellite); err != nil {
			return nil, err
		}
	}

	timestamps := data.DistanceSampleTimestamps

	for source, targets := range data.Distances {
		for target, samples := range targets {
			if g.HasEdgeWeight(source, target) {
				continue
			}

			fn := distanceWeightFn(timestamps, samples)
			if err := g.DefineEdgeWeight(source, target, fn, false); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// distanceWeightFn closes over a satellite pair's sampled distances and
// returns the traversal time at time t by locating the nearest sample.
func distanceWeightFn(timestamps, samples []float64) graph.EdgeWeightFn {
	return func(t float64) float64 {
		index, _, err := search.ClosestIndexValue(timestamps, t)
		if err != nil {
			return 0
		}
		return samples[index] / FundamentalSpeedConstant
	}
}
