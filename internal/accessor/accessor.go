// Package accessor reads satellite telemetry exports (SOAP-style distance
// and visibility tables) from CSV and XLSX files into typed in-memory data.
package accessor

import "context"

// Accessor is implemented by every concrete data reader in this package.
// Run performs the actual file I/O; construction (New...) never triggers
// it, so an Accessor can be built, swapped for a fixture, or passed around
// before anything is read from disk.
type Accessor interface {
	Run(ctx context.Context) error
}

// SatelliteName identifies a vertex in the satellite network.
type SatelliteName = string

// DistancesData is the parsed form of a distances export: for every
// sampled timestamp, the distance between every pair of satellites that
// had a column in the source file.
type DistancesData struct {
	Satellites               []SatelliteName
	Distances                map[SatelliteName]map[SatelliteName][]float64
	DistanceSampleTimestamps []float64
}

// VisibilityData is the parsed form of a pared-down visibility export: the
// percentage of time each pair of satellites could see one another.
type VisibilityData struct {
	Satellites []SatelliteName
	Visibility map[SatelliteName]map[SatelliteName]float64
}
