package accessor

import (
	"strconv"
	"strings"

	"github.com/dabke-research/sumgraph/pkg/apperror"
)

const (
	headerPrefixForSatelliteName = "Dist:"
	separatorForSatelliteNames   = "_"
	timeColumnHeader             = "TIME_UNITS"
)

// extractSatelliteNamesFromHeader splits a "Dist:<source>_<target>" column
// header into its two satellite names.
func extractSatelliteNamesFromHeader(header string) (source, target string, err error) {
	stripped := strings.TrimPrefix(header, headerPrefixForSatelliteName)
	parts := strings.Split(stripped, separatorForSatelliteNames)
	if len(parts) != 2 {
		return "", "", apperror.NewWithField(apperror.CodeInvalidFormat, "could not parse distance column header", header)
	}
	return parts[0], parts[1], nil
}

func parseFloatField(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, apperror.NewWithField(apperror.CodeInvalidFormat, "could not parse numeric field", field)
	}
	return v, nil
}

// buildDistancesData converts parallel header/row data, already stripped of
// preamble rows and the trailing invalid column, into DistancesData. header
// includes the TIME_UNITS column in position 0; rows holds one []string per
// remaining data row, same column layout as header.
func buildDistancesData(header []string, rows [][]string) (DistancesData, error) {
	if len(header) < 2 {
		return DistancesData{}, apperror.New(apperror.CodeInvalidFormat, "distances header has no satellite columns")
	}

	columnHeaders := header[1:]
	satelliteSet := make(map[string]struct{})
	columnPairs := make([][2]string, len(columnHeaders))
	for i, h := range columnHeaders {
		source, target, err := extractSatelliteNamesFromHeader(h)
		if err != nil {
			return DistancesData{}, err
		}
		columnPairs[i] = [2]string{source, target}
		satelliteSet[source] = struct{}{}
		satelliteSet[target] = struct{}{}
	}

	satellites := make([]string, 0, len(satelliteSet))
	for s := range satelliteSet {
		satellites = append(satellites, s)
	}

	distances := make(map[string]map[string][]float64)
	timestamps := make([]float64, 0, len(rows))

	for _, row := range rows {
		if len(row) < len(header) {
			return DistancesData{}, apperror.New(apperror.CodeInvalidFormat, "distances row has fewer columns than header")
		}
		ts, err := parseFloatField(row[0])
		if err != nil {
			return DistancesData{}, err
		}
		timestamps = append(timestamps, ts)

		for i, pair := range columnPairs {
			value, err := parseFloatField(row[i+1])
			if err != nil {
				return DistancesData{}, err
			}
			source, target := pair[0], pair[1]
			if distances[source] == nil {
				distances[source] = make(map[string][]float64)
			}
			if distances[target] == nil {
				distances[target] = make(map[string][]float64)
			}
			distances[source][target] = append(distances[source][target], value)
			distances[target][source] = append(distances[target][source], value)
		}
	}

	return DistancesData{
		Satellites:               satellites,
		Distances:                distances,
		DistanceSampleTimestamps: timestamps,
	}, nil
}
