package accessor

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dabke-research/sumgraph/pkg/apperror"
)

const (
	analysisSeparator   = " sees "
	analysisColumn      = "Analysis"
	percentTrueColumn   = "Percent True"
	percentTrueSentinel = "%"
)

// CSVVisibility reads a pared-down SOAP visibility export: one row per
// satellite pair, an "Analysis" column reading "<source> sees <target>",
// and a "Percent True" column giving the fraction of time the pair could
// see one another, expressed as e.g. "42.5%".
type CSVVisibility struct {
	filepath string
	data     VisibilityData
}

// NewCSVVisibility builds a reader for the visibility CSV at filepath.
// Nothing is read from disk until Run is called.
func NewCSVVisibility(filepath string) *CSVVisibility {
	return &CSVVisibility{filepath: filepath}
}

// Data returns the most recently parsed visibility data.
func (a *CSVVisibility) Data() VisibilityData {
	return a.data
}

// Run reads and parses the visibility file.
func (a *CSVVisibility) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperror.Wrap(err, apperror.CodeCancelled, "visibility accessor cancelled")
	}

	f, err := os.Open(a.filepath)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeIO, "could not open visibility file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return apperror.New(apperror.CodeInvalidFormat, "visibility CSV had no header row")
	}
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidFormat, "could not parse visibility CSV header")
	}

	analysisIdx, percentIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case analysisColumn:
			analysisIdx = i
		case percentTrueColumn:
			percentIdx = i
		}
	}
	if analysisIdx == -1 || percentIdx == -1 {
		return apperror.New(apperror.CodeInvalidFormat, "visibility CSV missing Analysis/Percent True columns")
	}

	satelliteSet := make(map[string]struct{})
	type pairPercent struct {
		source, target string
		percent        float64
	}
	var pairs []pairPercent

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return apperror.Wrap(err, apperror.CodeInvalidFormat, "could not parse visibility CSV row")
		}
		if analysisIdx >= len(row) {
			continue
		}
		if strings.TrimSpace(row[analysisIdx]) == analysisColumn {
			break // sentinel row terminating the data section
		}
		if percentIdx >= len(row) {
			continue
		}

		source, target, err := extractSatelliteNamesFromAnalysisLabel(row[analysisIdx])
		if err != nil {
			return err
		}
		percent, err := parsePercent(row[percentIdx])
		if err != nil {
			return err
		}

		satelliteSet[source] = struct{}{}
		satelliteSet[target] = struct{}{}
		pairs = append(pairs, pairPercent{source, target, percent})
	}

	satellites := make([]string, 0, len(satelliteSet))
	for s := range satelliteSet {
		satellites = append(satellites, s)
	}

	visibility := make(map[string]map[string]float64, len(satellites))
	for _, s := range satellites {
		visibility[s] = make(map[string]float64, len(satellites))
		for _, t := range satellites {
			visibility[s][t] = 0
		}
	}
	for _, p := range pairs {
		visibility[p.source][p.target] = p.percent
		visibility[p.target][p.source] = p.percent
	}

	a.data = VisibilityData{Satellites: satellites, Visibility: visibility}
	return nil
}

func extractSatelliteNamesFromAnalysisLabel(label string) (source, target string, err error) {
	parts := strings.SplitN(label, analysisSeparator, 2)
	if len(parts) != 2 {
		return "", "", apperror.NewWithField(apperror.CodeInvalidFormat, "could not parse analysis label", label)
	}
	return parts[0], parts[1], nil
}

func parsePercent(field string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(field), percentTrueSentinel)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, apperror.NewWithField(apperror.CodeInvalidFormat, "could not parse percent true field", field)
	}
	return v, nil
}
