package accessor

import (
	"bufio"
	"context"
	"encoding/csv"
	"os"
	"strings"

	"github.com/dabke-research/sumgraph/pkg/apperror"
	"github.com/dabke-research/sumgraph/pkg/logger"
)

// distancesPreambleRows are the 0-indexed lines of a SOAP distances export
// that cannot be parsed as tabular data and must be skipped: the file
// banner, the data/generation timestamps, a blank separator line, the
// simulation start/stop line, and the units line. Line 5 is the real
// header. Skipping is done on raw lines, not parsed CSV records, since
// Go's csv.Reader silently drops the blank separator line on its own and
// would throw off an index counted against parsed records.
var distancesPreambleRows = map[int]struct{}{0: {}, 1: {}, 2: {}, 3: {}, 4: {}, 6: {}}

// CSVDistances reads the tabular CSV form of a SOAP distances export: an
// augmented CSV whose real header and data rows are interleaved with
// preamble lines, and whose trailing column is not valid data.
type CSVDistances struct {
	filepath string
	data     DistancesData
}

// NewCSVDistances builds a reader for the distances CSV at filepath.
// Nothing is read from disk until Run is called.
func NewCSVDistances(filepath string) *CSVDistances {
	return &CSVDistances{filepath: filepath}
}

// Data returns the most recently parsed distances data. It is the zero
// value until Run has succeeded.
func (a *CSVDistances) Data() DistancesData {
	return a.data
}

// Run reads and parses the distances file.
func (a *CSVDistances) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperror.Wrap(err, apperror.CodeCancelled, "distances accessor cancelled")
	}

	f, err := os.Open(a.filepath)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeIO, "could not open distances file")
	}
	defer f.Close()

	logger.Info("parsing distances CSV file", "filepath", a.filepath)

	scanner := bufio.NewScanner(f)
	var kept []string
	lineIndex := 0
	for scanner.Scan() {
		if _, skip := distancesPreambleRows[lineIndex]; !skip {
			kept = append(kept, scanner.Text())
		}
		lineIndex++
	}
	if err := scanner.Err(); err != nil {
		return apperror.Wrap(err, apperror.CodeIO, "could not read distances file")
	}
	if len(kept) == 0 {
		return apperror.New(apperror.CodeInvalidFormat, "distances CSV had no header row")
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(kept, "\n")))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidFormat, "could not parse distances CSV")
	}
	if len(records) == 0 {
		return apperror.New(apperror.CodeInvalidFormat, "distances CSV had no header row")
	}

	header := dropLastColumn(records[0])
	rows := make([][]string, 0, len(records)-1)
	for _, r := range records[1:] {
		rows = append(rows, dropLastColumn(r))
	}

	data, err := buildDistancesData(header, rows)
	if err != nil {
		return err
	}
	a.data = data
	return nil
}

// dropLastColumn removes the trailing column of a distances row, which the
// source export never populates with valid data.
func dropLastColumn(record []string) []string {
	if len(record) == 0 {
		return record
	}
	return record[:len(record)-1]
}
