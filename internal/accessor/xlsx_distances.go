package accessor

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/dabke-research/sumgraph/pkg/apperror"
	"github.com/dabke-research/sumgraph/pkg/logger"
)

// XLSXDistances reads the same shape of distance matrix as CSVDistances —
// a TIME_UNITS column followed by "Dist:<source>_<target>" columns — from
// an Excel workbook instead of a flat CSV. Ground station exports of SOAP
// telemetry are frequently distributed as workbooks rather than plain
// CSV, and excelize already has a home in this codebase on the write side.
type XLSXDistances struct {
	filepath string
	sheet    string
	data     DistancesData
}

// NewXLSXDistances builds a reader for the distances workbook at filepath.
// sheet selects which sheet to read; an empty sheet uses the workbook's
// first sheet. Nothing is read from disk until Run is called.
func NewXLSXDistances(filepath, sheet string) *XLSXDistances {
	return &XLSXDistances{filepath: filepath, sheet: sheet}
}

// Data returns the most recently parsed distances data.
func (a *XLSXDistances) Data() DistancesData {
	return a.data
}

// Run reads and parses the distances workbook. Unlike the CSV export,
// spreadsheet rows carry no preamble lines to skip: row 1 is the header
// and every row after it is data, with the same trailing-column caveat.
func (a *XLSXDistances) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperror.Wrap(err, apperror.CodeCancelled, "distances accessor cancelled")
	}

	f, err := excelize.OpenFile(a.filepath)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeIO, "could not open distances workbook")
	}
	defer f.Close()

	sheet := a.sheet
	if sheet == "" {
		sheet = f.GetSheetList()[0]
	}

	logger.Info("parsing distances XLSX file", "filepath", a.filepath, "sheet", sheet)

	rows, err := f.GetRows(sheet)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeIO, "could not read distances sheet")
	}
	if len(rows) == 0 {
		return apperror.New(apperror.CodeInvalidFormat, "distances workbook had no rows")
	}

	header := dropLastColumn(rows[0])

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		dataRows = append(dataRows, dropLastColumn(row))
	}

	data, err := buildDistancesData(header, dataRows)
	if err != nil {
		return err
	}
	a.data = data
	return nil
}
