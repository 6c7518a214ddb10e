package excel

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"agrismart/domain/dataset"
	"agrismart/internal"
	"agrismart/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader implements ports.DatasetReader for workbooks written by Exporter.
// It replays an exported synthetic dataset; workbooks without the summary seed
// row are rejected.
type DataReader struct {
	logger *internal.Logger
}

// NewDataReader creates a reader for exported workbooks
func NewDataReader(logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.Discard()
	}
	return &DataReader{logger: logger.With("excel")}
}

// Read loads labelled records from path. Columns are matched by header name, so
// edited workbooks with extra or reordered columns are accepted.
func (r *DataReader) Read(ctx context.Context, path string) (*dataset.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("dataset file not found: %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.MalformedInput(fmt.Sprintf("failed to open workbook %s: %v", path, err))
	}
	defer f.Close()

	seed, err := exportSeed(f)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(DatasetSheet)
	if err != nil {
		return nil, errors.MalformedInput(fmt.Sprintf("failed to read sheet %s: %v", DatasetSheet, err))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds, err := processRows(rows)
	if err != nil {
		return nil, err
	}
	ds.Seed = seed
	r.logger.Info("read %d records from %s (seed %d)", ds.Len(), path, seed)
	return ds, nil
}

// exportSeed finds the seed row Exporter writes last on the summary sheet
func exportSeed(f *excelize.File) (int64, error) {
	summary, err := f.GetRows(SummarySheet)
	if err != nil {
		return 0, errors.MalformedInput("workbook was not written by export_dataset: no summary sheet")
	}
	for _, row := range summary {
		if len(row) >= 2 && row[0] == "seed" {
			seed, err := strconv.ParseInt(row[1], 10, 64)
			if err != nil {
				return 0, errors.MalformedInput(fmt.Sprintf("invalid seed %q on summary sheet", row[1]))
			}
			return seed, nil
		}
	}
	return 0, errors.MalformedInput("workbook was not written by export_dataset: no seed row")
}

// processRows converts raw string rows into records. Blank rows are skipped.
func processRows(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) < 2 {
		return nil, errors.MalformedInput("dataset must have a header row and at least one data row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range Header {
		if _, ok := index[col]; !ok {
			return nil, errors.MalformedInput(fmt.Sprintf("dataset is missing column %q", col))
		}
	}

	ds := &dataset.Dataset{Records: make([]dataset.Record, 0, len(rows)-1)}
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rec, err := parseRecord(row, index)
		if err != nil {
			return nil, errors.MalformedInput(fmt.Sprintf("row %d: %v", n+2, err))
		}
		ds.Records = append(ds.Records, rec)
	}
	if ds.Len() == 0 {
		return nil, errors.MalformedInput("dataset has no data rows")
	}
	return ds, nil
}

func parseRecord(row []string, index map[string]int) (dataset.Record, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := dataset.Record{Sample: dataset.Sample{
		Crop:     cell(dataset.ColumnCrop),
		State:    cell(dataset.ColumnState),
		District: cell(dataset.ColumnDistrict),
		SoilType: cell(dataset.ColumnSoilType),
	}}
	for _, col := range []string{dataset.ColumnCrop, dataset.ColumnState, dataset.ColumnDistrict} {
		if cell(col) == "" {
			return rec, fmt.Errorf("empty %s", col)
		}
	}

	targets := []*float64{
		&rec.Temperature, &rec.Humidity, &rec.Rainfall, &rec.PH,
		&rec.Nitrogen, &rec.Phosphorus, &rec.Potassium, &rec.YieldKgHa,
	}
	for i, col := range Header[4:] {
		v, err := strconv.ParseFloat(cell(col), 64)
		if err != nil {
			return rec, fmt.Errorf("%s %q is not a number", col, cell(col))
		}
		*targets[i] = v
	}
	return rec, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
