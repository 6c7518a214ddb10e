package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"agrismart/domain/dataset"
	"agrismart/internal"
	"agrismart/internal/evaluation"

	"github.com/xuri/excelize/v2"
)

// Sheet names of an exported workbook
const (
	DatasetSheet = "dataset"
	SummarySheet = "summary"
)

// Header is the dataset sheet column order
var Header = []string{
	"crop", "state", "district", "soil_type",
	"temperature", "humidity", "rainfall", "ph",
	"nitrogen", "phosphorus", "potassium", "yield_kg_ha",
}

var summaryHeader = []string{"column", "min", "max", "mean", "std_dev"}

// Exporter implements ports.DatasetExporter as an xlsx workbook
type Exporter struct {
	logger *internal.Logger
}

// NewExporter creates a workbook exporter
func NewExporter(logger *internal.Logger) *Exporter {
	if logger == nil {
		logger = internal.Discard()
	}
	return &Exporter{logger: logger.With("excel")}
}

// Export writes one row per record plus a per-column summary sheet
func (e *Exporter) Export(ctx context.Context, ds *dataset.Dataset, path string) error {
	if ds == nil || ds.Len() == 0 {
		return fmt.Errorf("nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DatasetSheet); err != nil {
		return fmt.Errorf("failed to name dataset sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, DatasetSheet, 1, toCells(Header)); err != nil {
		return err
	}
	for i, r := range ds.Records {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		row := []interface{}{r.Crop, r.State, r.District, r.SoilType}
		for _, v := range r.Measurements() {
			row = append(row, v)
		}
		row = append(row, r.YieldKgHa)
		if err := writeRow(f, DatasetSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := styleHeader(f, DatasetSheet, len(Header), bold); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := e.writeSummary(f, ds); err != nil {
		return err
	}
	if err := styleHeader(f, SummarySheet, len(summaryHeader), bold); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("exported %d records to %s", ds.Len(), path)
	return nil
}

func (e *Exporter) writeSummary(f *excelize.File, ds *dataset.Dataset) error {
	if err := writeRow(f, SummarySheet, 1, toCells(summaryHeader)); err != nil {
		return err
	}

	numeric := Header[4:]
	columns := make([][]float64, len(numeric))
	for _, r := range ds.Records {
		values := append(r.Measurements(), r.YieldKgHa)
		for j, v := range values {
			columns[j] = append(columns[j], v)
		}
	}

	row := 2
	for j, name := range numeric {
		s, err := evaluation.Summarize(columns[j])
		if err != nil {
			return fmt.Errorf("failed to summarise %s: %w", name, err)
		}
		cells := []interface{}{name, s.Min, s.Max, dataset.Round(s.Mean, 2), dataset.Round(s.StdDev, 2)}
		if err := writeRow(f, SummarySheet, row, cells); err != nil {
			return err
		}
		row++
	}

	for _, col := range []string{dataset.ColumnCrop, dataset.ColumnState, dataset.ColumnDistrict, dataset.ColumnSoilType} {
		cells := []interface{}{"distinct_" + col, ds.Distinct(col)}
		if err := writeRow(f, SummarySheet, row, cells); err != nil {
			return err
		}
		row++
	}
	return writeRow(f, SummarySheet, row, []interface{}{"seed", ds.Seed})
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, width, style int) error {
	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
