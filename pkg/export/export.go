// Package export writes snapshots to XLSX workbooks.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/aggregate"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"
)

// Sheet names in the exported workbook.
const (
	SheetSummary  = "Summary"
	SheetGlobal   = "Global"
	SheetEntities = "Entities"
)

// ErrFilled is returned when Fill is called on an exporter that already
// holds a snapshot.
var ErrFilled = errors.New("exporter already filled")

// Exporter fills a workbook from one snapshot. It is single-use: create a new
// exporter for each workbook.
type Exporter struct {
	wb        *excelize.File
	threshold float64
	filled    bool
}

// NewExporter creates an exporter over a fresh workbook.
func NewExporter(threshold float64) *Exporter {
	return &Exporter{wb: excelize.NewFile(), threshold: threshold}
}

// Close releases the workbook.
func (e *Exporter) Close() error { return e.wb.Close() }

// Fill writes the summary, global series and per-entity sheets.
func (e *Exporter) Fill(s *timeline.WorldSnapshot, year int) error {
	if e == nil || e.wb == nil {
		return errors.New("workbook is nil")
	}
	if e.filled {
		return ErrFilled
	}
	e.filled = true
	if err := e.wb.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("renaming summary sheet: %w", err)
	}
	for _, name := range []string{SheetGlobal, SheetEntities} {
		if _, err := e.wb.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	series := aggregate.ComputeGlobalSeries(s)
	if err := e.writeSummary(s, year); err != nil {
		return err
	}
	if err := e.writeGlobal(series); err != nil {
		return err
	}
	return e.writeEntities(s)
}

func (e *Exporter) writeSummary(s *timeline.WorldSnapshot, year int) error {
	sum := aggregate.Summarize(s, year, e.threshold)

	rows := [][]any{
		{"Resource", sum.Resource},
		{"Unit", sum.Unit},
		{"Range", fmt.Sprintf("%d-%d", s.Range.Start, s.Range.End)},
		{"Projection starts", s.Range.Pivot},
		{"Year", sum.Year},
		{"Total reserves", sum.TotalReserves},
		{"Total consumption", sum.TotalConsumption},
		{"Depleted entities", sum.DepletedCount},
		{"Critical entities", sum.CriticalCount},
		{"Global depletion year", optional(sum.GlobalDepletionYear)},
		{"Average depletion year", optional(sum.AverageDepletionYear)},
	}
	return e.writeRows(SheetSummary, rows)
}

func (e *Exporter) writeGlobal(series []aggregate.GlobalYearAggregate) error {
	rows := make([][]any, 0, len(series)+1)
	rows = append(rows, []any{"Year", "Total reserves", "Total consumption"})
	for _, a := range series {
		rows = append(rows, []any{a.Year, a.TotalReserves, a.TotalConsumption})
	}
	return e.writeRows(SheetGlobal, rows)
}

func (e *Exporter) writeEntities(s *timeline.WorldSnapshot) error {
	rows := [][]any{{"ID", "Name", "Year", "Reserves", "Consumption", "Depleted", "Ratio"}}
	for _, id := range s.IDs() {
		tl := s.Entities[id]
		for _, p := range tl.History {
			rows = append(rows, []any{
				tl.ID, tl.Name, p.Year, p.Reserves, p.Consumption, p.IsDepleted,
				aggregate.ColorRatio(tl, p.Year),
			})
		}
	}
	return e.writeRows(SheetEntities, rows)
}

func (e *Exporter) writeRows(sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := e.wb.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func optional[T any](v *T) any {
	if v == nil {
		return "none"
	}
	return *v
}

// WriteWorkbook fills a workbook for s at year and writes it to w.
func WriteWorkbook(w io.Writer, s *timeline.WorldSnapshot, year int, threshold float64) error {
	e := NewExporter(threshold)
	defer e.Close()

	if err := e.Fill(s, year); err != nil {
		return err
	}
	if err := e.wb.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
