package report

import (
	"cows-tsp/internal/domain"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Tour"

// WriteTourXLSX writes one row per stop (order, name, coordinates, leg
// distance) followed by a total row.
func WriteTourXLSX(path string, plan *domain.TourPlan) error {
	if plan == nil {
		return errors.New("write tour report: plan is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("write tour report: new sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("write tour report: stream writer: %w", err)
	}

	headers := []interface{}{"Stop", "Name", "Lat", "Lon", "Leg (m)"}
	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("write tour report: header: %w", err)
	}

	for i, stop := range plan.Stops {
		leg := 0
		if i < len(plan.Legs) {
			leg = plan.Legs[i]
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{i + 1, stop.Name, stop.Location.Lat, stop.Location.Lon, leg}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write tour report: row %d: %w", i+1, err)
		}
	}

	cell, _ := excelize.CoordinatesToCellName(1, len(plan.Stops)+2)
	total := []interface{}{"Total", nil, nil, nil, plan.Tour.DistanceMeters}
	if err := sw.SetRow(cell, total); err != nil {
		return fmt.Errorf("write tour report: total row: %w", err)
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("write tour report: flush: %w", err)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write tour report: save %q: %w", path, err)
	}
	return nil
}
