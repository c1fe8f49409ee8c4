package export

import (
	"time"

	"catalog-insights/core/bundle"
	"catalog-insights/core/utils"

	"github.com/xuri/excelize/v2"
)

// Sheet names of summary.xlsx.
const (
	SheetBundles  = "Bundles"
	SheetUnsynced = "Unsynced"
)

var (
	bundleHeadings   = []any{"Key", "Catalog Item ID", "Name", "Type", "Deployments", "Resources"}
	unsyncedHeadings = []any{"Deployment ID", "Name", "Status", "Project", "Created", "Reason", "Expense", "Inputs"}
)

// writeXLSX writes one row per catalog bundle and, when present, one row
// per unsynced deployment on a second sheet.
func writeXLSX(filename string, b *bundle.ExportBundle) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetBundles); err != nil {
		return err
	}
	if err := setRow(f, SheetBundles, 1, bundleHeadings); err != nil {
		return err
	}
	for i, bd := range b.Bundles {
		row := []any{bd.Key, bd.CatalogItem.ID, bd.CatalogItem.Name, bd.CatalogItem.Type, bd.DeploymentCount, bd.ResourceCount}
		if err := setRow(f, SheetBundles, i+2, row); err != nil {
			return err
		}
	}

	if b.Unsynced != nil {
		if _, err := f.NewSheet(SheetUnsynced); err != nil {
			return err
		}
		if err := setRow(f, SheetUnsynced, 1, unsyncedHeadings); err != nil {
			return err
		}
		for i, d := range b.Unsynced.Deployments {
			row := []any{
				d.ID, d.Name, d.Status, d.ProjectID,
				d.CreatedAt.UTC().Format(time.RFC3339),
				string(d.UnsyncedReason),
				d.ExpenseTotal().StringFixed(2),
				utils.ToString(d.Inputs),
			}
			if err := setRow(f, SheetUnsynced, i+2, row); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(filename)
}

func setRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
