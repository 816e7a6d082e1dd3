package export

import (
	"github.com/tungshoop/tungcart/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Cart"

func renderXLSX(snapshot *models.Snapshot, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}

	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return err
	}

	row := 2

	for _, item := range snapshot.Items {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}

		values := []any{
			item.ProductID,
			item.Name,
			item.Quantity,
			item.Price.String(),
			item.Shipping.String(),
			item.Subtotal.String(),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}

		row++
	}

	// One blank row before the total, as in the reference workbook.
	row++

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}

	totalRow := []any{"", "", "", "", "TOTAL", snapshot.Total.String()}
	if err := f.SetSheetRow(sheetName, cell, &totalRow); err != nil {
		return err
	}

	return f.SaveAs(path)
}
