package export

import (
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/tungshoop/tungcart/internal/models"
)

var pdfColumnWidths = []float64{30, 50, 22, 25, 25, 28}

func renderPDF(snapshot *models.Snapshot, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Tungshoop Cart Export", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 220, 220)

	for i, h := range header {
		pdf.CellFormat(pdfColumnWidths[i], 8, h, "1", 0, "L", true, 0, "")
	}

	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)

	for _, item := range snapshot.Items {
		cells := []string{
			item.ProductID,
			item.Name,
			strconv.Itoa(item.Quantity),
			item.Price.String(),
			item.Shipping.String(),
			item.Subtotal.String(),
		}
		for i, value := range cells {
			align := "L"
			if i >= 2 {
				align = "R"
			}

			pdf.CellFormat(pdfColumnWidths[i], 8, value, "1", 0, align, false, 0, "")
		}

		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)

	totals := []string{"", "", "", "", "TOTAL", snapshot.Total.String()}
	for i, value := range totals {
		pdf.CellFormat(pdfColumnWidths[i], 8, value, "1", 0, "R", false, 0, "")
	}

	pdf.Ln(-1)

	return pdf.OutputFileAndClose(path)
}
