package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/tungshoop/tungcart/internal/models"
)

func renderCSV(snapshot *models.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(header); err != nil {
		return err
	}

	for _, item := range snapshot.Items {
		record := []string{
			item.ProductID,
			item.Name,
			strconv.Itoa(item.Quantity),
			item.Price.String(),
			item.Shipping.String(),
			item.Subtotal.String(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	if err := w.Write([]string{"", "", "", "", "TOTAL", snapshot.Total.String()}); err != nil {
		return err
	}

	w.Flush()

	return w.Error()
}
