// Package export renders cart snapshots into shareable documents. Every
// format produces one row per cart line plus a trailing TOTAL row; the caller
// is expected to block empty snapshots before invoking a renderer.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tungshoop/tungcart/internal/errors"
	"github.com/tungshoop/tungcart/internal/metrics"
	"github.com/tungshoop/tungcart/internal/models"
)

var header = []string{"Product ID", "Name", "Quantity", "Price", "Shipping", "Subtotal"}

type renderFunc func(snapshot *models.Snapshot, path string) error

var renderers = map[string]renderFunc{
	"json": renderJSON,
	"csv":  renderCSV,
	"xlsx": renderXLSX,
	"pdf":  renderPDF,
}

type Exporter struct {
	dir string
}

// NewExporter writes documents under dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

func Formats() []string {
	return []string{"json", "csv", "xlsx", "pdf"}
}

// Export renders the snapshot in the requested format and returns the path of
// the written document. An empty filename defaults to cart.<format>.
func (e *Exporter) Export(snapshot *models.Snapshot, format, filename string) (string, error) {
	render, ok := renderers[format]
	if !ok {
		return "", errors.ValidationError(fmt.Sprintf("Unsupported export format '%s'", format))
	}

	if filename == "" {
		filename = "cart." + format
	}

	path := filepath.Join(e.dir, filename)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.InternalError("Failed to create export directory").WithError(err)
	}

	if err := render(snapshot, path); err != nil {
		return "", errors.InternalError(fmt.Sprintf("Failed to render %s document", format)).WithError(err)
	}

	metrics.RecordExport(format)

	return path, nil
}
