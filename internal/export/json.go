package export

import (
	"encoding/json"
	"os"

	"github.com/tungshoop/tungcart/internal/models"
)

func renderJSON(snapshot *models.Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
