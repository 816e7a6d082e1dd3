package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tungshoop/tungcart/internal/models"
)

type CartRepository interface {
	Load() ([]models.CartLine, error)
	Save(lines []models.CartLine) error
}

type fileCartRepository struct {
	path string
}

// NewCartRepo returns a cart store backed by a JSON file holding an ordered
// sequence of {product_id, quantity} pairs.
func NewCartRepo(path string) CartRepository {
	return &fileCartRepository{path: path}
}

// Load reads the persisted cart state. The store is fail-soft: a missing or
// empty file is initialized to an empty sequence, and malformed content
// resets the cart to empty instead of aborting startup.
func (r *fileCartRepository) Load() ([]models.CartLine, error) {
	info, err := os.Stat(r.path)
	if os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		if err := r.Save(nil); err != nil {
			return nil, err
		}

		return []models.CartLine{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("checking cart file: %w", err)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading cart file: %w", err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		slog.Warn("Cart state is malformed, resetting to an empty cart",
			slog.String("path", r.path),
			slog.String("error", err.Error()))

		return []models.CartLine{}, nil
	}

	return lines, nil
}

func (r *fileCartRepository) Save(lines []models.CartLine) error {
	if lines == nil {
		lines = []models.CartLine{}
	}

	data, err := json.MarshalIndent(lines, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling cart state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("creating cart directory: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("writing cart file: %w", err)
	}

	return nil
}
