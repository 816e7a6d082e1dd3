package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tungshoop/tungcart/internal/catalog"
	"github.com/tungshoop/tungcart/internal/models"
)

type CatalogRepository interface {
	Load() (*catalog.Catalog, error)
	Save(c *catalog.Catalog) error
}

type fileCatalogRepository struct {
	path   string
	keyFn  models.KeyFunc
	policy *bluemonday.Policy
}

// NewCatalogRepo returns a catalog store backed by a JSON descriptor file.
// keyFn may be nil to use the default license key generator.
func NewCatalogRepo(path string, keyFn models.KeyFunc) CatalogRepository {
	return &fileCatalogRepository{
		path:   path,
		keyFn:  keyFn,
		policy: bluemonday.StrictPolicy(),
	}
}

// Load parses the descriptor file into a catalog. A missing file is not an
// error: the store may simply not exist yet, so an empty catalog is returned
// after a warning.
func (r *fileCatalogRepository) Load() (*catalog.Catalog, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Product catalog not found, starting with an empty catalog",
				slog.String("path", r.path))

			return catalog.New(), nil
		}

		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var descriptors []models.ProductDescriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", r.path, err)
	}

	c := catalog.New()

	for i := range descriptors {
		desc := &descriptors[i]
		// Display names end up in exported documents; strip any markup.
		desc.Name = r.policy.Sanitize(desc.Name)
		c.Add(desc.ToProduct(r.keyFn))
	}

	return c, nil
}

func (r *fileCatalogRepository) Save(c *catalog.Catalog) error {
	products := c.Products()
	descriptors := make([]*models.ProductDescriptor, 0, len(products))

	for _, p := range products {
		descriptors = append(descriptors, p.ToDescriptor())
	}

	data, err := json.MarshalIndent(descriptors, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog file: %w", err)
	}

	return nil
}
