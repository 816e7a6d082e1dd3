package catalog

import (
	"github.com/tungshoop/tungcart/internal/models"
)

// Catalog is the authoritative set of available products and their stock
// levels. It preserves insertion order for display and serialization.
type Catalog struct {
	order []string
	byID  map[string]*models.Product
}

func New() *Catalog {
	return &Catalog{
		byID: make(map[string]*models.Product),
	}
}

func FromProducts(products []*models.Product) *Catalog {
	c := New()
	for _, p := range products {
		c.Add(p)
	}

	return c
}

// Add inserts or replaces a product. A replaced product keeps its original
// position in the ordering.
func (c *Catalog) Add(p *models.Product) {
	if _, exists := c.byID[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}

	c.byID[p.ID] = p
}

func (c *Catalog) Get(id string) (*models.Product, bool) {
	p, ok := c.byID[id]

	return p, ok
}

func (c *Catalog) Len() int {
	return len(c.order)
}

func (c *Catalog) Products() []*models.Product {
	products := make([]*models.Product, 0, len(c.order))
	for _, id := range c.order {
		products = append(products, c.byID[id])
	}

	return products
}

// DecreaseStock reserves amount units of a product. It returns false without
// mutating when the product is unknown or 0 < amount <= stock does not hold.
func (c *Catalog) DecreaseStock(id string, amount int) bool {
	p, ok := c.byID[id]
	if !ok {
		return false
	}

	return p.DecreaseStock(amount)
}

// IncreaseStock releases amount units back to a product. Unknown ids and
// non-positive amounts are a no-op.
func (c *Catalog) IncreaseStock(id string, amount int) {
	if p, ok := c.byID[id]; ok {
		p.IncreaseStock(amount)
	}
}
