package models

import (
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

type ProductKind string

const (
	KindGeneric  ProductKind = "generic"
	KindPhysical ProductKind = "physical"
	KindDigital  ProductKind = "digital"
)

// Descriptor defaults when the store omits the field.
var (
	DefaultPhysicalShipping = decimal.NewFromInt(999)
	DefaultPhysicalWeight   = decimal.NewFromInt(1)
)

// KeyFunc produces a license key for a digital product. Kept pluggable so
// tests can inject a fixed sequence.
type KeyFunc func() string

const licenseKeyCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateLicenseKey() string {
	key := make([]byte, 12)
	for i := range key {
		key[i] = licenseKeyCharset[rand.IntN(len(licenseKeyCharset))]
	}

	return "KEY-" + string(key)
}

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Kind         ProductKind     `json:"kind"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Stock        int             `json:"stock"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Weight       decimal.Decimal `json:"weight,omitempty"`
	DownloadLink string          `json:"download_link,omitempty"`
	LicenseKey   string          `json:"license_key,omitempty"`
}

func NewProduct(id, name string, price decimal.Decimal, stock int, shipping decimal.Decimal) *Product {
	return &Product{
		ID:           id,
		Name:         name,
		Kind:         KindGeneric,
		UnitPrice:    price,
		Stock:        stock,
		ShippingCost: shipping,
	}
}

func NewPhysicalProduct(id, name string, price decimal.Decimal, stock int, weight, shipping decimal.Decimal) *Product {
	return &Product{
		ID:           id,
		Name:         name,
		Kind:         KindPhysical,
		UnitPrice:    price,
		Stock:        stock,
		ShippingCost: shipping,
		Weight:       weight,
	}
}

// NewDigitalProduct generates the license key once at construction; it stays
// stable for the product's lifetime. Digital goods never carry shipping.
func NewDigitalProduct(id, name string, price decimal.Decimal, stock int, downloadLink string, keyFn KeyFunc) *Product {
	if keyFn == nil {
		keyFn = GenerateLicenseKey
	}

	return &Product{
		ID:           id,
		Name:         name,
		Kind:         KindDigital,
		UnitPrice:    price,
		Stock:        stock,
		ShippingCost: decimal.Zero,
		DownloadLink: downloadLink,
		LicenseKey:   keyFn(),
	}
}

// DecreaseStock reserves amount units. It succeeds only for 0 < amount <= stock
// and never mutates on failure.
func (p *Product) DecreaseStock(amount int) bool {
	if amount > 0 && amount <= p.Stock {
		p.Stock -= amount

		return true
	}

	return false
}

// IncreaseStock returns amount units to the shelf; non-positive amounts are a no-op.
func (p *Product) IncreaseStock(amount int) {
	if amount > 0 {
		p.Stock += amount
	}
}

func (p *Product) DisplayDetails() string {
	base := fmt.Sprintf("[%s] %s | Price: ₺%s | Stock: %d", p.ID, p.Name, p.UnitPrice, p.Stock)

	switch p.Kind {
	case KindPhysical:
		return fmt.Sprintf("%s | Weight: %skg | Shipping: ₺%s", base, p.Weight, p.ShippingCost)
	case KindDigital:
		return fmt.Sprintf("%s | Link: %s", base, p.DownloadLink)
	default:
		return base
	}
}

// ProductDescriptor is the on-disk form of a product. Optional fields are
// pointers so an absent value can fall back to the variant default. The
// license key is write-only output: it is serialized for reference but a
// fresh key is generated on every load.
type ProductDescriptor struct {
	ProductID    string           `json:"product_id"`
	Name         string           `json:"name"`
	Price        decimal.Decimal  `json:"price"`
	Available    int              `json:"quantity_available"`
	ShippingCost *decimal.Decimal `json:"shipping_cost,omitempty"`
	Type         string           `json:"type,omitempty"`
	Weight       *decimal.Decimal `json:"weight,omitempty"`
	DownloadLink string           `json:"download_link,omitempty"`
	LicenseKey   string           `json:"license_key,omitempty"`
}

func (d *ProductDescriptor) ToProduct(keyFn KeyFunc) *Product {
	switch d.Type {
	case string(KindPhysical):
		weight := DefaultPhysicalWeight
		if d.Weight != nil {
			weight = *d.Weight
		}

		shipping := DefaultPhysicalShipping
		if d.ShippingCost != nil {
			shipping = *d.ShippingCost
		}

		return NewPhysicalProduct(d.ProductID, d.Name, d.Price, d.Available, weight, shipping)
	case string(KindDigital):
		return NewDigitalProduct(d.ProductID, d.Name, d.Price, d.Available, d.DownloadLink, keyFn)
	default:
		shipping := decimal.Zero
		if d.ShippingCost != nil {
			shipping = *d.ShippingCost
		}

		return NewProduct(d.ProductID, d.Name, d.Price, d.Available, shipping)
	}
}

func (p *Product) ToDescriptor() *ProductDescriptor {
	shipping := p.ShippingCost
	desc := &ProductDescriptor{
		ProductID:    p.ID,
		Name:         p.Name,
		Price:        p.UnitPrice,
		Available:    p.Stock,
		ShippingCost: &shipping,
	}

	switch p.Kind {
	case KindPhysical:
		weight := p.Weight
		desc.Type = string(KindPhysical)
		desc.Weight = &weight
	case KindDigital:
		desc.Type = string(KindDigital)
		desc.DownloadLink = p.DownloadLink
		desc.LicenseKey = p.LicenseKey
	}

	return desc
}
