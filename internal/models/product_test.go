package models_test

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tungshoop/tungcart/internal/models"
)

func TestGenerateLicenseKey(t *testing.T) {
	keyPattern := regexp.MustCompile(`^KEY-[A-Z0-9]{12}$`)

	for range 50 {
		assert.Regexp(t, keyPattern, models.GenerateLicenseKey())
	}
}

func TestNewDigitalProduct(t *testing.T) {
	t.Run("Generates Key Once At Creation", func(t *testing.T) {
		// Arrange
		calls := 0
		keyFn := func() string {
			calls++

			return "KEY-AAAAAAAAAAAA"
		}

		// Act
		p := models.NewDigitalProduct("D1", "E-Book", decimal.NewFromInt(50), 10, "https://example.com/ebook", keyFn)

		// Assert
		assert.Equal(t, 1, calls)
		assert.Equal(t, "KEY-AAAAAAAAAAAA", p.LicenseKey)
		assert.Equal(t, models.KindDigital, p.Kind)
		assert.True(t, p.ShippingCost.IsZero(), "digital products never carry shipping")
	})

	t.Run("Defaults To Random Generator", func(t *testing.T) {
		p := models.NewDigitalProduct("D2", "Album", decimal.NewFromInt(20), 5, "https://example.com/album", nil)

		assert.Regexp(t, `^KEY-[A-Z0-9]{12}$`, p.LicenseKey)
	})
}

func TestProductStock(t *testing.T) {
	t.Run("Decrease Within Bounds", func(t *testing.T) {
		p := models.NewProduct("G1", "Mug", decimal.NewFromInt(10), 5, decimal.Zero)

		assert.True(t, p.DecreaseStock(3))
		assert.Equal(t, 2, p.Stock)
	})

	t.Run("Decrease Rejects Zero Negative And Overdraw", func(t *testing.T) {
		p := models.NewProduct("G1", "Mug", decimal.NewFromInt(10), 5, decimal.Zero)

		assert.False(t, p.DecreaseStock(0))
		assert.False(t, p.DecreaseStock(-1))
		assert.False(t, p.DecreaseStock(6))
		assert.Equal(t, 5, p.Stock, "failed decrease must not mutate")
	})

	t.Run("Increase Ignores Non Positive", func(t *testing.T) {
		p := models.NewProduct("G1", "Mug", decimal.NewFromInt(10), 5, decimal.Zero)

		p.IncreaseStock(0)
		p.IncreaseStock(-4)
		assert.Equal(t, 5, p.Stock)

		p.IncreaseStock(2)
		assert.Equal(t, 7, p.Stock)
	})
}

func TestDescriptorDefaults(t *testing.T) {
	t.Run("Physical Without Shipping Gets Sentinel", func(t *testing.T) {
		desc := &models.ProductDescriptor{
			ProductID: "P1",
			Name:      "Chair",
			Price:     decimal.NewFromInt(100),
			Available: 5,
			Type:      "physical",
		}

		p := desc.ToProduct(nil)

		assert.Equal(t, models.KindPhysical, p.Kind)
		assert.True(t, p.ShippingCost.Equal(decimal.NewFromInt(999)))
		assert.True(t, p.Weight.Equal(decimal.NewFromInt(1)))
	})

	t.Run("Generic Without Shipping Defaults To Zero", func(t *testing.T) {
		desc := &models.ProductDescriptor{
			ProductID: "G1",
			Name:      "Sticker",
			Price:     decimal.NewFromInt(5),
			Available: 50,
		}

		p := desc.ToProduct(nil)

		assert.Equal(t, models.KindGeneric, p.Kind)
		assert.True(t, p.ShippingCost.IsZero())
	})

	t.Run("Unknown Type Falls Back To Generic", func(t *testing.T) {
		desc := &models.ProductDescriptor{
			ProductID: "X1",
			Name:      "Mystery",
			Price:     decimal.NewFromInt(1),
			Available: 1,
			Type:      "subscription",
		}

		p := desc.ToProduct(nil)

		assert.Equal(t, models.KindGeneric, p.Kind)
	})

	t.Run("Digital Ignores Persisted License Key", func(t *testing.T) {
		desc := &models.ProductDescriptor{
			ProductID:    "D1",
			Name:         "E-Book",
			Price:        decimal.NewFromInt(50),
			Available:    10,
			Type:         "digital",
			DownloadLink: "https://example.com/ebook",
			LicenseKey:   "KEY-OLDOLDOLDOLD",
		}

		p := desc.ToProduct(func() string { return "KEY-FRESHFRESH12" })

		assert.Equal(t, "KEY-FRESHFRESH12", p.LicenseKey, "license key is write-only output")
	})
}

func TestDescriptorRoundTrip(t *testing.T) {
	weight := decimal.NewFromFloat(2.5)
	shipping := decimal.NewFromInt(20)

	p := models.NewPhysicalProduct("P1", "Chair", decimal.NewFromInt(100), 5, weight, shipping)

	desc := p.ToDescriptor()
	require.NotNil(t, desc.ShippingCost)
	require.NotNil(t, desc.Weight)

	back := desc.ToProduct(nil)

	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, p.Name, back.Name)
	assert.Equal(t, p.Kind, back.Kind)
	assert.Equal(t, p.Stock, back.Stock)
	assert.True(t, p.UnitPrice.Equal(back.UnitPrice))
	assert.True(t, p.ShippingCost.Equal(back.ShippingCost))
	assert.True(t, p.Weight.Equal(back.Weight))
}
