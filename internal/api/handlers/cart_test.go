package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tungshoop/tungcart/internal/api/handlers"
	"github.com/tungshoop/tungcart/internal/catalog"
	appErrors "github.com/tungshoop/tungcart/internal/errors"
	"github.com/tungshoop/tungcart/internal/export"
	"github.com/tungshoop/tungcart/internal/models"
	repository "github.com/tungshoop/tungcart/internal/repositories"
	service "github.com/tungshoop/tungcart/internal/services"
	"github.com/tungshoop/tungcart/internal/utils/response"
)

func setupCartService(t *testing.T) *service.CartService {
	t.Helper()

	cat := catalog.FromProducts([]*models.Product{
		models.NewPhysicalProduct("P1", "Chair", decimal.NewFromInt(100), 5, decimal.NewFromInt(3), decimal.NewFromInt(20)),
		models.NewDigitalProduct("D1", "E-Book", decimal.NewFromInt(50), 10, "https://example.com/ebook", nil),
	})

	s, err := service.NewCartService(cat, repository.NewCartRepo(filepath.Join(t.TempDir(), "cart.json")), nil)
	require.NoError(t, err)

	return s
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestGetCart(t *testing.T) {
	handler := handlers.NewCartHandler(setupCartService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()

	handler.GetCart()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestAddItemHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		cartService := setupCartService(t)
		handler := handlers.NewCartHandler(cartService)

		body := `{"product_id": "P1", "quantity": 3}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem()(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		assert.Equal(t, 1, cartService.Len())
	})

	t.Run("Unknown Product", func(t *testing.T) {
		handler := handlers.NewCartHandler(setupCartService(t))

		body := `{"product_id": "NOPE", "quantity": 1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.AddItem()(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		handler := handlers.NewCartHandler(setupCartService(t))

		body := `{"product_id": "P1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.AddItem()(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Empty Body", func(t *testing.T) {
		handler := handlers.NewCartHandler(setupCartService(t))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil)
		rec := httptest.NewRecorder()

		handler.AddItem()(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateQuantityHandler(t *testing.T) {
	t.Run("Absent Line", func(t *testing.T) {
		handler := handlers.NewCartHandler(setupCartService(t))

		body := `{"product_id": "P1", "quantity": 2}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.UpdateQuantity()(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRemoveItemHandler(t *testing.T) {
	cartService := setupCartService(t)
	handler := handlers.NewCartHandler(cartService)

	_, err := cartService.AddItem(t.Context(), "P1", 2)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/P1", nil)
	req.SetPathValue("id", "P1")

	rec := httptest.NewRecorder()

	handler.RemoveItem()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, cartService.Len())
}

func TestCheckoutHandler(t *testing.T) {
	cartService := setupCartService(t)
	handler := handlers.NewCartHandler(cartService)

	_, err := cartService.AddItem(t.Context(), "P1", 2)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	rec := httptest.NewRecorder()

	handler.Checkout()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, cartService.Len(), "checkout clears the cart")
}

func TestExportHandler(t *testing.T) {
	t.Run("Empty Cart Is Rejected", func(t *testing.T) {
		handler := handlers.NewExportHandler(setupCartService(t), export.NewExporter(t.TempDir()))

		body := `{"format": "json"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/export", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Export()(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Writes Document", func(t *testing.T) {
		cartService := setupCartService(t)
		dir := t.TempDir()
		handler := handlers.NewExportHandler(cartService, export.NewExporter(dir))

		_, err := cartService.AddItem(t.Context(), "P1", 1)
		require.NoError(t, err)

		body := `{"format": "csv"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/export", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Export()(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		_, err = os.Stat(filepath.Join(dir, "cart.csv"))
		assert.NoError(t, err)
	})

	t.Run("Unsupported Format Fails Validation", func(t *testing.T) {
		handler := handlers.NewExportHandler(setupCartService(t), export.NewExporter(t.TempDir()))

		body := `{"format": "docx"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/export", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Export()(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListProductsHandler(t *testing.T) {
	handler := handlers.NewProductHandler(setupCartService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()

	handler.ListProducts()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	items, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}
