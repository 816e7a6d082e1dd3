package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tungshoop/tungcart/internal/api/middleware"
	"github.com/tungshoop/tungcart/internal/models"
	service "github.com/tungshoop/tungcart/internal/services"
	"github.com/tungshoop/tungcart/internal/utils/response"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AddItemRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		if ok, err := h.cartService.AddItem(r.Context(), req.ProductID, req.Quantity); !ok {
			logger.Warn("Add item rejected", "product_id", req.ProductID, "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateQuantityRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		if ok, err := h.cartService.UpdateQuantity(r.Context(), req.ProductID, req.Quantity); !ok {
			logger.Warn("Quantity update rejected", "product_id", req.ProductID, "error", err.Error())
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := r.PathValue("id")
		if productID == "" {
			response.WriteJson(w, http.StatusBadRequest, "Product ID is required")

			return
		}

		if ok, err := h.cartService.RemoveItem(r.Context(), productID); !ok {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, err := h.cartService.ClearCart(r.Context()); !ok {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}

// Checkout returns the purchased contents and unconditionally clears the
// cart. There is no confirmation step.
func (h *CartHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := h.cartService.Checkout(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, snapshot)
	}
}
