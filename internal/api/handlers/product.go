package handlers

import (
	"net/http"

	service "github.com/tungshoop/tungcart/internal/services"
	"github.com/tungshoop/tungcart/internal/utils/response"
)

type ProductHandler struct {
	cartService *service.CartService
}

func NewProductHandler(cartService *service.CartService) *ProductHandler {
	return &ProductHandler{cartService: cartService}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.cartService.Products())
	}
}
