package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tungshoop/tungcart/internal/errors"
	"github.com/tungshoop/tungcart/internal/export"
	"github.com/tungshoop/tungcart/internal/models"
	service "github.com/tungshoop/tungcart/internal/services"
	"github.com/tungshoop/tungcart/internal/utils/response"
)

type ExportHandler struct {
	cartService *service.CartService
	exporter    *export.Exporter
	validator   *validator.Validate
}

func NewExportHandler(cartService *service.CartService, exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{
		cartService: cartService,
		exporter:    exporter,
		validator:   validator.New(),
	}
}

func (h *ExportHandler) Export() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ExportRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		snapshot := h.cartService.Snapshot()
		if snapshot.Empty() {
			response.Error(w, errors.ValidationError("Cart is empty, nothing to export"))

			return
		}

		path, err := h.exporter.Export(snapshot, req.Format, req.Filename)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"path": path, "format": req.Format})
	}
}
