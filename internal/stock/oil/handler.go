package oil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/speedbike/speedbike/internal/platform/httpx"
	"github.com/speedbike/speedbike/internal/stock"
)

// Handler manages oil stock endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers oil stock routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stock", h.stockLevels)
	r.Get("/purchases", h.listPurchases)
	r.Post("/purchases", h.createPurchase)
	r.Delete("/purchases/{id}", h.deletePurchase)
	r.Get("/sales", h.listSales)
	r.Post("/sales", h.createSale)
	r.Delete("/sales/{id}", h.deleteSale)
}

func (h *Handler) stockLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.service.StockLevels(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, levels)
}

func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListPurchases(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListSales(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var in PurchaseInput
	if !h.decode(w, r, &in) {
		return
	}
	m, err := h.service.CreatePurchase(r.Context(), in)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var in SaleInput
	if !h.decode(w, r, &in) {
		return
	}
	m, err := h.service.CreateSale(r.Context(), in)
	if err != nil {
		if errors.Is(err, stock.ErrInsufficientStock) {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		h.fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

func (h *Handler) deletePurchase(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeletePurchase)
}

func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteSale)
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid id")
		return
	}
	if err := fn(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "movement not found")
			return
		}
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, in any) bool {
	if err := httpx.DecodeJSON(r, in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return false
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("oil stock request failed", slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
