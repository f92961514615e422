package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/kasir-pos/internal/cart/app"
	"github.com/dwikikusuma/kasir-pos/internal/cart/domain"
	"github.com/dwikikusuma/kasir-pos/internal/pricing"
	"github.com/dwikikusuma/kasir-pos/pkg/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.createCart)
	r.Get("/{cartID}", h.getCart)
	r.Delete("/{cartID}", h.discardCart)
	r.Post("/{cartID}/items", h.addItem)
	r.Patch("/{cartID}/items/{productID}", h.updateItem)
	r.Delete("/{cartID}/items/{productID}", h.removeItem)
	r.Put("/{cartID}/customer", h.setCustomer)
	return r
}

type lineDTO struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	UnitPrice       string `json:"unit_price"`
	Quantity        int    `json:"quantity"`
	DiscountPercent string `json:"discount_percent"`
	TaxPercent      string `json:"tax_percent"`
	LineTotal       string `json:"line_total"`
}

type totalsDTO struct {
	Currency      string `json:"currency"`
	Subtotal      string `json:"subtotal"`
	TotalDiscount string `json:"total_discount"`
	TotalTax      string `json:"total_tax"`
	GrandTotal    string `json:"grand_total"`
}

type snapshotDTO struct {
	CartID     string    `json:"cart_id"`
	CustomerID string    `json:"customer_id,omitempty"`
	Lines      []lineDTO `json:"lines"`
	Totals     totalsDTO `json:"totals"`
}

// Amounts render at two decimal places; internal math stays exact.
func toDTO(s domain.Snapshot) snapshotDTO {
	lines := make([]lineDTO, 0, len(s.Lines))
	for _, ln := range s.Lines {
		lines = append(lines, lineDTO{
			ProductID:       ln.ProductID,
			Name:            ln.Name,
			SKU:             ln.SKU,
			UnitPrice:       ln.UnitPrice.Amount.StringFixed(2),
			Quantity:        ln.Quantity,
			DiscountPercent: ln.DiscountPercent.String(),
			TaxPercent:      ln.TaxPercent.String(),
			LineTotal:       ln.LineTotal.Amount.StringFixed(2),
		})
	}

	return snapshotDTO{
		CartID:     s.CartID,
		CustomerID: s.CustomerID,
		Lines:      lines,
		Totals: totalsDTO{
			Currency:      s.Totals.GrandTotal.Currency,
			Subtotal:      s.Totals.Subtotal.Amount.StringFixed(2),
			TotalDiscount: s.Totals.TotalDiscount.Amount.StringFixed(2),
			TotalTax:      s.Totals.TotalTax.Amount.StringFixed(2),
			GrandTotal:    s.Totals.GrandTotal.Amount.StringFixed(2),
		},
	}
}

func (h *Handler) createCart(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.CreateCart(r.Context())
	httpx.RespondJSON(w, http.StatusCreated, toDTO(snap))
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Snapshot(r.Context(), chi.URLParam(r, "cartID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, toDTO(snap))
}

func (h *Handler) discardCart(w http.ResponseWriter, r *http.Request) {
	h.svc.Discard(r.Context(), chi.URLParam(r, "cartID"))
	w.WriteHeader(http.StatusNoContent)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	if req.ProductID == "" {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "product_id is required")
		return
	}

	snap, err := h.svc.AddItem(r.Context(), chi.URLParam(r, "cartID"), req.ProductID)
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, toDTO(snap))
}

// updateItemRequest mutates exactly one field of a line per call.
type updateItemRequest struct {
	Quantity        *int             `json:"quantity"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	TaxPercent      *decimal.Decimal `json:"tax_percent"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	set := 0
	for _, present := range []bool{req.Quantity != nil, req.DiscountPercent != nil, req.TaxPercent != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT",
			"exactly one of quantity, discount_percent, tax_percent must be set")
		return
	}

	cartID := chi.URLParam(r, "cartID")
	productID := chi.URLParam(r, "productID")

	var (
		snap domain.Snapshot
		err  error
	)
	switch {
	case req.Quantity != nil:
		snap, err = h.svc.SetQuantity(r.Context(), cartID, productID, *req.Quantity)
	case req.DiscountPercent != nil:
		snap, err = h.svc.SetDiscountPercent(r.Context(), cartID, productID, *req.DiscountPercent)
	default:
		snap, err = h.svc.SetTaxPercent(r.Context(), cartID, productID, *req.TaxPercent)
	}
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, toDTO(snap))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.RemoveItem(r.Context(), chi.URLParam(r, "cartID"), chi.URLParam(r, "productID"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, toDTO(snap))
}

type setCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

func (h *Handler) setCustomer(w http.ResponseWriter, r *http.Request) {
	var req setCustomerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	snap, err := h.svc.SetCustomer(r.Context(), chi.URLParam(r, "cartID"), req.CustomerID)
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, toDTO(snap))
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrCartNotFound):
		httpx.RespondError(w, http.StatusNotFound, "CART_NOT_FOUND", err.Error())
	case errors.Is(err, app.ErrProductNotFound):
		httpx.RespondError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrLineNotFound):
		httpx.RespondError(w, http.StatusNotFound, "LINE_NOT_FOUND", err.Error())
	case errors.Is(err, pricing.ErrInvalidQuantity):
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_QUANTITY", err.Error())
	case errors.Is(err, pricing.ErrInvalidPercent):
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_PERCENT", err.Error())
	default:
		httpx.RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
