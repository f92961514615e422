package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dwikikusuma/kasir-pos/internal/auth"
	cartapp "github.com/dwikikusuma/kasir-pos/internal/cart/app"
	"github.com/dwikikusuma/kasir-pos/internal/sale/app"
	"github.com/dwikikusuma/kasir-pos/internal/sale/domain"
	"github.com/dwikikusuma/kasir-pos/pkg/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// SaleRoutes reads finalized sales.
func (h *Handler) SaleRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listSales)
	r.Get("/{id}", h.getSale)
	return r
}

type saleItemDTO struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	UnitPrice       string `json:"unit_price"`
	Quantity        int    `json:"quantity"`
	DiscountPercent string `json:"discount_percent"`
	TaxPercent      string `json:"tax_percent"`
	LineTotal       string `json:"line_total"`
}

type saleDTO struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customer_id"`
	CashierID     string        `json:"cashier_id,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Status        string        `json:"status"`
	Currency      string        `json:"currency"`
	Subtotal      string        `json:"subtotal"`
	TotalDiscount string        `json:"total_discount"`
	TotalTax      string        `json:"total_tax"`
	GrandTotal    string        `json:"grand_total"`
	Items         []saleItemDTO `json:"items"`
	CreatedAt     string        `json:"created_at"`
}

func toDTO(s domain.Sale) saleDTO {
	items := make([]saleItemDTO, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, saleItemDTO{
			ProductID:       item.ProductID,
			Name:            item.Name,
			SKU:             item.SKU,
			UnitPrice:       item.UnitPrice.StringFixed(2),
			Quantity:        item.Quantity,
			DiscountPercent: item.DiscountPercent.String(),
			TaxPercent:      item.TaxPercent.String(),
			LineTotal:       item.LineTotal.StringFixed(2),
		})
	}

	return saleDTO{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		CashierID:     s.CashierID,
		PaymentMethod: s.PaymentMethod,
		Status:        string(s.Status),
		Currency:      s.Currency,
		Subtotal:      s.Subtotal.StringFixed(2),
		TotalDiscount: s.TotalDiscount.StringFixed(2),
		TotalTax:      s.TotalTax.StringFixed(2),
		GrandTotal:    s.GrandTotal.StringFixed(2),
		Items:         items,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
	Draft         bool   `json:"draft"`
}

// Checkout finalizes the cart named in the URL. Registered on the cart
// router behind the auth middleware; finalized sales carry the cashier
// id.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	sale, err := h.svc.Finalize(r.Context(), app.FinalizeRequest{
		CartID:        chi.URLParam(r, "cartID"),
		CashierID:     auth.CashierID(r.Context()),
		PaymentMethod: req.PaymentMethod,
		Draft:         req.Draft,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, toDTO(sale))
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	sales, err := h.svc.ListSales(r.Context(), limit)
	if err != nil {
		respondErr(w, err)
		return
	}

	out := make([]saleDTO, 0, len(sales))
	for _, s := range sales {
		out = append(out, toDTO(s))
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]any{"sales": out})
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.svc.GetSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, toDTO(sale))
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrEmptyCart):
		httpx.RespondError(w, http.StatusUnprocessableEntity, "EMPTY_CART", err.Error())
	case errors.Is(err, app.ErrMissingCustomer):
		httpx.RespondError(w, http.StatusUnprocessableEntity, "MISSING_CUSTOMER", err.Error())
	case errors.Is(err, app.ErrInsufficientStock):
		httpx.RespondError(w, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, app.ErrNotFound):
		httpx.RespondError(w, http.StatusNotFound, "SALE_NOT_FOUND", err.Error())
	case errors.Is(err, cartapp.ErrCartNotFound):
		httpx.RespondError(w, http.StatusNotFound, "CART_NOT_FOUND", err.Error())
	default:
		httpx.RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
