package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/dwikikusuma/kasir-pos/internal/catalog/app"
	"github.com/dwikikusuma/kasir-pos/internal/catalog/domain"
	"github.com/dwikikusuma/kasir-pos/pkg/httpx"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes serves reads publicly; catalog writes and the export sit
// behind the given auth middleware.
func (h *Handler) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/products", h.searchProducts)
	r.With(auth).Post("/products", h.createProduct)
	r.With(auth).Get("/products/export", h.exportProducts)
	r.Get("/products/{id}", h.getProduct)
	return r
}

type productDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Description string `json:"description,omitempty"`
	Currency    string `json:"currency"`
	UnitPrice   string `json:"unit_price"`
	StockOnHand int    `json:"stock_on_hand"`
}

func toDTO(p domain.Product) productDTO {
	return productDTO{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Currency:    p.Price.Currency,
		UnitPrice:   p.Price.Amount.StringFixed(2),
		StockOnHand: p.StockOnHand,
	}
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.svc.SearchProducts(r.Context(), r.URL.Query().Get("query"), limit)
	if err != nil {
		respondErr(w, err)
		return
	}

	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toDTO(p))
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]any{"products": out})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, toDTO(p))
}

type createProductRequest struct {
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	Currency    string          `json:"currency"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	StockOnHand int             `json:"stock_on_hand"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	p, err := h.svc.CreateProduct(r.Context(), req.Name, req.SKU, req.Description, req.Currency, req.UnitPrice, req.StockOnHand)
	if err != nil {
		respondErr(w, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, toDTO(p))
}

func (h *Handler) exportProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.AllProducts(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "INTERNAL", "unable to build sheet")
		return
	}

	headerRow := sheet.AddRow()
	for _, name := range []string{"ID", "Name", "SKU", "Description", "Currency", "UnitPrice", "StockOnHand", "UpdatedAt"} {
		headerRow.AddCell().SetValue(name)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.SKU)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price.Currency)
		row.AddCell().SetValue(p.Price.Amount.StringFixed(2))
		row.AddCell().SetValue(p.StockOnHand)
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(w); err != nil {
		// Headers are gone at this point; nothing useful left to send.
		return
	}
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, app.ErrNotFound):
		httpx.RespondError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error())
	default:
		httpx.RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
