package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikikusuma/kasir-pos/internal/customer/app"
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
	r.Get("/", h.listCustomers)
	return r
}

type customerDTO struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	out := make([]customerDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, customerDTO{ID: c.ID, Label: c.Label})
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]any{"customers": out})
}
