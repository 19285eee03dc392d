package lender

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finplan/internal/http/respond"
	"github.com/MrJamesThe3rd/finplan/internal/lender"
)

type Handler struct {
	svc *lender.Service
}

func NewHandler(svc *lender.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.register)
}

type lenderResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	lenders, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]lenderResponse, len(lenders))
	for i, l := range lenders {
		resp[i] = lenderResponse{ID: l.ID, DisplayName: l.DisplayName, CreatedAt: l.CreatedAt}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type registerRequest struct {
	ID          string `json:"id" validate:"required,max=64"`
	DisplayName string `json:"display_name" validate:"required,max=128"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.Register(r.Context(), req.ID, req.DisplayName); err != nil {
		if errors.Is(err, lender.ErrInvalidLender) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		respond.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}
