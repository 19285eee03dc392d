package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finplan/internal/export"
	"github.com/MrJamesThe3rd/finplan/internal/http/auth"
	"github.com/MrJamesThe3rd/finplan/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes is mounted under /plans.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}/export", h.download)
	r.Get("/{id}/summary", h.summary)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.prepare(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteArchive(&buf, doc); err != nil {
		slog.Error("failed to create zip", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"plan_%s.zip\"", doc.Snapshot.Plan.ID))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write zip", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.prepare(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(export.GenerateSummary(doc))); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
}

func (h *Handler) prepare(w http.ResponseWriter, r *http.Request) (*export.Document, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	owner, _ := auth.OwnerID(r.Context())

	doc, err := h.svc.Prepare(r.Context(), owner, id)
	if err != nil {
		respond.Error(w, err)
		return nil, false
	}

	return doc, true
}
