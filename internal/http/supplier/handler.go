// Package supplier exposes the learned supplier name mappings.
package supplier

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rechesh-io/rechesh/internal/http/respond"
	"github.com/rechesh-io/rechesh/internal/supplier"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Handler struct {
	svc *supplier.Service
}

func NewHandler(svc *supplier.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Get("/suggest", h.suggest)

	r.Group(func(r chi.Router) {
		r.Use(admin)
		r.Post("/mappings", h.learn)
	})
}

type suggestResponse struct {
	Name      string `json:"name"`
	Canonical string `json:"canonical"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respond.Detail(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	canonical, err := h.svc.Canonical(r.Context(), name)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, suggestResponse{Name: name, Canonical: canonical})
}

type mappingRequest struct {
	Pattern   string `json:"pattern" validate:"required"`
	Canonical string `json:"canonical" validate:"required,max=200"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req mappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.Learn(r.Context(), req.Pattern, req.Canonical); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, req)
}
