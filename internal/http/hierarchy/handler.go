package hierarchy

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rechesh-io/rechesh/internal/hierarchy"
	"github.com/rechesh-io/rechesh/internal/http/respond"
	"github.com/rechesh-io/rechesh/internal/pagination"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Handler struct {
	svc *hierarchy.Service
}

func NewHandler(svc *hierarchy.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/tree", h.tree)
	r.Get("/{id}", h.get)
	r.Get("/{id}/children", h.children)

	r.Group(func(r chi.Router) {
		r.Use(admin)
		r.Post("/", h.create)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := pagination.Parse(q.Get("page"), q.Get("page_size"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	filter := hierarchy.ListFilter{NameContains: q.Get("name")}

	for _, raw := range q["type"] {
		t, err := hierarchy.ParseType(raw)
		if err != nil {
			respond.Error(w, err)
			return
		}
		filter.Types = append(filter.Types, t)
	}

	if s := q.Get("parent_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			respond.Detail(w, http.StatusBadRequest, "invalid parent_id")
			return
		}
		filter.ParentID = new(id)
	}

	if s := q.Get("root_only"); s != "" {
		rootOnly, err := strconv.ParseBool(s)
		if err != nil {
			respond.Detail(w, http.StatusBadRequest, "invalid root_only")
			return
		}
		filter.RootOnly = rootOnly
	}

	items, total, err := h.svc.List(r.Context(), filter, page)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, pagination.NewPage(toResponseList(items), total, page))
}

func (h *Handler) tree(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.svc.Tree(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toNodeList(nodes))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	node, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(node))
}

func (h *Handler) children(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	children, err := h.svc.Children(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(children))
}

type createHierarchyRequest struct {
	Type     string `json:"type" validate:"required"`
	Name     string `json:"name" validate:"required,max=255"`
	ParentID *int64 `json:"parent_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createHierarchyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, err)
		return
	}

	typ, err := hierarchy.ParseType(req.Type)
	if err != nil {
		respond.Error(w, err)
		return
	}

	node, err := h.svc.Create(r.Context(), hierarchy.CreateParams{
		Type:     typ,
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(node))
}

type updateHierarchyRequest struct {
	Name *string `json:"name" validate:"omitempty,max=255"`
	Type *string `json:"type"`
	// Raw so that an absent parent_id can be told apart from an
	// explicit null, which detaches the node into a root.
	ParentID json.RawMessage `json:"parent_id"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateHierarchyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, err)
		return
	}

	params := hierarchy.UpdateParams{Name: req.Name}
	if req.Type != nil {
		typ, err := hierarchy.ParseType(*req.Type)
		if err != nil {
			respond.Error(w, err)
			return
		}
		params.Type = &typ
	}
	if len(req.ParentID) > 0 {
		params.SetParent = true
		if string(req.ParentID) != "null" {
			var parentID int64
			if err := json.Unmarshal(req.ParentID, &parentID); err != nil {
				respond.Detail(w, http.StatusBadRequest, "invalid parent_id")
				return
			}
			params.ParentID = &parentID
		}
	}

	node, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(node))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
