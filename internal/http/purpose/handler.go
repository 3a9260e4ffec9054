package purpose

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rechesh-io/rechesh/internal/attachment"
	"github.com/rechesh-io/rechesh/internal/http/respond"
	"github.com/rechesh-io/rechesh/internal/pagination"
	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Handler struct {
	svc         *purpose.Service
	attachments *attachment.Service
}

func NewHandler(svc *purpose.Service, attachments *attachment.Service) *Handler {
	return &Handler{svc: svc, attachments: attachments}
}

func (h *Handler) Routes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/status-history", h.statusHistory)

	r.Group(func(r chi.Router) {
		r.Use(admin)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
		r.Post("/{id}/flag", h.setFlag)
		r.Post("/{id}/files", h.uploadFile)
		r.Delete("/{id}/files/{fileID}", h.detachFile)
	})
}

type costRequest struct {
	ID       *int64  `json:"id"`
	Currency string  `json:"currency" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
}

type stageRequest struct {
	ID             *int64  `json:"id"`
	Name           string  `json:"name" validate:"required"`
	Priority       int     `json:"priority"`
	Value          *string `json:"value" validate:"omitempty,max=255"`
	CompletionDate *string `json:"completion_date"`
}

type purchaseRequest struct {
	ID                   *int64         `json:"id"`
	EmfID                string         `json:"emf_id" validate:"required,max=255"`
	OrderID              *string        `json:"order_id"`
	OrderCreationDate    *string        `json:"order_creation_date"`
	DemandID             *string        `json:"demand_id"`
	DemandCreationDate   *string        `json:"demand_creation_date"`
	BikushitID           *string        `json:"bikushit_id"`
	BikushitCreationDate *string        `json:"bikushit_creation_date"`
	Stages               []stageRequest `json:"stages" validate:"dive"`
	Costs                []costRequest  `json:"costs" validate:"dive"`
}

// purposeRequest is the aggregate payload shared by create and update:
// both replace the full desired state.
type purposeRequest struct {
	HierarchyID      *int64            `json:"hierarchy_id"`
	ExpectedDelivery *string           `json:"expected_delivery"`
	Comments         *string           `json:"comments" validate:"omitempty,max=1000"`
	Status           string            `json:"status" validate:"required"`
	Supplier         *string           `json:"supplier" validate:"omitempty,max=200"`
	Content          *string           `json:"content" validate:"omitempty,max=2000"`
	Description      *string           `json:"description" validate:"omitempty,max=2000"`
	ServiceType      *string           `json:"service_type" validate:"omitempty,max=100"`
	IsFlagged        bool              `json:"is_flagged"`
	Purchases        []purchaseRequest `json:"purchases" validate:"dive"`
	FileIDs          []int64           `json:"file_ids"`
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", respond.ErrInvalidDate, field, *s)
	}

	return &t, nil
}

func toPurchaseParams(req purchaseRequest) (purchase.Params, error) {
	orderDate, err := parseDate("order_creation_date", req.OrderCreationDate)
	if err != nil {
		return purchase.Params{}, err
	}

	demandDate, err := parseDate("demand_creation_date", req.DemandCreationDate)
	if err != nil {
		return purchase.Params{}, err
	}

	bikushitDate, err := parseDate("bikushit_creation_date", req.BikushitCreationDate)
	if err != nil {
		return purchase.Params{}, err
	}

	stages := make([]purchase.StageParams, 0, len(req.Stages))
	for _, sr := range req.Stages {
		completion, err := parseDate("completion_date", sr.CompletionDate)
		if err != nil {
			return purchase.Params{}, err
		}

		stages = append(stages, purchase.StageParams{
			ID:             sr.ID,
			Name:           sr.Name,
			Priority:       sr.Priority,
			Value:          sr.Value,
			CompletionDate: completion,
		})
	}

	costs := make([]purchase.CostParams, 0, len(req.Costs))
	for _, cr := range req.Costs {
		currency, err := purchase.ParseCurrency(cr.Currency)
		if err != nil {
			return purchase.Params{}, err
		}

		costs = append(costs, purchase.CostParams{
			ID:       cr.ID,
			Currency: currency,
			Amount:   cr.Amount,
		})
	}

	return purchase.Params{
		ID:                   req.ID,
		EmfID:                req.EmfID,
		OrderID:              req.OrderID,
		OrderCreationDate:    orderDate,
		DemandID:             req.DemandID,
		DemandCreationDate:   demandDate,
		BikushitID:           req.BikushitID,
		BikushitCreationDate: bikushitDate,
		Stages:               stages,
		Costs:                costs,
	}, nil
}

func toParams(req purposeRequest) (purpose.Params, error) {
	status, err := purpose.ParseStatus(req.Status)
	if err != nil {
		return purpose.Params{}, err
	}

	expectedDelivery, err := parseDate("expected_delivery", req.ExpectedDelivery)
	if err != nil {
		return purpose.Params{}, err
	}

	purchases := make([]purchase.Params, 0, len(req.Purchases))
	for _, pr := range req.Purchases {
		pp, err := toPurchaseParams(pr)
		if err != nil {
			return purpose.Params{}, err
		}
		purchases = append(purchases, pp)
	}

	return purpose.Params{
		HierarchyID:      req.HierarchyID,
		ExpectedDelivery: expectedDelivery,
		Comments:         req.Comments,
		Status:           status,
		Supplier:         req.Supplier,
		Content:          req.Content,
		Description:      req.Description,
		ServiceType:      req.ServiceType,
		IsFlagged:        req.IsFlagged,
		Purchases:        purchases,
		FileIDs:          req.FileIDs,
	}, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	page, err := pagination.Parse(values.Get("page"), values.Get("page_size"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	q, err := ParseQuery(values)
	if err != nil {
		respond.Error(w, err)
		return
	}

	items, total, err := h.svc.List(r.Context(), q, page)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, pagination.NewPage(toResponseList(items), total, page))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req purposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, err)
		return
	}

	params, err := toParams(req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	p, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req purposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, err)
		return
	}

	params, err := toParams(req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	p, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
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

type flagRequest struct {
	IsFlagged bool `json:"is_flagged"`
}

func (h *Handler) setFlag(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req flagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SetFlag(r.Context(), id, req.IsFlagged); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) statusHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	changes, err := h.svc.StatusHistory(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toStatusChangeList(changes))
}

type fileResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	purposeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond.Detail(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	// Resolve the purpose before storing anything so a bad id cannot
	// leave an orphaned blob behind.
	if _, err := h.svc.Get(r.Context(), purposeID); err != nil {
		respond.Error(w, err)
		return
	}

	uploaded, err := h.attachments.Upload(r.Context(), attachment.UploadParams{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.svc.AttachFile(r.Context(), purposeID, uploaded.ID); err != nil {
		if delErr := h.attachments.Delete(r.Context(), uploaded.ID); delErr != nil {
			slog.Warn("failed to remove file after attach error",
				"file_id", uploaded.ID, "error", delErr)
		}
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, fileResponse{
		ID:          uploaded.ID,
		Name:        uploaded.Name,
		ContentType: uploaded.ContentType,
		Size:        uploaded.Size,
		UploadedAt:  uploaded.UploadedAt,
	})
}

func (h *Handler) detachFile(w http.ResponseWriter, r *http.Request) {
	purposeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	fileID, err := strconv.ParseInt(chi.URLParam(r, "fileID"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid file id")
		return
	}

	if err := h.svc.DetachFile(r.Context(), purposeID, fileID); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
