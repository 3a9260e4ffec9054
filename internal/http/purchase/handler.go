package purchase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rechesh-io/rechesh/internal/http/respond"
	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Handler serves the standalone purchase and stage routes. Writes that
// span a whole purpose aggregate stay on the purposes handler; these
// routes address one purchase or one stage by id.
type Handler struct {
	svc      *purchase.Service
	purposes *purpose.Service
}

func NewHandler(svc *purchase.Service, purposes *purpose.Service) *Handler {
	return &Handler{svc: svc, purposes: purposes}
}

func (h *Handler) PurchaseRoutes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Get("/{id}", h.getPurchase)

	r.Group(func(r chi.Router) {
		r.Use(admin)
		r.Put("/{id}", h.updatePurchase)
		r.Delete("/{id}", h.deletePurchase)
	})
}

func (h *Handler) StageRoutes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Get("/{id}", h.getStage)

	r.Group(func(r chi.Router) {
		r.Use(admin)
		r.Patch("/{id}", h.updateStage)
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

// purchaseRequest is the full desired state of one purchase. The id in
// the path identifies the purchase; stage and cost ids decide which
// owned rows survive, exactly as in a purpose update.
type purchaseRequest struct {
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

func toParams(req purchaseRequest) (purchase.Params, error) {
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

type costResponse struct {
	ID       int64   `json:"id"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

type stageResponse struct {
	ID             int64   `json:"id"`
	PurchaseID     int64   `json:"purchase_id"`
	Name           string  `json:"name"`
	Priority       int     `json:"priority"`
	Value          *string `json:"value"`
	CompletionDate *string `json:"completion_date"`
}

type purchaseResponse struct {
	ID                   int64           `json:"id"`
	EmfID                string          `json:"emf_id"`
	PurposeID            int64           `json:"purpose_id"`
	CreationTime         time.Time       `json:"creation_time"`
	OrderID              *string         `json:"order_id"`
	OrderCreationDate    *string         `json:"order_creation_date"`
	DemandID             *string         `json:"demand_id"`
	DemandCreationDate   *string         `json:"demand_creation_date"`
	BikushitID           *string         `json:"bikushit_id"`
	BikushitCreationDate *string         `json:"bikushit_creation_date"`
	Stages               []stageResponse `json:"stages"`
	Costs                []costResponse  `json:"costs"`
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}

	return new(t.Format(time.DateOnly))
}

func toStageResponse(s purchase.Stage) stageResponse {
	return stageResponse{
		ID:             s.ID,
		PurchaseID:     s.PurchaseID,
		Name:           s.Name,
		Priority:       s.Priority,
		Value:          s.Value,
		CompletionDate: dateString(s.CompletionDate),
	}
}

func toPurchaseResponse(p *purchase.Purchase) purchaseResponse {
	stages := make([]stageResponse, 0, len(p.Stages))
	for _, s := range p.Stages {
		stages = append(stages, toStageResponse(s))
	}

	costs := make([]costResponse, 0, len(p.Costs))
	for _, c := range p.Costs {
		costs = append(costs, costResponse{ID: c.ID, Currency: string(c.Currency), Amount: c.Amount})
	}

	return purchaseResponse{
		ID:                   p.ID,
		EmfID:                p.EmfID,
		PurposeID:            p.PurposeID,
		CreationTime:         p.CreationTime,
		OrderID:              p.OrderID,
		OrderCreationDate:    dateString(p.OrderCreationDate),
		DemandID:             p.DemandID,
		DemandCreationDate:   dateString(p.DemandCreationDate),
		BikushitID:           p.BikushitID,
		BikushitCreationDate: dateString(p.BikushitCreationDate),
		Stages:               stages,
		Costs:                costs,
	}
}

func (h *Handler) getPurchase(w http.ResponseWriter, r *http.Request) {
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

	respond.JSON(w, http.StatusOK, toPurchaseResponse(p))
}

func (h *Handler) updatePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req purchaseRequest
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

	p, err := h.purposes.UpdatePurchase(r.Context(), id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPurchaseResponse(p))
}

func (h *Handler) deletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.purposes.DeletePurchase(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getStage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	stage, err := h.svc.GetStage(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toStageResponse(*stage))
}

// updateStageRequest keeps raw JSON for both fields so an omitted key,
// an explicit null and a set value stay distinguishable.
type updateStageRequest struct {
	Value          json.RawMessage `json:"value"`
	CompletionDate json.RawMessage `json:"completion_date"`
}

func (h *Handler) updateStage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var params purchase.UpdateStageParams

	if len(req.Value) > 0 {
		params.SetValue = true
		if string(req.Value) != "null" {
			var value string
			if err := json.Unmarshal(req.Value, &value); err != nil {
				respond.Detail(w, http.StatusBadRequest, "invalid value")
				return
			}
			params.Value = &value
		}
	}

	if len(req.CompletionDate) > 0 {
		params.SetCompletionDate = true
		if string(req.CompletionDate) != "null" {
			var raw string
			if err := json.Unmarshal(req.CompletionDate, &raw); err != nil {
				respond.Detail(w, http.StatusBadRequest, "invalid completion_date")
				return
			}
			t, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				respond.Error(w, fmt.Errorf("%w: completion_date %q", respond.ErrInvalidDate, raw))
				return
			}
			params.CompletionDate = &t
		}
	}

	stage, err := h.svc.UpdateStage(r.Context(), id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toStageResponse(*stage))
}
