// Package importcsv ingests EMF spreadsheet exports as purposes.
// Rows whose EMF id already exists come back as conflicts for the
// client to resolve and resubmit through the confirm endpoint.
package importcsv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rechesh-io/rechesh/internal/http/respond"
	"github.com/rechesh-io/rechesh/internal/importer"
	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
	"github.com/rechesh-io/rechesh/internal/supplier"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Handler struct {
	importSvc   *importer.Service
	purposeSvc  *purpose.Service
	supplierSvc *supplier.Service
}

func NewHandler(importSvc *importer.Service, purposeSvc *purpose.Service, supplierSvc *supplier.Service) *Handler {
	return &Handler{
		importSvc:   importSvc,
		purposeSvc:  purposeSvc,
		supplierSvc: supplierSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/import_csv", h.importCSV)
	r.Post("/import_csv/confirm", h.confirmImport)
}

type importCostDTO struct {
	Currency string  `json:"currency" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
}

// importRowDTO is one spreadsheet row flattened to a single purchase,
// used both in conflict responses and in confirm requests.
type importRowDTO struct {
	EmfID            string          `json:"emf_id" validate:"required,max=255"`
	Status           string          `json:"status" validate:"required"`
	Description      *string         `json:"description" validate:"omitempty,max=2000"`
	Supplier         *string         `json:"supplier" validate:"omitempty,max=200"`
	ServiceType      *string         `json:"service_type" validate:"omitempty,max=100"`
	ExpectedDelivery *string         `json:"expected_delivery"`
	DemandID         *string         `json:"demand_id"`
	DemandDate       *string         `json:"demand_date"`
	OrderID          *string         `json:"order_id"`
	Costs            []importCostDTO `json:"costs" validate:"dive"`
}

type existingPurposeDTO struct {
	ID          int64   `json:"id"`
	EmfID       string  `json:"emf_id"`
	Status      string  `json:"status"`
	Description *string `json:"description"`
	Supplier    *string `json:"supplier"`
}

type conflictDTO struct {
	Incoming importRowDTO       `json:"incoming"`
	Existing existingPurposeDTO `json:"existing"`
}

type importConflictResponse struct {
	New       []importRowDTO `json:"new"`
	Conflicts []conflictDTO  `json:"conflicts"`
}

type importSuccessResponse struct {
	Imported int     `json:"imported"`
	IDs      []int64 `json:"ids"`
}

type confirmRequest struct {
	Rows []importRowDTO `json:"rows" validate:"required,dive"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond.Detail(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourceEMF
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Import(source, file)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, err.Error())
		return
	}

	h.normalizeSuppliers(r.Context(), rows)

	existing, err := h.findExisting(r.Context(), rows)
	if err != nil {
		respond.Error(w, err)
		return
	}

	var fresh []purpose.Params

	var conflicts []conflictDTO

	for _, row := range rows {
		if ex, ok := existing[rowEmfID(row)]; ok {
			conflicts = append(conflicts, conflictDTO{
				Incoming: toRowDTO(row),
				Existing: toExistingDTO(ex, rowEmfID(row)),
			})

			continue
		}

		fresh = append(fresh, row)
	}

	if len(conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]importRowDTO, 0, len(fresh)),
			Conflicts: conflicts,
		}
		for _, row := range fresh {
			resp.New = append(resp.New, toRowDTO(row))
		}

		respond.JSON(w, http.StatusConflict, resp)

		return
	}

	h.createAll(w, r, fresh)
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, err)
		return
	}

	rows := make([]purpose.Params, 0, len(req.Rows))
	for _, dto := range req.Rows {
		params, err := toParams(dto)
		if err != nil {
			respond.Error(w, err)
			return
		}

		rows = append(rows, params)
	}

	h.createAll(w, r, rows)
}

// createAll inserts rows one by one. A failure mid-way leaves the rows
// before it in place; re-running the import reports those as conflicts
// and only the rest as new.
func (h *Handler) createAll(w http.ResponseWriter, r *http.Request, rows []purpose.Params) {
	ids := make([]int64, 0, len(rows))

	for _, row := range rows {
		p, err := h.purposeSvc.Create(r.Context(), row)
		if err != nil {
			respond.Error(w, err)
			return
		}

		ids = append(ids, p.ID)
	}

	respond.JSON(w, http.StatusCreated, importSuccessResponse{Imported: len(ids), IDs: ids})
}

// normalizeSuppliers replaces raw supplier strings with their learned
// canonical names. Lookup failures leave the raw value in place.
func (h *Handler) normalizeSuppliers(ctx context.Context, rows []purpose.Params) {
	for i, row := range rows {
		if row.Supplier == nil {
			continue
		}

		canonical, err := h.supplierSvc.Canonical(ctx, *row.Supplier)
		if err != nil || canonical == "" {
			continue
		}

		rows[i].Supplier = &canonical
	}
}

// findExisting maps each incoming EMF id to the purpose that already
// owns it, if any.
func (h *Handler) findExisting(ctx context.Context, rows []purpose.Params) (map[string]*purpose.Purpose, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := rowEmfID(row); id != "" {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return nil, nil
	}

	q := purpose.DefaultQuery()
	q.Filter.EmfIDs = ids

	matches, err := h.purposeSvc.ListAll(ctx, q)
	if err != nil {
		return nil, err
	}

	byEmf := make(map[string]*purpose.Purpose)
	for _, p := range matches {
		for _, pc := range p.Purchases {
			byEmf[pc.EmfID] = p
		}
	}

	return byEmf, nil
}

func rowEmfID(p purpose.Params) string {
	if len(p.Purchases) == 0 {
		return ""
	}

	return p.Purchases[0].EmfID
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}

	return new(t.Format(time.DateOnly))
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

func toRowDTO(p purpose.Params) importRowDTO {
	dto := importRowDTO{
		Status:           string(p.Status),
		Description:      p.Description,
		Supplier:         p.Supplier,
		ServiceType:      p.ServiceType,
		ExpectedDelivery: dateString(p.ExpectedDelivery),
	}

	if len(p.Purchases) > 0 {
		pc := p.Purchases[0]
		dto.EmfID = pc.EmfID
		dto.DemandID = pc.DemandID
		dto.DemandDate = dateString(pc.DemandCreationDate)
		dto.OrderID = pc.OrderID

		for _, c := range pc.Costs {
			dto.Costs = append(dto.Costs, importCostDTO{Currency: string(c.Currency), Amount: c.Amount})
		}
	}

	return dto
}

func toExistingDTO(p *purpose.Purpose, emfID string) existingPurposeDTO {
	return existingPurposeDTO{
		ID:          p.ID,
		EmfID:       emfID,
		Status:      string(p.Status),
		Description: p.Description,
		Supplier:    p.Supplier,
	}
}

func toParams(dto importRowDTO) (purpose.Params, error) {
	status, err := purpose.ParseStatus(dto.Status)
	if err != nil {
		return purpose.Params{}, err
	}

	delivery, err := parseDate("expected_delivery", dto.ExpectedDelivery)
	if err != nil {
		return purpose.Params{}, err
	}

	demandDate, err := parseDate("demand_date", dto.DemandDate)
	if err != nil {
		return purpose.Params{}, err
	}

	pc := purchase.Params{
		EmfID:              dto.EmfID,
		DemandID:           dto.DemandID,
		DemandCreationDate: demandDate,
		OrderID:            dto.OrderID,
	}

	for _, c := range dto.Costs {
		currency, err := purchase.ParseCurrency(c.Currency)
		if err != nil {
			return purpose.Params{}, err
		}

		pc.Costs = append(pc.Costs, purchase.CostParams{Currency: currency, Amount: c.Amount})
	}

	return purpose.Params{
		Status:           status,
		Description:      dto.Description,
		Supplier:         dto.Supplier,
		ServiceType:      dto.ServiceType,
		ExpectedDelivery: delivery,
		Purchases:        []purchase.Params{pc},
	}, nil
}
