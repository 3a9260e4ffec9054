package purpose

import (
	"time"

	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
)

type costResponse struct {
	ID       int64   `json:"id"`
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

type stageResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Priority       int     `json:"priority"`
	Value          *string `json:"value"`
	CompletionDate *string `json:"completion_date"`
}

type purchaseResponse struct {
	ID                   int64           `json:"id"`
	EmfID                string          `json:"emf_id"`
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

type purposeResponse struct {
	ID               int64              `json:"id"`
	HierarchyID      *int64             `json:"hierarchy_id"`
	ExpectedDelivery *string            `json:"expected_delivery"`
	LastModified     time.Time          `json:"last_modified"`
	Comments         *string            `json:"comments"`
	Status           string             `json:"status"`
	CreationTime     time.Time          `json:"creation_time"`
	Supplier         *string            `json:"supplier"`
	Content          *string            `json:"content"`
	Description      *string            `json:"description"`
	ServiceType      *string            `json:"service_type"`
	IsFlagged        bool               `json:"is_flagged"`
	Purchases        []purchaseResponse `json:"purchases"`
	FileIDs          []int64            `json:"file_ids"`
}

type statusChangeResponse struct {
	ID             int64     `json:"id"`
	PurposeID      int64     `json:"purpose_id"`
	PreviousStatus *string   `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangedAt      time.Time `json:"changed_at"`
	ChangedBy      *string   `json:"changed_by"`
}

// Date columns travel as plain YYYY-MM-DD strings; timestamps keep the
// full RFC 3339 form.
func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}

	return new(t.Format(time.DateOnly))
}

func toStageResponse(s purchase.Stage) stageResponse {
	return stageResponse{
		ID:             s.ID,
		Name:           s.Name,
		Priority:       s.Priority,
		Value:          s.Value,
		CompletionDate: dateString(s.CompletionDate),
	}
}

func toCostResponse(c purchase.Cost) costResponse {
	return costResponse{
		ID:       c.ID,
		Currency: string(c.Currency),
		Amount:   c.Amount,
	}
}

func toPurchaseResponse(p purchase.Purchase) purchaseResponse {
	stages := make([]stageResponse, 0, len(p.Stages))
	for _, s := range p.Stages {
		stages = append(stages, toStageResponse(s))
	}

	costs := make([]costResponse, 0, len(p.Costs))
	for _, c := range p.Costs {
		costs = append(costs, toCostResponse(c))
	}

	return purchaseResponse{
		ID:                   p.ID,
		EmfID:                p.EmfID,
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

func toResponse(p *purpose.Purpose) purposeResponse {
	purchases := make([]purchaseResponse, 0, len(p.Purchases))
	for _, pc := range p.Purchases {
		purchases = append(purchases, toPurchaseResponse(pc))
	}

	fileIDs := p.FileIDs
	if fileIDs == nil {
		fileIDs = []int64{}
	}

	return purposeResponse{
		ID:               p.ID,
		HierarchyID:      p.HierarchyID,
		ExpectedDelivery: dateString(p.ExpectedDelivery),
		LastModified:     p.LastModified,
		Comments:         p.Comments,
		Status:           string(p.Status),
		CreationTime:     p.CreationTime,
		Supplier:         p.Supplier,
		Content:          p.Content,
		Description:      p.Description,
		ServiceType:      p.ServiceType,
		IsFlagged:        p.IsFlagged,
		Purchases:        purchases,
		FileIDs:          fileIDs,
	}
}

func toResponseList(ps []*purpose.Purpose) []purposeResponse {
	out := make([]purposeResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toResponse(p))
	}

	return out
}

func toStatusChangeResponse(c *purpose.StatusChange) statusChangeResponse {
	var prev *string
	if c.PreviousStatus != nil {
		prev = new(string(*c.PreviousStatus))
	}

	return statusChangeResponse{
		ID:             c.ID,
		PurposeID:      c.PurposeID,
		PreviousStatus: prev,
		NewStatus:      string(c.NewStatus),
		ChangedAt:      c.ChangedAt,
		ChangedBy:      c.ChangedBy,
	}
}

func toStatusChangeList(cs []*purpose.StatusChange) []statusChangeResponse {
	out := make([]statusChangeResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toStatusChangeResponse(c))
	}

	return out
}
