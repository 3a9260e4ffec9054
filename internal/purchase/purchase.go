package purchase

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Currency of a cost line.
type Currency string

const (
	CurrencyILS Currency = "ILS"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

const (
	maxEmfIDLength      = 255
	maxStageValueLength = 255
)

var (
	ErrNotFound         = errors.New("purchase not found")
	ErrStageNotFound    = errors.New("stage not found")
	ErrDuplicateEmfID   = errors.New("emf id already exists")
	ErrNotOwned         = errors.New("purchase does not belong to this purpose")
	ErrStageNotOwned    = errors.New("stage does not belong to this purchase")
	ErrCostNotOwned     = errors.New("cost does not belong to this purchase")
	ErrEmfIDRequired    = errors.New("emf id is required")
	ErrEmfIDTooLong     = errors.New("emf id exceeds 255 characters")
	ErrStageNameMissing = errors.New("stage name is required")
	ErrInvalidStage     = errors.New("stage value exceeds 255 characters")
	ErrInvalidCost      = errors.New("cost must be zero or positive")
	ErrInvalidCurrency  = errors.New("invalid currency")
)

// ParseCurrency validates a raw currency string.
func ParseCurrency(s string) (Currency, error) {
	switch c := Currency(s); c {
	case CurrencyILS, CurrencyUSD, CurrencyEUR:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
}

// Purchase is an EMF record owned by a purpose. The order, demand and
// bikushit pairs track the procurement paperwork as it accumulates.
type Purchase struct {
	ID                   int64
	EmfID                string
	PurposeID            int64
	CreationTime         time.Time
	OrderID              *string
	OrderCreationDate    *time.Time
	DemandID             *string
	DemandCreationDate   *time.Time
	BikushitID           *string
	BikushitCreationDate *time.Time
	Stages               []Stage
	Costs                []Cost
}

// Stage is a step of a purchase flow, ordered by Priority.
type Stage struct {
	ID             int64
	PurchaseID     int64
	Name           string
	Priority       int
	Value          *string
	CompletionDate *time.Time
}

// Cost is a money line on a purchase.
type Cost struct {
	ID         int64
	PurchaseID int64
	Currency   Currency
	Amount     float64
}

// Params describes a purchase inside an aggregate write. A nil ID means
// the purchase is new; a set ID must reference a purchase already owned
// by the purpose being updated.
type Params struct {
	ID                   *int64
	EmfID                string
	OrderID              *string
	OrderCreationDate    *time.Time
	DemandID             *string
	DemandCreationDate   *time.Time
	BikushitID           *string
	BikushitCreationDate *time.Time
	Stages               []StageParams
	Costs                []CostParams
}

type StageParams struct {
	ID             *int64
	Name           string
	Priority       int
	Value          *string
	CompletionDate *time.Time
}

type CostParams struct {
	ID       *int64
	Currency Currency
	Amount   float64
}

func (p Params) Validate() error {
	if strings.TrimSpace(p.EmfID) == "" {
		return ErrEmfIDRequired
	}

	if len([]rune(p.EmfID)) > maxEmfIDLength {
		return ErrEmfIDTooLong
	}

	for _, st := range p.Stages {
		if err := st.Validate(); err != nil {
			return err
		}
	}

	for _, c := range p.Costs {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (p StageParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrStageNameMissing
	}

	if p.Value != nil && len([]rune(*p.Value)) > maxStageValueLength {
		return ErrInvalidStage
	}

	return nil
}

func (p CostParams) Validate() error {
	if _, err := ParseCurrency(string(p.Currency)); err != nil {
		return err
	}

	if p.Amount < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidCost, p.Amount)
	}

	return nil
}
