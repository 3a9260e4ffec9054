package purpose

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidFilterKey   = errors.New("unknown filter key")
	ErrInvalidFilterValue = errors.New("invalid filter value")
	ErrInvalidSortField   = errors.New("unknown sort field")
	ErrInvalidSortOrder   = errors.New("sort order must be asc or desc")
	ErrInvalidDateRange   = errors.New("start_date must not be after end_date")
)

type SortField string

const (
	SortCreationTime     SortField = "creation_time"
	SortLastModified     SortField = "last_modified"
	SortExpectedDelivery SortField = "expected_delivery"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortCreationTime, SortLastModified, SortExpectedDelivery:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortField, s)
	}
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case SortAsc, SortDesc:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
	}
}

// Filter narrows a purpose listing. Values within one field are OR'd,
// separate fields are AND'd. HierarchyIDs match the nodes themselves
// plus all of their descendants.
type Filter struct {
	HierarchyIDs []int64
	EmfIDs       []string
	Suppliers    []string
	ServiceTypes []string
	Statuses     []Status
	IsFlagged    *bool
	StartDate    *time.Time
	EndDate      *time.Time
}

// Query is a validated listing request. SearchTerms are AND'd; each
// term must match description, content or an owned purchase's emf id,
// case-insensitively.
type Query struct {
	Filter      Filter
	SearchTerms []string
	SortBy      SortField
	SortOrder   SortOrder
}

func DefaultQuery() Query {
	return Query{SortBy: SortCreationTime, SortOrder: SortDesc}
}

// Validate is the backstop for callers that build a Query directly
// instead of going through the HTTP parameter parsing.
func (q Query) Validate() error {
	if _, err := ParseSortField(string(q.SortBy)); err != nil {
		return err
	}

	if _, err := ParseSortOrder(string(q.SortOrder)); err != nil {
		return err
	}

	for _, st := range q.Filter.Statuses {
		if _, err := ParseStatus(string(st)); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidFilterValue, st)
		}
	}

	if q.Filter.StartDate != nil && q.Filter.EndDate != nil &&
		q.Filter.StartDate.After(*q.Filter.EndDate) {
		return ErrInvalidDateRange
	}

	return nil
}
