package purpose

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rechesh-io/rechesh/internal/purpose"
)

// ParseQuery turns listing query parameters into a validated Query.
// Unknown keys are rejected rather than ignored. page and page_size are
// accepted here even though the pagination layer parses them, so both
// parsers can walk the same url.Values.
func ParseQuery(values url.Values) (purpose.Query, error) {
	q := purpose.DefaultQuery()

	for key, raws := range values {
		switch key {
		case "hierarchy_id":
			for _, raw := range raws {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return purpose.Query{}, fmt.Errorf("%w: hierarchy_id %q", purpose.ErrInvalidFilterValue, raw)
				}
				q.Filter.HierarchyIDs = append(q.Filter.HierarchyIDs, id)
			}
		case "emf_id":
			q.Filter.EmfIDs = append(q.Filter.EmfIDs, raws...)
		case "supplier":
			q.Filter.Suppliers = append(q.Filter.Suppliers, raws...)
		case "service_type":
			q.Filter.ServiceTypes = append(q.Filter.ServiceTypes, raws...)
		case "status":
			for _, raw := range raws {
				st, err := purpose.ParseStatus(raw)
				if err != nil {
					return purpose.Query{}, fmt.Errorf("%w: status %q", purpose.ErrInvalidFilterValue, raw)
				}
				q.Filter.Statuses = append(q.Filter.Statuses, st)
			}
		case "is_flagged":
			flagged, err := strconv.ParseBool(values.Get(key))
			if err != nil {
				return purpose.Query{}, fmt.Errorf("%w: is_flagged %q", purpose.ErrInvalidFilterValue, values.Get(key))
			}
			q.Filter.IsFlagged = &flagged
		case "start_date":
			t, err := time.Parse(time.DateOnly, values.Get(key))
			if err != nil {
				return purpose.Query{}, fmt.Errorf("%w: start_date %q", purpose.ErrInvalidFilterValue, values.Get(key))
			}
			q.Filter.StartDate = &t
		case "end_date":
			t, err := time.Parse(time.DateOnly, values.Get(key))
			if err != nil {
				return purpose.Query{}, fmt.Errorf("%w: end_date %q", purpose.ErrInvalidFilterValue, values.Get(key))
			}
			q.Filter.EndDate = &t
		case "search":
			for _, raw := range raws {
				q.SearchTerms = append(q.SearchTerms, strings.Fields(raw)...)
			}
		case "sort_by":
			field, err := purpose.ParseSortField(values.Get(key))
			if err != nil {
				return purpose.Query{}, err
			}
			q.SortBy = field
		case "sort_order":
			order, err := purpose.ParseSortOrder(values.Get(key))
			if err != nil {
				return purpose.Query{}, err
			}
			q.SortOrder = order
		case "page", "page_size":
		default:
			return purpose.Query{}, fmt.Errorf("%w: %q", purpose.ErrInvalidFilterKey, key)
		}
	}

	if err := q.Validate(); err != nil {
		return purpose.Query{}, err
	}

	return q, nil
}
