package purpose_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rechesh-io/rechesh/internal/purpose"
)

func TestQueryValidate(t *testing.T) {
	newYear := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(q *purpose.Query)
		wantErr error
	}{
		{
			name:   "Defaults",
			mutate: func(_ *purpose.Query) {},
		},
		{
			name: "FullQuery",
			mutate: func(q *purpose.Query) {
				q.Filter.Statuses = []purpose.Status{purpose.StatusSigned}
				q.Filter.StartDate = &newYear
				q.Filter.EndDate = &march
				q.SearchTerms = []string{"router"}
				q.SortBy = purpose.SortExpectedDelivery
				q.SortOrder = purpose.SortAsc
			},
		},
		{
			name:    "UnknownSortField",
			mutate:  func(q *purpose.Query) { q.SortBy = "supplier" },
			wantErr: purpose.ErrInvalidSortField,
		},
		{
			name:    "UnknownSortOrder",
			mutate:  func(q *purpose.Query) { q.SortOrder = "descending" },
			wantErr: purpose.ErrInvalidSortOrder,
		},
		{
			name: "UnknownStatus",
			mutate: func(q *purpose.Query) {
				q.Filter.Statuses = []purpose.Status{"CANCELLED"}
			},
			wantErr: purpose.ErrInvalidFilterValue,
		},
		{
			name: "StartAfterEnd",
			mutate: func(q *purpose.Query) {
				q.Filter.StartDate = &march
				q.Filter.EndDate = &newYear
			},
			wantErr: purpose.ErrInvalidDateRange,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := purpose.DefaultQuery()
			tc.mutate(&q)

			err := q.Validate()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestDefaultQuery(t *testing.T) {
	q := purpose.DefaultQuery()

	assert.Equal(t, purpose.SortCreationTime, q.SortBy)
	assert.Equal(t, purpose.SortDesc, q.SortOrder)
}

func TestParseSortField(t *testing.T) {
	f, err := purpose.ParseSortField("last_modified")
	require.NoError(t, err)
	assert.Equal(t, purpose.SortLastModified, f)

	_, err = purpose.ParseSortField("id")
	require.ErrorIs(t, err, purpose.ErrInvalidSortField)
}

func TestParseStatus(t *testing.T) {
	st, err := purpose.ParseStatus("PARTIALLY_SUPPLIED")
	require.NoError(t, err)
	assert.Equal(t, purpose.StatusPartiallySupplied, st)

	_, err = purpose.ParseStatus("in_progress")
	require.ErrorIs(t, err, purpose.ErrInvalidStatus)
}
