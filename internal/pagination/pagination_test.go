package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		pageStr     string
		pageSizeStr string
		want        Params
		wantErr     error
	}{
		{
			name: "defaults when both empty",
			want: Params{Page: 1, PageSize: 20},
		},
		{
			name:        "explicit values",
			pageStr:     "3",
			pageSizeStr: "50",
			want:        Params{Page: 3, PageSize: 50},
		},
		{
			name:        "page size above max is clamped",
			pageSizeStr: "500",
			want:        Params{Page: 1, PageSize: 100},
		},
		{
			name:    "zero page rejected",
			pageStr: "0",
			wantErr: ErrInvalidPage,
		},
		{
			name:    "negative page rejected",
			pageStr: "-2",
			wantErr: ErrInvalidPage,
		},
		{
			name:    "non numeric page rejected",
			pageStr: "abc",
			wantErr: ErrInvalidPage,
		},
		{
			name:        "zero page size rejected",
			pageSizeStr: "0",
			wantErr:     ErrInvalidPageSize,
		},
		{
			name:        "non numeric page size rejected",
			pageSizeStr: "ten",
			wantErr:     ErrInvalidPageSize,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.pageStr, tc.pageSizeStr)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParamsOffset(t *testing.T) {
	p := Params{Page: 3, PageSize: 20}

	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())
}

func TestNewPage(t *testing.T) {
	items := []string{"a", "b"}

	page := NewPage(items, 41, Params{Page: 2, PageSize: 20})

	assert.Equal(t, items, page.Items)
	assert.Equal(t, int64(41), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage[string](nil, 0, Params{Page: 1, PageSize: 20})

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}
