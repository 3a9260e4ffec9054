package purchase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rechesh-io/rechesh/internal/purchase"
)

func int64Ptr(v int64) *int64 { return &v }

func TestDiffPurchases(t *testing.T) {
	existing := []purchase.Purchase{
		{ID: 1, EmfID: "EMF-1"},
		{ID: 2, EmfID: "EMF-2"},
		{ID: 3, EmfID: "EMF-3"},
	}

	desired := []purchase.Params{
		{ID: int64Ptr(1), EmfID: "EMF-1-renamed"},
		{EmfID: "EMF-4"},
	}

	diff, err := purchase.DiffPurchases(existing, desired)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{2, 3}, diff.ToDelete)
	require.Len(t, diff.ToUpdate, 1)
	assert.Equal(t, "EMF-1-renamed", diff.ToUpdate[0].EmfID)
	require.Len(t, diff.ToCreate, 1)
	assert.Equal(t, "EMF-4", diff.ToCreate[0].EmfID)
}

func TestDiffPurchases_NotOwned(t *testing.T) {
	existing := []purchase.Purchase{{ID: 1, EmfID: "EMF-1"}}

	desired := []purchase.Params{{ID: int64Ptr(42), EmfID: "EMF-42"}}

	_, err := purchase.DiffPurchases(existing, desired)
	require.ErrorIs(t, err, purchase.ErrNotOwned)
}

func TestDiffPurchases_EmptyPayloadDeletesAll(t *testing.T) {
	existing := []purchase.Purchase{
		{ID: 1, EmfID: "EMF-1"},
		{ID: 2, EmfID: "EMF-2"},
	}

	diff, err := purchase.DiffPurchases(existing, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{1, 2}, diff.ToDelete)
	assert.Empty(t, diff.ToUpdate)
	assert.Empty(t, diff.ToCreate)
}

func TestDiffStages(t *testing.T) {
	existing := []purchase.Stage{
		{ID: 10, Name: "Demand", Priority: 1},
		{ID: 11, Name: "Order", Priority: 2},
	}

	val := "done"
	desired := []purchase.StageParams{
		{ID: int64Ptr(11), Name: "Order", Priority: 1, Value: &val},
		{Name: "Delivery", Priority: 2},
	}

	diff, err := purchase.DiffStages(existing, desired)
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, diff.ToDelete)
	require.Len(t, diff.ToUpdate, 1)
	assert.Equal(t, 1, diff.ToUpdate[0].Priority)
	require.Len(t, diff.ToCreate, 1)
	assert.Equal(t, "Delivery", diff.ToCreate[0].Name)
}

func TestDiffStages_NotOwned(t *testing.T) {
	_, err := purchase.DiffStages(nil, []purchase.StageParams{{ID: int64Ptr(5), Name: "Order"}})
	require.ErrorIs(t, err, purchase.ErrStageNotOwned)
}

func TestDiffCosts(t *testing.T) {
	existing := []purchase.Cost{
		{ID: 20, Currency: purchase.CurrencyILS, Amount: 100},
		{ID: 21, Currency: purchase.CurrencyUSD, Amount: 50},
	}

	desired := []purchase.CostParams{
		{ID: int64Ptr(20), Currency: purchase.CurrencyILS, Amount: 150},
		{Currency: purchase.CurrencyEUR, Amount: 75},
	}

	diff, err := purchase.DiffCosts(existing, desired)
	require.NoError(t, err)

	assert.Equal(t, []int64{21}, diff.ToDelete)
	require.Len(t, diff.ToUpdate, 1)
	assert.Equal(t, 150.0, diff.ToUpdate[0].Amount)
	require.Len(t, diff.ToCreate, 1)
	assert.Equal(t, purchase.CurrencyEUR, diff.ToCreate[0].Currency)
}

func TestDiffCosts_NotOwned(t *testing.T) {
	_, err := purchase.DiffCosts(nil, []purchase.CostParams{{ID: int64Ptr(9), Currency: purchase.CurrencyILS}})
	require.ErrorIs(t, err, purchase.ErrCostNotOwned)
}

func TestParamsValidate(t *testing.T) {
	type testCase struct {
		name    string
		params  purchase.Params
		wantErr error
	}

	longVal := make([]rune, 256)
	for i := range longVal {
		longVal[i] = 'x'
	}
	longStr := string(longVal)

	tests := []testCase{
		{
			name: "Valid",
			params: purchase.Params{
				EmfID:  "EMF-100",
				Stages: []purchase.StageParams{{Name: "Demand", Priority: 1}},
				Costs:  []purchase.CostParams{{Currency: purchase.CurrencyILS, Amount: 10}},
			},
		},
		{
			name:    "MissingEmfID",
			params:  purchase.Params{EmfID: "  "},
			wantErr: purchase.ErrEmfIDRequired,
		},
		{
			name:    "EmfIDTooLong",
			params:  purchase.Params{EmfID: longStr + "y"},
			wantErr: purchase.ErrEmfIDTooLong,
		},
		{
			name: "NegativeCost",
			params: purchase.Params{
				EmfID: "EMF-100",
				Costs: []purchase.CostParams{{Currency: purchase.CurrencyILS, Amount: -1}},
			},
			wantErr: purchase.ErrInvalidCost,
		},
		{
			name: "UnknownCurrency",
			params: purchase.Params{
				EmfID: "EMF-100",
				Costs: []purchase.CostParams{{Currency: purchase.Currency("GBP"), Amount: 5}},
			},
			wantErr: purchase.ErrInvalidCurrency,
		},
		{
			name: "StageValueTooLong",
			params: purchase.Params{
				EmfID:  "EMF-100",
				Stages: []purchase.StageParams{{Name: "Demand", Value: &longStr}},
			},
			wantErr: purchase.ErrInvalidStage,
		},
		{
			name: "StageNameMissing",
			params: purchase.Params{
				EmfID:  "EMF-100",
				Stages: []purchase.StageParams{{Name: ""}},
			},
			wantErr: purchase.ErrStageNameMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestParseCurrency(t *testing.T) {
	for _, valid := range []string{"ILS", "USD", "EUR"} {
		got, err := purchase.ParseCurrency(valid)
		require.NoError(t, err)
		assert.Equal(t, purchase.Currency(valid), got)
	}

	_, err := purchase.ParseCurrency("ils")
	assert.ErrorIs(t, err, purchase.ErrInvalidCurrency)
}
