package purchase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rechesh-io/rechesh/internal/purchase"
)

func TestService_GetStage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := purchase.NewMockRepository(ctrl)
	svc := purchase.NewService(repo)

	repo.EXPECT().GetStage(gomock.Any(), int64(3)).
		Return(&purchase.Stage{ID: 3, PurchaseID: 1, Name: "Order", Priority: 2}, nil)

	got, err := svc.GetStage(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Order", got.Name)
}

func TestService_GetStage_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := purchase.NewMockRepository(ctrl)
	svc := purchase.NewService(repo)

	repo.EXPECT().GetStage(gomock.Any(), int64(99)).Return(nil, purchase.ErrStageNotFound)

	_, err := svc.GetStage(context.Background(), 99)
	require.ErrorIs(t, err, purchase.ErrStageNotFound)
}

func TestService_UpdateStage(t *testing.T) {
	type args struct {
		params purchase.UpdateStageParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *purchase.MockRepository)
		check     func(t *testing.T, got *purchase.Stage)
		wantErr   error
	}

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	val := "approved"

	tests := []testCase{
		{
			name: "SetBothFields",
			args: args{
				params: purchase.UpdateStageParams{
					SetValue:          true,
					Value:             &val,
					SetCompletionDate: true,
					CompletionDate:    &date,
				},
			},
			setupMock: func(m *purchase.MockRepository) {
				m.EXPECT().GetStage(gomock.Any(), int64(3)).
					Return(&purchase.Stage{ID: 3, PurchaseID: 1, Name: "Order"}, nil)
				m.EXPECT().UpdateStage(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *purchase.Stage) {
				require.NotNil(t, got.Value)
				assert.Equal(t, "approved", *got.Value)
				require.NotNil(t, got.CompletionDate)
				assert.Equal(t, date, *got.CompletionDate)
			},
		},
		{
			name: "ClearValue",
			args: args{
				params: purchase.UpdateStageParams{SetValue: true, Value: nil},
			},
			setupMock: func(m *purchase.MockRepository) {
				existing := "old"
				m.EXPECT().GetStage(gomock.Any(), int64(3)).
					Return(&purchase.Stage{ID: 3, PurchaseID: 1, Name: "Order", Value: &existing}, nil)
				m.EXPECT().UpdateStage(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *purchase.Stage) {
				assert.Nil(t, got.Value)
			},
		},
		{
			name: "UntouchedFieldsSurvive",
			args: args{
				params: purchase.UpdateStageParams{SetCompletionDate: true, CompletionDate: &date},
			},
			setupMock: func(m *purchase.MockRepository) {
				existing := "keep me"
				m.EXPECT().GetStage(gomock.Any(), int64(3)).
					Return(&purchase.Stage{ID: 3, PurchaseID: 1, Name: "Order", Value: &existing}, nil)
				m.EXPECT().UpdateStage(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *purchase.Stage) {
				require.NotNil(t, got.Value)
				assert.Equal(t, "keep me", *got.Value)
			},
		},
		{
			name: "ValueTooLong",
			args: args{
				params: purchase.UpdateStageParams{
					SetValue: true,
					Value:    new(strings.Repeat("x", 256)),
				},
			},
			setupMock: func(m *purchase.MockRepository) {
				m.EXPECT().GetStage(gomock.Any(), int64(3)).
					Return(&purchase.Stage{ID: 3, PurchaseID: 1, Name: "Order"}, nil)
			},
			wantErr: purchase.ErrInvalidStage,
		},
		{
			name: "NotFound",
			args: args{
				params: purchase.UpdateStageParams{SetValue: true, Value: &val},
			},
			setupMock: func(m *purchase.MockRepository) {
				m.EXPECT().GetStage(gomock.Any(), int64(3)).Return(nil, purchase.ErrStageNotFound)
			},
			wantErr: purchase.ErrStageNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := purchase.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := purchase.NewService(repo)
			got, err := svc.UpdateStage(context.Background(), 3, tt.args.params)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}
