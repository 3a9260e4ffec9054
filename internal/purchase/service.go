package purchase

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=purchase
type Repository interface {
	GetPurchase(ctx context.Context, id int64) (*Purchase, error)
	GetStage(ctx context.Context, id int64) (*Stage, error)
	UpdateStage(ctx context.Context, stage *Stage) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpdateStageParams is a partial patch. The Set flags distinguish
// fields that were omitted from fields explicitly set to null.
type UpdateStageParams struct {
	SetValue          bool
	Value             *string
	SetCompletionDate bool
	CompletionDate    *time.Time
}

func (s *Service) Get(ctx context.Context, id int64) (*Purchase, error) {
	return s.repo.GetPurchase(ctx, id)
}

func (s *Service) GetStage(ctx context.Context, id int64) (*Stage, error) {
	return s.repo.GetStage(ctx, id)
}

func (s *Service) UpdateStage(ctx context.Context, id int64, params UpdateStageParams) (*Stage, error) {
	stage, err := s.repo.GetStage(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.SetValue {
		if params.Value != nil && len([]rune(*params.Value)) > maxStageValueLength {
			return nil, ErrInvalidStage
		}

		stage.Value = params.Value
	}

	if params.SetCompletionDate {
		stage.CompletionDate = params.CompletionDate
	}

	if err := s.repo.UpdateStage(ctx, stage); err != nil {
		return nil, err
	}

	return stage, nil
}
