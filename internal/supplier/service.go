// Package supplier normalizes the free-text supplier names that arrive
// on spreadsheet imports. The legacy system spells the same vendor a
// dozen ways; mappings are learned once and applied to every later
// import.
package supplier

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrPatternRequired = errors.New("supplier pattern is required")
	ErrNameRequired    = errors.New("canonical supplier name is required")
	ErrNameTooLong     = errors.New("canonical supplier name exceeds 200 characters")
)

const maxNameLength = 200

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=supplier
type Repository interface {
	FindCanonical(ctx context.Context, raw string) (string, error)
	CreateMapping(ctx context.Context, pattern, canonical string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Canonical returns the preferred name for a raw supplier value, or the
// empty string when no mapping matches.
func (s *Service) Canonical(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	return s.repo.FindCanonical(ctx, raw)
}

// Learn records that raw supplier values containing pattern should be
// normalized to canonical.
func (s *Service) Learn(ctx context.Context, pattern, canonical string) error {
	pattern = strings.TrimSpace(pattern)
	canonical = strings.TrimSpace(canonical)

	if pattern == "" {
		return ErrPatternRequired
	}

	if canonical == "" {
		return ErrNameRequired
	}

	if utf8.RuneCountInString(canonical) > maxNameLength {
		return ErrNameTooLong
	}

	return s.repo.CreateMapping(ctx, pattern, canonical)
}
