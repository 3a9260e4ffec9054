package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCanonical(ctx context.Context, raw string) (string, error) {
	// Longest pattern wins, so a mapping for "בזק בינלאומי" beats one
	// for "בזק".
	query := `
		SELECT canonical_name
		FROM supplier_mappings
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var canonical string

	err := s.db.QueryRowContext(ctx, query, raw).Scan(&canonical)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding supplier mapping: %w", err)
	}

	return canonical, nil
}

func (s *Store) CreateMapping(ctx context.Context, pattern, canonical string) error {
	query := `
		INSERT INTO supplier_mappings (raw_pattern, canonical_name, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, pattern, canonical)
	if err != nil {
		return fmt.Errorf("creating supplier mapping: %w", err)
	}

	return nil
}
