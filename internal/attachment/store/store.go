package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rechesh-io/rechesh/internal/attachment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectFileColumns = `
	f.id, f.name, f.key, f.content_type, f.size, f.uploaded_at
`

func (s *Store) CreateFile(ctx context.Context, f *attachment.File) error {
	query := `
		INSERT INTO files (name, key, content_type, size)
		VALUES ($1, $2, $3, $4)
		RETURNING id, uploaded_at
	`

	err := s.db.QueryRowContext(ctx, query,
		f.Name, f.Key, f.ContentType, f.Size).Scan(&f.ID, &f.UploadedAt)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	return nil
}

func (s *Store) GetFile(ctx context.Context, id int64) (*attachment.File, error) {
	query := `SELECT ` + selectFileColumns + `
		FROM files f
		WHERE f.id = $1`

	var f attachment.File

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.Name, &f.Key, &f.ContentType, &f.Size, &f.UploadedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, attachment.ErrNotFound
		}

		return nil, fmt.Errorf("getting file: %w", err)
	}

	return &f, nil
}

func (s *Store) DeleteFile(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}

	return nil
}
