package attachment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/rechesh-io/rechesh/internal/blob"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=attachment
type Repository interface {
	CreateFile(ctx context.Context, f *File) error
	GetFile(ctx context.Context, id int64) (*File, error)
	DeleteFile(ctx context.Context, id int64) error
}

type UploadParams struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Service struct {
	repo  Repository
	blobs blob.Store
}

func NewService(repo Repository, blobs blob.Store) *Service {
	return &Service{repo: repo, blobs: blobs}
}

// Upload stores the content under a fresh uuid key, keeping the
// original extension, then records the metadata.
func (s *Service) Upload(ctx context.Context, params UploadParams) (*File, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	key := uuid.NewString() + strings.ToLower(filepath.Ext(name))

	if err := s.blobs.Put(ctx, key, params.ContentType, params.Body); err != nil {
		return nil, fmt.Errorf("storing blob: %w", err)
	}

	f := &File{
		Name:        name,
		Key:         key,
		ContentType: params.ContentType,
		Size:        params.Size,
	}
	if err := s.repo.CreateFile(ctx, f); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			slog.Warn("orphaned blob left behind", "key", key, "error", delErr)
		}

		return nil, err
	}

	return f, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*File, error) {
	return s.repo.GetFile(ctx, id)
}

// DownloadURL presigns a GET for the file, served under its original
// name.
func (s *Service) DownloadURL(ctx context.Context, id int64) (string, error) {
	f, err := s.repo.GetFile(ctx, id)
	if err != nil {
		return "", err
	}

	return s.blobs.PresignGet(ctx, f.Key, f.Name)
}

// Delete removes the metadata row, which cascades over any purpose
// links, then the blob. Once the row is gone a failed object delete
// only leaks storage, so it is logged rather than surfaced.
func (s *Service) Delete(ctx context.Context, id int64) error {
	f, err := s.repo.GetFile(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteFile(ctx, id); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, f.Key); err != nil {
		slog.Warn("deleting blob failed", "key", f.Key, "error", err)
	}

	return nil
}
