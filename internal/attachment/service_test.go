package attachment_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rechesh-io/rechesh/internal/attachment"
	"github.com/rechesh-io/rechesh/internal/blob"
	"github.com/rechesh-io/rechesh/internal/blob/memory"
)

func TestService_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := attachment.NewMockRepository(ctrl)
	blobs := memory.New()

	repo.EXPECT().CreateFile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f *attachment.File) error {
			f.ID = 11
			return nil
		})

	service := attachment.NewService(repo, blobs)

	f, err := service.Upload(context.Background(), attachment.UploadParams{
		Name:        "Quote.PDF",
		ContentType: "application/pdf",
		Size:        4,
		Body:        strings.NewReader("%PDF"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), f.ID)
	assert.Equal(t, "Quote.PDF", f.Name)

	require.True(t, strings.HasSuffix(f.Key, ".pdf"))
	_, err = uuid.Parse(strings.TrimSuffix(f.Key, ".pdf"))
	require.NoError(t, err)

	rc, err := blobs.Get(context.Background(), f.Key)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content))
}

func TestService_Upload_EmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := attachment.NewMockRepository(ctrl)

	service := attachment.NewService(repo, memory.New())

	_, err := service.Upload(context.Background(), attachment.UploadParams{
		Name: "   ",
		Body: strings.NewReader("x"),
	})
	require.ErrorIs(t, err, attachment.ErrNameRequired)
}

func TestService_Upload_BodyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := attachment.NewMockRepository(ctrl)

	service := attachment.NewService(repo, memory.New())

	_, err := service.Upload(context.Background(), attachment.UploadParams{
		Name: "broken.bin",
		Body: iotest.ErrReader(errors.New("connection reset")),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storing blob")
}

func TestService_Upload_RepoErrorRemovesBlob(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := attachment.NewMockRepository(ctrl)
	blobs := memory.New()

	var key string

	repo.EXPECT().CreateFile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f *attachment.File) error {
			key = f.Key
			return errors.New("insert failed")
		})

	service := attachment.NewService(repo, blobs)

	_, err := service.Upload(context.Background(), attachment.UploadParams{
		Name: "doc.txt",
		Body: strings.NewReader("hello"),
	})
	require.Error(t, err)

	_, err = blobs.Get(context.Background(), key)
	require.ErrorIs(t, err, blob.ErrNotFound)
}

func TestService_DownloadURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := attachment.NewMockRepository(ctrl)
	blobs := memory.New()

	require.NoError(t, blobs.Put(context.Background(), "abc.pdf", "application/pdf", strings.NewReader("%PDF")))

	repo.EXPECT().GetFile(gomock.Any(), int64(11)).Return(
		&attachment.File{ID: 11, Name: "Quote.pdf", Key: "abc.pdf"}, nil)

	service := attachment.NewService(repo, blobs)

	url, err := service.DownloadURL(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "memory://abc.pdf", url)
}

func TestService_DownloadURL_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := attachment.NewMockRepository(ctrl)

	repo.EXPECT().GetFile(gomock.Any(), int64(404)).Return(nil, attachment.ErrNotFound)

	service := attachment.NewService(repo, memory.New())

	_, err := service.DownloadURL(context.Background(), 404)
	require.ErrorIs(t, err, attachment.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := attachment.NewMockRepository(ctrl)
	blobs := memory.New()

	require.NoError(t, blobs.Put(context.Background(), "abc.pdf", "application/pdf", strings.NewReader("%PDF")))

	repo.EXPECT().GetFile(gomock.Any(), int64(11)).Return(
		&attachment.File{ID: 11, Name: "Quote.pdf", Key: "abc.pdf"}, nil)
	repo.EXPECT().DeleteFile(gomock.Any(), int64(11)).Return(nil)

	service := attachment.NewService(repo, blobs)

	require.NoError(t, service.Delete(context.Background(), 11))

	_, err := blobs.Get(context.Background(), "abc.pdf")
	require.ErrorIs(t, err, blob.ErrNotFound)
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := attachment.NewMockRepository(ctrl)

	f := &attachment.File{ID: 11, Name: "Quote.pdf", Key: "abc.pdf"}
	repo.EXPECT().GetFile(gomock.Any(), int64(11)).Return(f, nil)

	service := attachment.NewService(repo, memory.New())

	got, err := service.Get(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}
