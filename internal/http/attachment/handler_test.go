package attachment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rechesh-io/rechesh/internal/attachment"
	"github.com/rechesh-io/rechesh/internal/blob/memory"
	attachmenthttp "github.com/rechesh-io/rechesh/internal/http/attachment"
)

func passthrough(next http.Handler) http.Handler {
	return next
}

func newServer(t *testing.T) (*attachment.MockRepository, *memory.Store, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := attachment.NewMockRepository(ctrl)
	blobs := memory.New()
	handler := attachmenthttp.NewHandler(attachment.NewService(repo, blobs))

	r := chi.NewRouter()
	r.Route("/files", func(r chi.Router) {
		handler.Routes(r, passthrough)
	})

	return repo, blobs, r
}

func TestUpload(t *testing.T) {
	repo, _, srv := newServer(t)

	uploadedAt := time.Date(2025, 8, 10, 9, 30, 0, 0, time.UTC)
	repo.EXPECT().
		CreateFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, f *attachment.File) error {
			assert.Equal(t, "mifrat.docx", f.Name)
			f.ID = 31
			f.UploadedAt = uploadedAt
			return nil
		})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "mifrat.docx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("doc content"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Size        int64  `json:"size"`
		DownloadURL string `json:"download_url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(31), resp.ID)
	assert.Equal(t, "mifrat.docx", resp.Name)
	assert.Equal(t, int64(len("doc content")), resp.Size)
	assert.Empty(t, resp.DownloadURL)
}

func TestUpload_MissingFile(t *testing.T) {
	_, _, srv := newServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"file field is required"}`, rec.Body.String())
}

func TestGet(t *testing.T) {
	repo, blobs, srv := newServer(t)

	require.NoError(t, blobs.Put(context.Background(), "abc.pdf", "application/pdf", bytes.NewReader([]byte("pdf"))))

	f := &attachment.File{
		ID:          31,
		Name:        "hatsaa.pdf",
		Key:         "abc.pdf",
		ContentType: "application/pdf",
		Size:        3,
		UploadedAt:  time.Date(2025, 8, 10, 9, 30, 0, 0, time.UTC),
	}
	repo.EXPECT().GetFile(gomock.Any(), int64(31)).Return(f, nil).Times(2)

	req := httptest.NewRequest(http.MethodGet, "/files/31", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"id": 31,
		"name": "hatsaa.pdf",
		"content_type": "application/pdf",
		"size": 3,
		"uploaded_at": "2025-08-10T09:30:00Z",
		"download_url": "memory://abc.pdf"
	}`, rec.Body.String())
}

func TestGet_NotFound(t *testing.T) {
	repo, _, srv := newServer(t)

	repo.EXPECT().GetFile(gomock.Any(), int64(99)).Return(nil, attachment.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/files/99", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"file not found"}`, rec.Body.String())
}

func TestDelete(t *testing.T) {
	repo, blobs, srv := newServer(t)

	require.NoError(t, blobs.Put(context.Background(), "abc.pdf", "application/pdf", bytes.NewReader([]byte("pdf"))))

	repo.EXPECT().GetFile(gomock.Any(), int64(31)).Return(&attachment.File{ID: 31, Key: "abc.pdf"}, nil)
	repo.EXPECT().DeleteFile(gomock.Any(), int64(31)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/files/31", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := blobs.Get(context.Background(), "abc.pdf")
	assert.Error(t, err)
}
