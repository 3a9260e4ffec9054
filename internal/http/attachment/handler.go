package attachment

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rechesh-io/rechesh/internal/attachment"
	"github.com/rechesh-io/rechesh/internal/http/respond"
)

type Handler struct {
	svc *attachment.Service
}

func NewHandler(svc *attachment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(admin)
		r.Post("/", h.upload)
		r.Delete("/{id}", h.delete)
	})
}

type fileResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	DownloadURL string    `json:"download_url,omitempty"`
}

func toResponse(f *attachment.File) fileResponse {
	return fileResponse{
		ID:          f.ID,
		Name:        f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		UploadedAt:  f.UploadedAt,
	}
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respond.Detail(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	uploaded, err := h.svc.Upload(r.Context(), attachment.UploadParams{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(uploaded))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	f, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	url, err := h.svc.DownloadURL(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := toResponse(f)
	resp.DownloadURL = url

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
