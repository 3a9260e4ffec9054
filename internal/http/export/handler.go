// Package export serves the purpose listing as a CSV download.
package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rechesh-io/rechesh/internal/encoding"
	"github.com/rechesh-io/rechesh/internal/export"
	purposehttp "github.com/rechesh-io/rechesh/internal/http/purpose"
	"github.com/rechesh-io/rechesh/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export_csv", h.exportCSV)
}

// exportCSV accepts the same filter and sort parameters as the purpose
// list endpoint, plus an encoding parameter selecting the output charset.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	name, err := encoding.Parse(values.Get("encoding"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	values.Del("encoding")

	q, err := purposehttp.ParseQuery(values)
	if err != nil {
		respond.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset="+name.Charset())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))

	out, err := encoding.NewWriter(w, name)
	if err != nil {
		slog.Error("failed to start csv export", "error", err)
		return
	}
	defer out.Close()

	// Headers are already on the wire, so a failure here can only be
	// logged. The client sees a truncated file.
	if err := h.svc.WriteCSV(r.Context(), out, q); err != nil {
		slog.Error("failed to write csv export", "error", err)
	}
}
