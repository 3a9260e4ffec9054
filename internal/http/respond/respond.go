// Package respond centralizes JSON responses and the error envelope for
// the HTTP layer. Handlers hand domain errors to Error and it picks the
// status code, so the sentinel-to-status mapping lives in one place.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rechesh-io/rechesh/internal/attachment"
	"github.com/rechesh-io/rechesh/internal/blob"
	"github.com/rechesh-io/rechesh/internal/encoding"
	"github.com/rechesh-io/rechesh/internal/hierarchy"
	"github.com/rechesh-io/rechesh/internal/pagination"
	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
	"github.com/rechesh-io/rechesh/internal/supplier"
)

// ErrInvalidDate is wrapped by handlers around unparseable date fields
// in request payloads.
var ErrInvalidDate = errors.New("invalid date")

type errorResponse struct {
	Detail string `json:"detail"`
}

var notFound = []error{
	purpose.ErrNotFound,
	purpose.ErrHierarchyNotFound,
	purpose.ErrFileNotFound,
	hierarchy.ErrNotFound,
	hierarchy.ErrParentNotFound,
	purchase.ErrNotFound,
	purchase.ErrStageNotFound,
	attachment.ErrNotFound,
	blob.ErrNotFound,
}

var conflict = []error{
	purchase.ErrDuplicateEmfID,
	purchase.ErrNotOwned,
	purchase.ErrStageNotOwned,
	purchase.ErrCostNotOwned,
	hierarchy.ErrHasChildren,
	hierarchy.ErrInUse,
}

var badRequest = []error{
	ErrInvalidDate,
	purpose.ErrInvalidStatus,
	purpose.ErrCommentsTooLong,
	purpose.ErrSupplierTooLong,
	purpose.ErrContentTooLong,
	purpose.ErrDescriptionTooLong,
	purpose.ErrServiceTypeTooLong,
	purpose.ErrInvalidFilterKey,
	purpose.ErrInvalidFilterValue,
	purpose.ErrInvalidSortField,
	purpose.ErrInvalidSortOrder,
	purpose.ErrInvalidDateRange,
	purchase.ErrEmfIDRequired,
	purchase.ErrEmfIDTooLong,
	purchase.ErrStageNameMissing,
	purchase.ErrInvalidStage,
	purchase.ErrInvalidCost,
	purchase.ErrInvalidCurrency,
	hierarchy.ErrInvalidType,
	hierarchy.ErrNameRequired,
	hierarchy.ErrNameTooLong,
	pagination.ErrInvalidPage,
	pagination.ErrInvalidPageSize,
	encoding.ErrUnknown,
	attachment.ErrNameRequired,
	supplier.ErrPatternRequired,
	supplier.ErrNameRequired,
	supplier.ErrNameTooLong,
}

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Detail writes the error envelope with an explicit status, for failures
// that do not originate from a domain error.
func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, errorResponse{Detail: detail})
}

// Error maps err to an HTTP status and writes the error envelope. Errors
// without a mapping are treated as internal: the detail stays opaque and
// the cause goes to the log instead of the client.
func Error(w http.ResponseWriter, err error) {
	status, detail := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	JSON(w, status, errorResponse{Detail: detail})
}

func statusFor(err error) (int, string) {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound, target.Error()
		}
	}
	for _, target := range conflict {
		if errors.Is(err, target) {
			return http.StatusConflict, target.Error()
		}
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}
	if errors.Is(err, hierarchy.ErrCycle) {
		return http.StatusUnprocessableEntity, hierarchy.ErrCycle.Error()
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusBadRequest, fieldErrs.Error()
	}
	return http.StatusInternalServerError, "internal error"
}
