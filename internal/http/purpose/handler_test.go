package purpose_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rechesh-io/rechesh/internal/attachment"
	"github.com/rechesh-io/rechesh/internal/blob/memory"
	purposehttp "github.com/rechesh-io/rechesh/internal/http/purpose"
	"github.com/rechesh-io/rechesh/internal/pagination"
	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func passthrough(next http.Handler) http.Handler {
	return next
}

type server struct {
	repo     *purpose.MockRepository
	tx       *purpose.MockTx
	resolver *purpose.MockHierarchyResolver
	files    *attachment.MockRepository
	http.Handler
}

func newServer(t *testing.T) *server {
	t.Helper()

	ctrl := gomock.NewController(t)
	s := &server{
		repo:     purpose.NewMockRepository(ctrl),
		tx:       purpose.NewMockTx(ctrl),
		resolver: purpose.NewMockHierarchyResolver(ctrl),
		files:    attachment.NewMockRepository(ctrl),
	}

	svc := purpose.NewService(s.repo, s.resolver, nil)
	attachments := attachment.NewService(s.files, memory.New())

	handler := purposehttp.NewHandler(svc, attachments)

	r := chi.NewRouter()
	r.Route("/purposes", func(r chi.Router) {
		handler.Routes(r, passthrough)
	})
	s.Handler = r

	return s
}

func fixedTime() time.Time {
	return time.Date(2025, 8, 10, 9, 30, 0, 0, time.UTC)
}

func samplePurpose() *purpose.Purpose {
	ct := fixedTime()
	delivery := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	stageDate := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	return &purpose.Purpose{
		ID:               7,
		HierarchyID:      int64Ptr(3),
		ExpectedDelivery: &delivery,
		LastModified:     ct,
		Comments:         strPtr("urgent"),
		Status:           purpose.StatusInProgress,
		CreationTime:     ct,
		Supplier:         strPtr("Elbit"),
		Content:          strPtr("radio parts"),
		Description:      strPtr("communications gear"),
		ServiceType:      strPtr("hardware"),
		IsFlagged:        true,
		Purchases: []purchase.Purchase{{
			ID:                21,
			EmfID:             "EMF-100",
			PurposeID:         7,
			CreationTime:      ct,
			OrderID:           strPtr("ORD-9"),
			OrderCreationDate: &stageDate,
			Stages: []purchase.Stage{{
				ID: 31, PurchaseID: 21, Name: "Tender", Priority: 1,
				Value: strPtr("won"), CompletionDate: &stageDate,
			}},
			Costs: []purchase.Cost{{
				ID: 41, PurchaseID: 21, Currency: purchase.CurrencyILS, Amount: 1500.5,
			}},
		}},
		FileIDs: []int64{11},
	}
}

const samplePurposeJSON = `{
	"id": 7,
	"hierarchy_id": 3,
	"expected_delivery": "2025-09-01",
	"last_modified": "2025-08-10T09:30:00Z",
	"comments": "urgent",
	"status": "IN_PROGRESS",
	"creation_time": "2025-08-10T09:30:00Z",
	"supplier": "Elbit",
	"content": "radio parts",
	"description": "communications gear",
	"service_type": "hardware",
	"is_flagged": true,
	"purchases": [{
		"id": 21,
		"emf_id": "EMF-100",
		"creation_time": "2025-08-10T09:30:00Z",
		"order_id": "ORD-9",
		"order_creation_date": "2025-08-20",
		"demand_id": null,
		"demand_creation_date": null,
		"bikushit_id": null,
		"bikushit_creation_date": null,
		"stages": [{
			"id": 31, "name": "Tender", "priority": 1,
			"value": "won", "completion_date": "2025-08-20"
		}],
		"costs": [{"id": 41, "currency": "ILS", "amount": 1500.5}]
	}],
	"file_ids": [11]
}`

func TestGet(t *testing.T) {
	srv := newServer(t)

	srv.repo.EXPECT().GetPurpose(gomock.Any(), int64(7)).Return(samplePurpose(), nil)

	req := httptest.NewRequest(http.MethodGet, "/purposes/7", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, samplePurposeJSON, rec.Body.String())
}

func TestGet_NotFound(t *testing.T) {
	srv := newServer(t)

	srv.repo.EXPECT().GetPurpose(gomock.Any(), int64(99)).Return(nil, purpose.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/purposes/99", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"purpose not found"}`, rec.Body.String())
}

func TestGet_BadID(t *testing.T) {
	srv := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/purposes/abc", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"invalid id"}`, rec.Body.String())
}

func TestList(t *testing.T) {
	srv := newServer(t)

	wantQuery := purpose.DefaultQuery()
	wantQuery.Filter.Statuses = []purpose.Status{purpose.StatusInProgress}
	wantQuery.SortBy = purpose.SortLastModified

	srv.repo.EXPECT().
		ListPurposes(gomock.Any(), wantQuery, pagination.Params{Page: 2, PageSize: 10}).
		Return([]*purpose.Purpose{samplePurpose()}, int64(11), nil)

	url := "/purposes?status=IN_PROGRESS&sort_by=last_modified&page=2&page_size=10"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"items": [`+samplePurposeJSON+`],
		"total": 11,
		"page": 2,
		"page_size": 10,
		"total_pages": 2
	}`, rec.Body.String())
}

func TestList_HierarchyFilterExpanded(t *testing.T) {
	srv := newServer(t)

	srv.resolver.EXPECT().
		DescendantIDs(gomock.Any(), []int64{3}).
		Return([]int64{3, 4, 5}, nil)

	wantQuery := purpose.DefaultQuery()
	wantQuery.Filter.HierarchyIDs = []int64{3, 4, 5}

	srv.repo.EXPECT().
		ListPurposes(gomock.Any(), wantQuery, pagination.Params{Page: 1, PageSize: 20}).
		Return(nil, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/purposes?hierarchy_id=3", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items": [], "total": 0, "page": 1, "page_size": 20, "total_pages": 0}`, rec.Body.String())
}

func TestList_UnknownFilterKey(t *testing.T) {
	srv := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/purposes?color=red", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"unknown filter key"}`, rec.Body.String())
}

func TestList_BadStatusValue(t *testing.T) {
	srv := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/purposes?status=CANCELLED", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"invalid filter value"}`, rec.Body.String())
}

func TestCreate(t *testing.T) {
	srv := newServer(t)

	ct := fixedTime()

	srv.repo.EXPECT().Begin(gomock.Any()).Return(srv.tx, nil)
	srv.tx.EXPECT().EmfIDExists(gomock.Any(), "EMF-100", gomock.Nil()).Return(false, nil)
	srv.tx.EXPECT().
		InsertPurpose(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, p *purpose.Purpose) error {
			assert.Equal(t, purpose.StatusInProgress, p.Status)
			assert.Equal(t, "communications gear", *p.Description)
			p.ID = 7
			p.CreationTime = ct
			p.LastModified = ct
			return nil
		})
	srv.tx.EXPECT().
		InsertPurchase(gomock.Any(), int64(7), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, params purchase.Params) (int64, error) {
			assert.Equal(t, "EMF-100", params.EmfID)
			require.NotNil(t, params.OrderCreationDate)
			assert.Equal(t, "2025-08-20", params.OrderCreationDate.Format(time.DateOnly))
			return 21, nil
		})
	srv.tx.EXPECT().ReplaceFileLinks(gomock.Any(), int64(7), gomock.Nil()).Return(nil)
	srv.tx.EXPECT().
		InsertStatusChange(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, change *purpose.StatusChange) error {
			assert.Nil(t, change.PreviousStatus)
			assert.Equal(t, purpose.StatusInProgress, change.NewStatus)
			return nil
		})
	srv.tx.EXPECT().GetPurpose(gomock.Any(), int64(7)).Return(samplePurpose(), nil)
	srv.tx.EXPECT().Commit().Return(nil)
	srv.tx.EXPECT().Rollback().Return(nil)

	body := `{
		"status": "IN_PROGRESS",
		"description": "communications gear",
		"purchases": [{"emf_id": "EMF-100", "order_creation_date": "2025-08-20"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/purposes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, samplePurposeJSON, rec.Body.String())
}

func TestCreate_InvalidDate(t *testing.T) {
	srv := newServer(t)

	body := `{"status": "IN_PROGRESS", "expected_delivery": "20-08-2025"}`
	req := httptest.NewRequest(http.MethodPost, "/purposes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"invalid date"}`, rec.Body.String())
}

func TestCreate_UnknownCurrency(t *testing.T) {
	srv := newServer(t)

	body := `{
		"status": "IN_PROGRESS",
		"purchases": [{"emf_id": "EMF-100", "costs": [{"currency": "GBP", "amount": 10}]}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/purposes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"invalid currency"}`, rec.Body.String())
}

func TestCreate_MissingStatus(t *testing.T) {
	srv := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/purposes", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Status")
}

func TestCreate_DuplicateEmfID(t *testing.T) {
	srv := newServer(t)

	srv.repo.EXPECT().Begin(gomock.Any()).Return(srv.tx, nil)
	srv.tx.EXPECT().EmfIDExists(gomock.Any(), "EMF-100", gomock.Nil()).Return(true, nil)
	srv.tx.EXPECT().Rollback().Return(nil)

	body := `{"status": "IN_PROGRESS", "purchases": [{"emf_id": "EMF-100"}]}`
	req := httptest.NewRequest(http.MethodPost, "/purposes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"detail":"emf id already exists"}`, rec.Body.String())
}

func TestUpdate_NotFound(t *testing.T) {
	srv := newServer(t)

	srv.repo.EXPECT().Begin(gomock.Any()).Return(srv.tx, nil)
	srv.tx.EXPECT().GetPurpose(gomock.Any(), int64(99)).Return(nil, purpose.ErrNotFound)
	srv.tx.EXPECT().Rollback().Return(nil)

	body := `{"status": "COMPLETED"}`
	req := httptest.NewRequest(http.MethodPut, "/purposes/99", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"purpose not found"}`, rec.Body.String())
}

func TestDelete(t *testing.T) {
	srv := newServer(t)

	srv.repo.EXPECT().Begin(gomock.Any()).Return(srv.tx, nil)
	srv.tx.EXPECT().PurposeExists(gomock.Any(), int64(7)).Return(true, nil)
	srv.tx.EXPECT().DeletePurpose(gomock.Any(), int64(7)).Return(nil)
	srv.tx.EXPECT().Commit().Return(nil)
	srv.tx.EXPECT().Rollback().Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/purposes/7", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSetFlag(t *testing.T) {
	srv := newServer(t)

	srv.repo.EXPECT().Begin(gomock.Any()).Return(srv.tx, nil)
	srv.tx.EXPECT().PurposeExists(gomock.Any(), int64(7)).Return(true, nil)
	srv.tx.EXPECT().SetFlagged(gomock.Any(), int64(7), true).Return(nil)
	srv.tx.EXPECT().TouchPurpose(gomock.Any(), int64(7)).Return(nil)
	srv.tx.EXPECT().Commit().Return(nil)
	srv.tx.EXPECT().Rollback().Return(nil)

	body := `{"is_flagged": true}`
	req := httptest.NewRequest(http.MethodPost, "/purposes/7/flag", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStatusHistory(t *testing.T) {
	srv := newServer(t)

	prev := purpose.StatusInProgress
	srv.repo.EXPECT().PurposeExists(gomock.Any(), int64(7)).Return(true, nil)
	srv.repo.EXPECT().ListStatusHistory(gomock.Any(), int64(7)).Return([]*purpose.StatusChange{
		{
			ID: 2, PurposeID: 7, PreviousStatus: &prev,
			NewStatus: purpose.StatusCompleted, ChangedAt: fixedTime(), ChangedBy: strPtr("dana"),
		},
		{
			ID: 1, PurposeID: 7,
			NewStatus: purpose.StatusInProgress, ChangedAt: fixedTime(),
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/purposes/7/status-history", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{
			"id": 2, "purpose_id": 7, "previous_status": "IN_PROGRESS",
			"new_status": "COMPLETED", "changed_at": "2025-08-10T09:30:00Z", "changed_by": "dana"
		},
		{
			"id": 1, "purpose_id": 7, "previous_status": null,
			"new_status": "IN_PROGRESS", "changed_at": "2025-08-10T09:30:00Z", "changed_by": null
		}
	]`, rec.Body.String())
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadFile(t *testing.T) {
	srv := newServer(t)

	srv.repo.EXPECT().GetPurpose(gomock.Any(), int64(7)).Return(samplePurpose(), nil)
	srv.files.EXPECT().
		CreateFile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, f *attachment.File) error {
			assert.Equal(t, "hatsaa.pdf", f.Name)
			f.ID = 31
			f.UploadedAt = fixedTime()
			return nil
		})
	srv.repo.EXPECT().Begin(gomock.Any()).Return(srv.tx, nil)
	srv.tx.EXPECT().PurposeExists(gomock.Any(), int64(7)).Return(true, nil)
	srv.tx.EXPECT().FileExists(gomock.Any(), int64(31)).Return(true, nil)
	srv.tx.EXPECT().LinkFile(gomock.Any(), int64(7), int64(31)).Return(nil)
	srv.tx.EXPECT().TouchPurpose(gomock.Any(), int64(7)).Return(nil)
	srv.tx.EXPECT().Commit().Return(nil)
	srv.tx.EXPECT().Rollback().Return(nil)

	body, contentType := multipartBody(t, "file", "hatsaa.pdf", "%PDF-1.4 content")
	req := httptest.NewRequest(http.MethodPost, "/purposes/7/files", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Size int64  `json:"size"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(31), resp.ID)
	assert.Equal(t, "hatsaa.pdf", resp.Name)
	assert.Equal(t, int64(len("%PDF-1.4 content")), resp.Size)
}

func TestUploadFile_MissingFileField(t *testing.T) {
	srv := newServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "orphan"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/purposes/7/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"file field is required"}`, rec.Body.String())
}

func TestUploadFile_PurposeNotFound(t *testing.T) {
	srv := newServer(t)

	srv.repo.EXPECT().GetPurpose(gomock.Any(), int64(99)).Return(nil, purpose.ErrNotFound)

	body, contentType := multipartBody(t, "file", "hatsaa.pdf", "data")
	req := httptest.NewRequest(http.MethodPost, "/purposes/99/files", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDetachFile(t *testing.T) {
	srv := newServer(t)

	srv.repo.EXPECT().Begin(gomock.Any()).Return(srv.tx, nil)
	srv.tx.EXPECT().PurposeExists(gomock.Any(), int64(7)).Return(true, nil)
	srv.tx.EXPECT().UnlinkFile(gomock.Any(), int64(7), int64(31)).Return(true, nil)
	srv.tx.EXPECT().TouchPurpose(gomock.Any(), int64(7)).Return(nil)
	srv.tx.EXPECT().Commit().Return(nil)
	srv.tx.EXPECT().Rollback().Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/purposes/7/files/31", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDetachFile_NotLinked(t *testing.T) {
	srv := newServer(t)

	srv.repo.EXPECT().Begin(gomock.Any()).Return(srv.tx, nil)
	srv.tx.EXPECT().PurposeExists(gomock.Any(), int64(7)).Return(true, nil)
	srv.tx.EXPECT().UnlinkFile(gomock.Any(), int64(7), int64(31)).Return(false, nil)
	srv.tx.EXPECT().Rollback().Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/purposes/7/files/31", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"file not found"}`, rec.Body.String())
}
