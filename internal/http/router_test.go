package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rechesh-io/rechesh/internal/attachment"
	"github.com/rechesh-io/rechesh/internal/blob/memory"
	"github.com/rechesh-io/rechesh/internal/export"
	"github.com/rechesh-io/rechesh/internal/hierarchy"
	recheshHttp "github.com/rechesh-io/rechesh/internal/http"
	attachmenthttp "github.com/rechesh-io/rechesh/internal/http/attachment"
	"github.com/rechesh-io/rechesh/internal/http/auth"
	exporthttp "github.com/rechesh-io/rechesh/internal/http/export"
	hierarchyhttp "github.com/rechesh-io/rechesh/internal/http/hierarchy"
	"github.com/rechesh-io/rechesh/internal/http/importcsv"
	purchasehttp "github.com/rechesh-io/rechesh/internal/http/purchase"
	purposehttp "github.com/rechesh-io/rechesh/internal/http/purpose"
	supplierhttp "github.com/rechesh-io/rechesh/internal/http/supplier"
	"github.com/rechesh-io/rechesh/internal/importer"
	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
	"github.com/rechesh-io/rechesh/internal/supplier"
)

const testSecret = "router-test-secret"

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error { return p.err }

func enabledAuth() auth.Config {
	return auth.Config{
		Enabled:  true,
		Secret:   testSecret,
		Issuer:   "rechesh",
		Audience: "rechesh-api",
	}
}

type server struct {
	http.Handler

	purposes    *purpose.MockRepository
	hierarchies *hierarchy.MockRepository
	suppliers   *supplier.MockRepository
}

func newRouter(t *testing.T, authCfg auth.Config, ping error) *server {
	t.Helper()

	ctrl := gomock.NewController(t)

	purposeRepo := purpose.NewMockRepository(ctrl)
	hierarchyRepo := hierarchy.NewMockRepository(ctrl)
	purchaseRepo := purchase.NewMockRepository(ctrl)
	fileRepo := attachment.NewMockRepository(ctrl)
	supplierRepo := supplier.NewMockRepository(ctrl)

	hierarchySvc := hierarchy.NewService(hierarchyRepo)
	purposeSvc := purpose.NewService(purposeRepo, hierarchySvc, nil)
	purchaseSvc := purchase.NewService(purchaseRepo)
	attachmentSvc := attachment.NewService(fileRepo, memory.New())
	exportSvc := export.NewService(purposeSvc, hierarchySvc)
	supplierSvc := supplier.NewService(supplierRepo)

	router := recheshHttp.New(
		auth.New(authCfg),
		stubPinger{err: ping},
		[]string{"*"},
		purposehttp.NewHandler(purposeSvc, attachmentSvc),
		purchasehttp.NewHandler(purchaseSvc, purposeSvc),
		hierarchyhttp.NewHandler(hierarchySvc),
		attachmenthttp.NewHandler(attachmentSvc),
		exporthttp.NewHandler(exportSvc),
		importcsv.NewHandler(importer.NewService(), purposeSvc, supplierSvc),
		supplierhttp.NewHandler(supplierSvc),
	)

	return &server{Handler: router, purposes: purposeRepo, hierarchies: hierarchyRepo, suppliers: supplierRepo}
}

func mintToken(t *testing.T, roles ...string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   "u-1",
		"iss":   "rechesh",
		"aud":   "rechesh-api",
		"iat":   time.Now().Add(-time.Minute).Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
		"roles": roles,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return token
}

func TestHealthz(t *testing.T) {
	srv := newRouter(t, auth.Config{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestHealthz_DatabaseDown(t *testing.T) {
	srv := newRouter(t, auth.Config{}, errors.New("connection refused"))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status": "unavailable"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newRouter(t, auth.Config{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAPIRequiresToken(t *testing.T) {
	srv := newRouter(t, enabledAuth(), nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/hierarchies/5", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestReaderTokenReadsButCannotMutate(t *testing.T) {
	srv := newRouter(t, enabledAuth(), nil)
	token := mintToken(t, "reader")

	srv.hierarchies.EXPECT().
		GetHierarchy(gomock.Any(), int64(5)).
		Return(&hierarchy.Hierarchy{ID: 5, Type: hierarchy.TypeTeam, Name: "Alpha"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hierarchies/5", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 5, "parent_id": null, "type": "TEAM", "name": "Alpha"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/hierarchies", strings.NewReader(`{"type": "TEAM", "name": "Bravo"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUnsupportedContentType(t *testing.T) {
	srv := newRouter(t, enabledAuth(), nil)
	token := mintToken(t, "admin")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/hierarchies", strings.NewReader("type=TEAM"))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newRouter(t, enabledAuth(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/purposes", nil)
	req.Header.Set("Origin", "https://rechesh.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestExportRouteStreamsCSV(t *testing.T) {
	srv := newRouter(t, auth.Config{}, nil)

	srv.purposes.EXPECT().ListAllPurposes(gomock.Any(), gomock.Any()).Return(nil, nil)
	srv.hierarchies.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/purposes/export_csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"ID","Status"`)
}

func TestSupplierSuggestRoute(t *testing.T) {
	srv := newRouter(t, auth.Config{}, nil)

	srv.suppliers.EXPECT().FindCanonical(gomock.Any(), "Dell Inc").Return("Dell Technologies", nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/suppliers/suggest?name=Dell+Inc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name": "Dell Inc", "canonical": "Dell Technologies"}`, rec.Body.String())
}

func TestImportRouteRequiresAdmin(t *testing.T) {
	srv := newRouter(t, enabledAuth(), nil)
	token := mintToken(t, "reader")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/purposes/import_csv", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}
