package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rechesh-io/rechesh/internal/http/auth"
)

const testSecret = "test-secret"

func testConfig() auth.Config {
	return auth.Config{
		Enabled:  true,
		Secret:   testSecret,
		Issuer:   "rechesh",
		Audience: "rechesh-api",
	}
}

func mintToken(t *testing.T, secret string, mutate func(jwt.MapClaims)) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":                "u-1",
		"email":              "dana@rechesh.io",
		"preferred_username": "dana",
		"roles":              []string{"admin"},
		"iss":                "rechesh",
		"aud":                "rechesh-api",
		"iat":                time.Now().Unix(),
		"exp":                time.Now().Add(time.Hour).Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestMiddleware_ValidToken(t *testing.T) {
	a := auth.New(testConfig())

	var gotUser *auth.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/purposes", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, nil))
	rec := httptest.NewRecorder()

	a.Middleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, "u-1", gotUser.Subject)
	assert.Equal(t, "dana@rechesh.io", gotUser.Email)
	assert.Equal(t, "dana", gotUser.Username)
	assert.Equal(t, []string{"admin"}, gotUser.Roles)
}

func TestMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{
			name:   "MissingHeader",
			header: "",
		},
		{
			name:   "NotBearer",
			header: "Basic dXNlcjpwYXNz",
		},
		{
			name:   "WrongSignature",
			header: "Bearer " + mintToken(t, "other-secret", nil),
		},
		{
			name: "WrongIssuer",
			header: "Bearer " + mintToken(t, testSecret, func(c jwt.MapClaims) {
				c["iss"] = "someone-else"
			}),
		},
		{
			name: "WrongAudience",
			header: "Bearer " + mintToken(t, testSecret, func(c jwt.MapClaims) {
				c["aud"] = "other-api"
			}),
		},
		{
			name: "Expired",
			header: "Bearer " + mintToken(t, testSecret, func(c jwt.MapClaims) {
				c["exp"] = time.Now().Add(-time.Hour).Unix()
			}),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := auth.New(testConfig())

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/purposes", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			a.Middleware(next).ServeHTTP(rec, req)

			assert.False(t, nextCalled)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.JSONEq(t, `{"detail":"invalid or missing credentials"}`, rec.Body.String())
		})
	}
}

func TestMiddleware_UnsignedTokenRejected(t *testing.T) {
	a := auth.New(testConfig())

	claims := jwt.MapClaims{
		"sub": "u-1",
		"iss": "rechesh",
		"aud": "rechesh-api",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/purposes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_Disabled(t *testing.T) {
	a := auth.New(auth.Config{Enabled: false})

	var anonymous bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := auth.UserFromContext(r.Context())
		anonymous = !ok
		assert.Nil(t, auth.Username(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/purposes", nil)
	rec := httptest.NewRecorder()

	a.Middleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, anonymous)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		wantStatus int
	}{
		{
			name:       "HasRole",
			roles:      []string{"viewer", "admin"},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "MissingRole",
			roles:      []string{"viewer"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "NoRoles",
			roles:      nil,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := auth.New(testConfig())

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
			handler := a.Middleware(a.RequireRole("admin")(next))

			token := mintToken(t, testSecret, func(c jwt.MapClaims) {
				if tc.roles == nil {
					delete(c, "roles")
					return
				}
				c["roles"] = tc.roles
			})

			req := httptest.NewRequest(http.MethodDelete, "/purposes/1", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusForbidden {
				assert.JSONEq(t, `{"detail":"insufficient role"}`, rec.Body.String())
			}
		})
	}
}

func TestRequireRole_Disabled(t *testing.T) {
	a := auth.New(auth.Config{Enabled: false})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/purposes/1", nil)
	rec := httptest.NewRecorder()

	a.RequireRole("admin")(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUsername(t *testing.T) {
	a := auth.New(testConfig())

	var actor *string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = auth.Username(r.Context())
	})

	req := httptest.NewRequest(http.MethodPut, "/purposes/1", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, nil))
	rec := httptest.NewRecorder()

	a.Middleware(next).ServeHTTP(rec, req)

	require.NotNil(t, actor)
	assert.Equal(t, "dana", *actor)
}
