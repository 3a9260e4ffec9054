// Package auth verifies HMAC-signed bearer tokens and carries the caller
// identity through the request context. With auth disabled every request
// passes through anonymously, which is how the TUI and local setups run.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rechesh-io/rechesh/internal/http/respond"
)

// Config holds the token verification settings.
type Config struct {
	Enabled  bool
	Secret   string
	Issuer   string
	Audience string
}

// User is the authenticated caller as handlers and services see it.
type User struct {
	Subject  string
	Email    string
	Username string
	Roles    []string
}

type claims struct {
	Email    string   `json:"email"`
	Username string   `json:"preferred_username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

type contextKey struct{}

// Authenticator validates bearer tokens on incoming requests.
type Authenticator struct {
	cfg Config
}

func New(cfg Config) *Authenticator {
	return &Authenticator{cfg: cfg}
}

// Middleware rejects requests without a valid token and stores the
// caller in the request context for handlers downstream.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			unauthorized(w)
			return
		}

		user, err := a.verify(token)
		if err != nil {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// RequireRole guards a route behind a role claim. It expects Middleware
// to have run already; with auth disabled it passes everything through.
func (a *Authenticator) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			user, ok := UserFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if !slices.Contains(user.Roles, role) {
				respond.Detail(w, http.StatusForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *Authenticator) verify(tokenString string) (*User, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Header["alg"])
		}
		return []byte(a.cfg.Secret), nil
	}, jwt.WithIssuer(a.cfg.Issuer), jwt.WithAudience(a.cfg.Audience))
	if err != nil {
		return nil, err
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &User{
		Subject:  c.Subject,
		Email:    c.Email,
		Username: c.Username,
		Roles:    c.Roles,
	}, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}

	return token, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respond.Detail(w, http.StatusUnauthorized, "invalid or missing credentials")
}

func withUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// UserFromContext returns the authenticated caller, or false when the
// request was anonymous.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextKey{}).(*User)
	return u, ok
}

// Username adapts the context user to the nullable actor the purpose
// service records on status changes.
func Username(ctx context.Context) *string {
	u, ok := UserFromContext(ctx)
	if !ok || u.Username == "" {
		return nil
	}

	return &u.Username
}
