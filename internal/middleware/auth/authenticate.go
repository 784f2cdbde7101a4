// Package auth implements the request authentication and authorization chain:
// bearer extraction, revocation lookup, token verification, claim shape
// checks, and the role/ownership guards layered behind them.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/samuelhany-cpu/blogging-platform/internal/httperr"
	"github.com/samuelhany-cpu/blogging-platform/internal/logging"
	"github.com/samuelhany-cpu/blogging-platform/internal/metrics"
	"github.com/samuelhany-cpu/blogging-platform/internal/revocation"
	"github.com/samuelhany-cpu/blogging-platform/internal/tokens"
)

const (
	identityContextKey = "auth.identity"
	tokenContextKey    = "auth.token"
)

type Middleware struct {
	Tokens   *tokens.Service
	Registry revocation.Registry
}

func NewMiddleware(svc *tokens.Service, registry revocation.Registry) *Middleware {
	return &Middleware{Tokens: svc, Registry: registry}
}

// Authenticate validates the bearer token on the request and attaches the
// decoded identity plus the raw token value for downstream handlers.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			return fail(httperr.TokenMissing())
		}

		revoked, err := m.Registry.IsRevoked(c.Request().Context(), token)
		if err != nil {
			logging.FromContext(c.Request().Context()).Error("revocation lookup failed", "error", err)
			return fail(httperr.StoreError())
		}
		if revoked {
			return fail(httperr.TokenRevoked())
		}

		if len(m.Tokens.Secret) == 0 {
			logging.FromContext(c.Request().Context()).Error("deployment defect: JWT signing secret not configured")
			return fail(httperr.ConfigError())
		}

		claims, err := m.Tokens.ParseAccessClaims(token)
		if err != nil {
			return fail(verifyError(err))
		}

		// A refresh token verifies under the same secret and issuer but
		// carries a type marker; it must never pass as an access token.
		if claims.UserID == 0 || claims.TokenType != "" {
			return fail(httperr.New(http.StatusForbidden, "Invalid token structure", httperr.CodeTokenInvalidStructure))
		}

		// Redundant with the parser's own expiry validation, on purpose: a
		// second opinion against the wall clock costs nothing and catches
		// claim-tampering or clock-skew edge cases.
		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
			return fail(httperr.New(http.StatusUnauthorized, "Token expired", httperr.CodeTokenExpired))
		}

		c.Set(identityContextKey, &tokens.Identity{
			ID:       claims.UserID,
			Email:    claims.Email,
			Role:     claims.Role,
			Username: claims.Username,
		})
		c.Set(tokenContextKey, token)

		return next(c)
	}
}

// extractBearer pulls the token out of an Authorization header. The literal
// "null" and "undefined" values show up when a browser client serializes an
// absent token; they count as missing.
func extractBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	token := strings.TrimSpace(parts[1])
	if token == "" || token == "null" || token == "undefined" {
		return ""
	}
	return token
}

func verifyError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, tokens.ErrTokenExpired):
		return httperr.New(http.StatusForbidden, "Token expired", httperr.CodeTokenExpired)
	case errors.Is(err, tokens.ErrTokenNotActive):
		return httperr.New(http.StatusForbidden, "Token not active", httperr.CodeTokenNotActive)
	default:
		return httperr.New(http.StatusForbidden, "Malformed token", httperr.CodeTokenMalformed)
	}
}

func fail(he *echo.HTTPError) *echo.HTTPError {
	if body, ok := he.Message.(httperr.Body); ok {
		metrics.AuthFailures.WithLabelValues(body.Code).Inc()
	}
	return he
}

// CurrentUser returns the identity attached by Authenticate, or nil.
func CurrentUser(c echo.Context) *tokens.Identity {
	if id, ok := c.Get(identityContextKey).(*tokens.Identity); ok {
		return id
	}
	return nil
}

// CurrentToken returns the raw bearer token attached by Authenticate. Logout
// uses it to revoke the in-flight token.
func CurrentToken(c echo.Context) string {
	if t, ok := c.Get(tokenContextKey).(string); ok {
		return t
	}
	return ""
}
