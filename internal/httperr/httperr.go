// Package httperr defines the stable error codes returned by the API and the
// echo error handler that renders every failure as {"error": ..., "code": ...}.
package httperr

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samuelhany-cpu/blogging-platform/internal/logging"
)

const (
	CodeTokenMissing          = "TOKEN_MISSING"
	CodeTokenRevoked          = "TOKEN_REVOKED"
	CodeTokenMalformed        = "TOKEN_MALFORMED"
	CodeTokenExpired          = "TOKEN_EXPIRED"
	CodeTokenNotActive        = "TOKEN_NOT_ACTIVE"
	CodeTokenInvalidStructure = "TOKEN_INVALID_STRUCTURE"
	CodeConfigError           = "CONFIG_ERROR"
	CodeAuthRequired          = "AUTH_REQUIRED"
	CodeInsufficientPerms     = "INSUFFICIENT_PERMISSIONS"
	CodeNotOwner              = "NOT_OWNER"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeInvalidRefreshToken   = "INVALID_REFRESH_TOKEN"
	CodeStoreError            = "STORE_ERROR"
	CodeUserExists            = "USER_EXISTS"
	CodeValidationError       = "VALIDATION_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeTooManyRequests       = "TOO_MANY_REQUESTS"
)

// Body is the JSON shape of every error response.
type Body struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// New builds an echo.HTTPError whose message carries both the human text and
// the machine-readable code.
func New(status int, message, code string) *echo.HTTPError {
	return echo.NewHTTPError(status, Body{Error: message, Code: code})
}

func TokenMissing() *echo.HTTPError {
	return New(http.StatusUnauthorized, "Access token missing or invalid", CodeTokenMissing)
}

func TokenRevoked() *echo.HTTPError {
	return New(http.StatusUnauthorized, "Token has been revoked", CodeTokenRevoked)
}

func ConfigError() *echo.HTTPError {
	return New(http.StatusInternalServerError, "Server configuration error", CodeConfigError)
}

func AuthRequired() *echo.HTTPError {
	return New(http.StatusUnauthorized, "Authentication required", CodeAuthRequired)
}

func NotOwner() *echo.HTTPError {
	return New(http.StatusForbidden, "Access denied - not resource owner", CodeNotOwner)
}

func InvalidCredentials() *echo.HTTPError {
	return New(http.StatusUnauthorized, "Invalid credentials", CodeInvalidCredentials)
}

func StoreError() *echo.HTTPError {
	return New(http.StatusInternalServerError, "Internal server error", CodeStoreError)
}

func NotFound(what string) *echo.HTTPError {
	return New(http.StatusNotFound, what+" not found", CodeNotFound)
}

// ErrorHandler renders every error through the {error, code} contract. Internal
// detail never reaches the client; it is logged instead.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := Body{Error: "Internal server error", Code: CodeStoreError}

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch m := he.Message.(type) {
		case Body:
			body = m
		case string:
			body = Body{Error: m, Code: codeForStatus(status)}
		default:
			body = Body{Error: http.StatusText(status), Code: codeForStatus(status)}
		}
	} else {
		l := logging.FromContext(c.Request().Context())
		l.Error("unhandled error", "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return CodeAuthRequired
	case http.StatusForbidden:
		return CodeInsufficientPerms
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusBadRequest:
		return CodeValidationError
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	default:
		return CodeStoreError
	}
}
