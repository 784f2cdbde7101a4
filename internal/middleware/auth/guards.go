package auth

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/samuelhany-cpu/blogging-platform/internal/httperr"
	"github.com/samuelhany-cpu/blogging-platform/internal/tokens"
)

const RoleAdmin = "admin"

// RequireRole only lets identities with one of the allowed roles through.
// It expects Authenticate to have run first.
func RequireRole(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := CurrentUser(c)
			if id == nil {
				return fail(httperr.AuthRequired())
			}

			role := id.Role
			if role == "" {
				role = "user"
			}
			if !slices.Contains(allowed, role) {
				return fail(httperr.New(http.StatusForbidden, "Insufficient permissions", httperr.CodeInsufficientPerms))
			}

			return next(c)
		}
	}
}

// VerifyOwnership checks that the caller owns the resource, with admin as a
// universal override. Both sides are canonical numeric ids; any parsing from
// URL params or bodies must have happened at the boundary already.
func VerifyOwnership(id *tokens.Identity, resourceOwnerID uint) error {
	if id == nil {
		return fail(httperr.AuthRequired())
	}
	if id.ID != resourceOwnerID && id.Role != RoleAdmin {
		return fail(httperr.NotOwner())
	}
	return nil
}
