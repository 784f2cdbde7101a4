package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/samuelhany-cpu/blogging-platform/internal/httperr"
)

// paramID parses a numeric URL parameter once, at the boundary. Everything
// downstream compares ids as uints only.
func paramID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, httperr.New(http.StatusBadRequest, "invalid "+name+" parameter", httperr.CodeValidationError)
	}
	return uint(id), nil
}
