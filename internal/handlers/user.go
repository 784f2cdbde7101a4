package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samuelhany-cpu/blogging-platform/internal/httperr"
	"github.com/samuelhany-cpu/blogging-platform/internal/logging"
	"github.com/samuelhany-cpu/blogging-platform/internal/repo"
)

type UserHandler struct {
	Users    *repo.UserRepo
	Articles *repo.ArticleRepo
}

// ListUsers backs the admin user overview.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("list users failed", "error", err)
		return httperr.StoreError()
	}

	public := make([]any, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": public})
}

func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.Users.FindByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return httperr.NotFound("User")
		}
		logging.FromContext(c.Request().Context()).Error("get user failed", "error", err)
		return httperr.StoreError()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":       user.Public(),
		"created_at": user.CreatedAt,
	})
}

func (h *UserHandler) UserArticles(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.Users.FindByID(c.Request().Context(), userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return httperr.NotFound("User")
		}
		logging.FromContext(c.Request().Context()).Error("get user failed", "error", err)
		return httperr.StoreError()
	}

	articles, err := h.Articles.ListByUser(c.Request().Context(), userID)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("list user articles failed", "error", err)
		return httperr.StoreError()
	}
	return c.JSON(http.StatusOK, articles)
}
