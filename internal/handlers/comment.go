package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/samuelhany-cpu/blogging-platform/internal/httperr"
	"github.com/samuelhany-cpu/blogging-platform/internal/logging"
	authmw "github.com/samuelhany-cpu/blogging-platform/internal/middleware/auth"
	"github.com/samuelhany-cpu/blogging-platform/internal/models"
	"github.com/samuelhany-cpu/blogging-platform/internal/repo"
)

type CommentHandler struct {
	Comments *repo.CommentRepo
	Articles *repo.ArticleRepo
}

func (h *CommentHandler) Add(c echo.Context) error {
	id := authmw.CurrentUser(c)
	if id == nil {
		return httperr.AuthRequired()
	}

	articleID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil || req.Content == "" {
		return httperr.New(http.StatusBadRequest, "content is required", httperr.CodeValidationError)
	}

	if _, err := h.Articles.GetByID(c.Request().Context(), articleID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return httperr.NotFound("Article")
		}
		logging.FromContext(c.Request().Context()).Error("get article failed", "error", err)
		return httperr.StoreError()
	}

	comment := models.Comment{
		ArticleID: articleID,
		UserID:    id.ID,
		Content:   req.Content,
	}
	if err := h.Comments.Create(c.Request().Context(), &comment); err != nil {
		logging.FromContext(c.Request().Context()).Error("create comment failed", "error", err)
		return httperr.StoreError()
	}

	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) ListByArticle(c echo.Context) error {
	articleID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.Comments.ListByArticle(c.Request().Context(), articleID)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("list comments failed", "error", err)
		return httperr.StoreError()
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) Edit(c echo.Context) error {
	commentID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.Comments.GetByID(c.Request().Context(), commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return httperr.NotFound("Comment")
		}
		logging.FromContext(c.Request().Context()).Error("get comment failed", "error", err)
		return httperr.StoreError()
	}

	if err := authmw.VerifyOwnership(authmw.CurrentUser(c), comment.UserID); err != nil {
		return err
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil || req.Content == "" {
		return httperr.New(http.StatusBadRequest, "content is required", httperr.CodeValidationError)
	}

	comment.Content = req.Content
	if err := h.Comments.Update(c.Request().Context(), comment); err != nil {
		logging.FromContext(c.Request().Context()).Error("update comment failed", "error", err)
		return httperr.StoreError()
	}

	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c echo.Context) error {
	commentID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	comment, err := h.Comments.GetByID(c.Request().Context(), commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return httperr.NotFound("Comment")
		}
		logging.FromContext(c.Request().Context()).Error("get comment failed", "error", err)
		return httperr.StoreError()
	}

	if err := authmw.VerifyOwnership(authmw.CurrentUser(c), comment.UserID); err != nil {
		return err
	}

	if err := h.Comments.Delete(c.Request().Context(), commentID); err != nil {
		logging.FromContext(c.Request().Context()).Error("delete comment failed", "error", err)
		return httperr.StoreError()
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully"})
}
