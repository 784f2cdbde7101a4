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

type ArticleHandler struct {
	Articles *repo.ArticleRepo
}

type articleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
}

func (h *ArticleHandler) Create(c echo.Context) error {
	id := authmw.CurrentUser(c)
	if id == nil {
		return httperr.AuthRequired()
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return httperr.New(http.StatusBadRequest, "invalid body", httperr.CodeValidationError)
	}
	if req.Title == "" || req.Content == "" {
		return httperr.New(http.StatusBadRequest, "title and content are required", httperr.CodeValidationError)
	}

	article := models.Article{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		UserID:  id.ID,
	}
	if err := h.Articles.Create(c.Request().Context(), &article); err != nil {
		logging.FromContext(c.Request().Context()).Error("create article failed", "error", err)
		return httperr.StoreError()
	}

	return c.JSON(http.StatusCreated, article)
}

func (h *ArticleHandler) GetAll(c echo.Context) error {
	articles, err := h.Articles.List(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("list articles failed", "error", err)
		return httperr.StoreError()
	}
	return c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) GetByID(c echo.Context) error {
	articleID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	article, err := h.Articles.GetByID(c.Request().Context(), articleID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return httperr.NotFound("Article")
		}
		logging.FromContext(c.Request().Context()).Error("get article failed", "error", err)
		return httperr.StoreError()
	}
	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) Update(c echo.Context) error {
	articleID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	article, err := h.Articles.GetByID(c.Request().Context(), articleID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return httperr.NotFound("Article")
		}
		logging.FromContext(c.Request().Context()).Error("get article failed", "error", err)
		return httperr.StoreError()
	}

	if err := authmw.VerifyOwnership(authmw.CurrentUser(c), article.UserID); err != nil {
		return err
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return httperr.New(http.StatusBadRequest, "invalid body", httperr.CodeValidationError)
	}
	if req.Title == "" || req.Content == "" {
		return httperr.New(http.StatusBadRequest, "title and content are required", httperr.CodeValidationError)
	}

	article.Title = req.Title
	article.Content = req.Content
	article.Tags = req.Tags
	if err := h.Articles.Update(c.Request().Context(), article); err != nil {
		logging.FromContext(c.Request().Context()).Error("update article failed", "error", err)
		return httperr.StoreError()
	}

	return c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) Delete(c echo.Context) error {
	articleID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	article, err := h.Articles.GetByID(c.Request().Context(), articleID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return httperr.NotFound("Article")
		}
		logging.FromContext(c.Request().Context()).Error("get article failed", "error", err)
		return httperr.StoreError()
	}

	if err := authmw.VerifyOwnership(authmw.CurrentUser(c), article.UserID); err != nil {
		return err
	}

	if err := h.Articles.Delete(c.Request().Context(), articleID); err != nil {
		logging.FromContext(c.Request().Context()).Error("delete article failed", "error", err)
		return httperr.StoreError()
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Article deleted successfully"})
}
