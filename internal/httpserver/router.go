package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samuelhany-cpu/blogging-platform/internal/handlers"
	authmw "github.com/samuelhany-cpu/blogging-platform/internal/middleware/auth"
	"github.com/samuelhany-cpu/blogging-platform/internal/middleware/ratelimit"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ArticleHandler *handlers.ArticleHandler
	CommentHandler *handlers.CommentHandler
	UserHandler    *handlers.UserHandler
	Auth           *authmw.Middleware
	LoginLimiter   *ratelimit.Limiter
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register, d.LoginLimiter.Middleware)
	v1.POST("/login", d.AuthHandler.Login, d.LoginLimiter.Middleware)
	v1.POST("/refresh", d.AuthHandler.Refresh)
	v1.POST("/logout", d.AuthHandler.Logout, d.Auth.Authenticate)

	v1.GET("/articles", d.ArticleHandler.GetAll)
	v1.GET("/articles/:id", d.ArticleHandler.GetByID)
	v1.POST("/articles", d.ArticleHandler.Create, d.Auth.Authenticate)
	v1.PUT("/articles/:id", d.ArticleHandler.Update, d.Auth.Authenticate)
	v1.DELETE("/articles/:id", d.ArticleHandler.Delete, d.Auth.Authenticate)

	v1.GET("/articles/:id/comments", d.CommentHandler.ListByArticle)
	v1.POST("/articles/:id/comments", d.CommentHandler.Add, d.Auth.Authenticate)
	v1.PUT("/comments/:id", d.CommentHandler.Edit, d.Auth.Authenticate)
	v1.DELETE("/comments/:id", d.CommentHandler.Delete, d.Auth.Authenticate)

	users := v1.Group("/users", d.Auth.Authenticate)
	users.GET("/:id/profile", d.UserHandler.Profile)
	users.GET("/:id/articles", d.UserHandler.UserArticles)

	admin := v1.Group("/admin", d.Auth.Authenticate, authmw.RequireRole(authmw.RoleAdmin))
	admin.GET("/users", d.UserHandler.ListUsers)
}
