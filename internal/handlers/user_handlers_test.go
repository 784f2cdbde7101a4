package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelhany-cpu/blogging-platform/internal/httperr"
	"github.com/samuelhany-cpu/blogging-platform/internal/models"
)

func TestAdminUsers_RequiresAdminRole(t *testing.T) {
	app := newTestApp(t)

	userAccess, _, userID := app.registerAndLogin(t, "alice", "a@x.com", "Str0ng!Pass1")

	rec := app.do(t, http.MethodGet, "/api/v1/admin/users", userAccess, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, httperr.CodeInsufficientPerms, decodeBody(t, rec)["code"])

	require.NoError(t, app.db.Model(&models.User{}).Where("id = ?", userID).Update("role", "admin").Error)
	rec = app.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email": "a@x.com", "password": "Str0ng!Pass1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	adminAccess := decodeBody(t, rec)["accessToken"].(string)

	rec = app.do(t, http.MethodGet, "/api/v1/admin/users", adminAccess, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	users := decodeBody(t, rec)["users"].([]any)
	require.Len(t, users, 1)

	first := users[0].(map[string]any)
	assert.Equal(t, "alice", first["username"])
	assert.NotContains(t, first, "password_hash")
	assert.NotContains(t, first, "refresh_token")
}

func TestUserProfile_MissingUserIs404(t *testing.T) {
	app := newTestApp(t)

	access, _, _ := app.registerAndLogin(t, "alice", "a@x.com", "Str0ng!Pass1")

	rec := app.do(t, http.MethodGet, "/api/v1/users/9999/profile", access, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httperr.CodeNotFound, decodeBody(t, rec)["code"])
}

func TestUserArticles_ListsOwnArticles(t *testing.T) {
	app := newTestApp(t)

	access, _, userID := app.registerAndLogin(t, "alice", "a@x.com", "Str0ng!Pass1")

	for _, title := range []string{"one", "two"} {
		rec := app.do(t, http.MethodPost, "/api/v1/articles", access, map[string]string{
			"title": title, "content": "body",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := app.do(t, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/articles", userID), access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var articles []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	assert.Len(t, articles, 2)
}
