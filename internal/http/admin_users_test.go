package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/audit"
	"github.com/openshelf/openshelf/internal/database"
	auditrepo "github.com/openshelf/openshelf/internal/database/audit"
	"github.com/openshelf/openshelf/internal/database/roles"
	"github.com/openshelf/openshelf/internal/database/users"
	"github.com/openshelf/openshelf/internal/entities"
)

func newAdminUsersRouter(db *database.Database) (*gin.Engine, *users.Repository, *roles.Repository) {
	userRepo := users.NewRepository(db.DB)
	roleRepo := roles.NewRepository(db.DB)
	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	controller := NewAdminUsersController(userRepo, roleRepo, auditService)

	router := gin.New()
	router.Use(withIdentity(1, access.RoleAdmin))
	router.GET("/admin/api/users", controller.ListUsers)
	router.PUT("/admin/api/users/:id/role", controller.SetRole)
	return router, userRepo, roleRepo
}

func seedUser(t *testing.T, repo *users.Repository, email string) *entities.User {
	t.Helper()
	user := &entities.User{FullName: "Jane Reader", Email: email, PasswordHash: "x"}
	require.NoError(t, repo.Create(user))
	return user
}

func TestAdminUsersController_ListUsers(t *testing.T) {
	t.Run("lists profiles with resolved roles and no credentials", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		router, userRepo, roleRepo := newAdminUsersRouter(db)
		reader := seedUser(t, userRepo, "reader@example.com")
		admin := seedUser(t, userRepo, "admin@example.com")
		require.NoError(t, roleRepo.SetRole(admin.ID, "admin"))
		_ = reader

		w := performRequest(router, "GET", "/admin/api/users", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password")

		var response PaginatedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, int64(2), response.Total)

		body := w.Body.String()
		assert.Contains(t, body, `"role":"admin"`)
		assert.Contains(t, body, `"role":"user"`)
	})
}

func TestAdminUsersController_SetRole(t *testing.T) {
	t.Run("grants the admin role", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		router, userRepo, roleRepo := newAdminUsersRouter(db)
		user := seedUser(t, userRepo, "reader@example.com")

		w := performRequest(router, "PUT", "/admin/api/users/"+itoa(user.ID)+"/role", strings.NewReader(`{"role":"admin"}`))
		assert.Equal(t, http.StatusOK, w.Code)

		role, err := roleRepo.GetRole(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "admin", role)
	})

	t.Run("setting user clears the explicit assignment", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		router, userRepo, roleRepo := newAdminUsersRouter(db)
		user := seedUser(t, userRepo, "reader@example.com")
		require.NoError(t, roleRepo.SetRole(user.ID, "admin"))

		w := performRequest(router, "PUT", "/admin/api/users/"+itoa(user.ID)+"/role", strings.NewReader(`{"role":"user"}`))
		assert.Equal(t, http.StatusOK, w.Code)

		role, err := roleRepo.GetRole(user.ID)
		require.NoError(t, err)
		assert.Empty(t, role)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		router, userRepo, _ := newAdminUsersRouter(db)
		user := seedUser(t, userRepo, "reader@example.com")

		w := performRequest(router, "PUT", "/admin/api/users/"+itoa(user.ID)+"/role", strings.NewReader(`{"role":"superuser"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		router, _, _ := newAdminUsersRouter(db)

		w := performRequest(router, "PUT", "/admin/api/users/999/role", strings.NewReader(`{"role":"admin"}`))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects a non-numeric id", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		router, _, _ := newAdminUsersRouter(db)

		w := performRequest(router, "PUT", "/admin/api/users/abc/role", strings.NewReader(`{"role":"admin"}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
