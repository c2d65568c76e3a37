package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/audit"
	"github.com/openshelf/openshelf/internal/database/users"
	"github.com/openshelf/openshelf/internal/entities"
)

// AdminUsersController lists reader profiles and manages role assignments.
type AdminUsersController struct {
	users        UserReader
	roles        RoleWriter
	auditService *audit.Service
}

func NewAdminUsersController(userStore UserReader, roleStore RoleWriter, auditService *audit.Service) *AdminUsersController {
	return &AdminUsersController{users: userStore, roles: roleStore, auditService: auditService}
}

// userView strips credential fields from the profile representation.
type userView struct {
	ID        uint   `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func (controller *AdminUsersController) toUserView(user *entities.User) userView {
	role := string(access.RoleUser)
	if assigned, err := controller.roles.GetRole(user.ID); err == nil && assigned != "" {
		role = string(access.ParseRole(assigned))
	}
	return userView{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      role,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ListUsers handles GET /admin/api/users.
func (controller *AdminUsersController) ListUsers(c *gin.Context) {
	limit, offset := parsePagination(c)

	list, total, err := controller.users.List(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}

	views := make([]userView, 0, len(list))
	for i := range list {
		views = append(views, controller.toUserView(&list[i]))
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    views,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(views)) < total,
	})
}

type setRoleRequest struct {
	Role string `json:"role"`
}

// SetRole handles PUT /admin/api/users/:id/role. Only "user" and "admin"
// are accepted; setting "user" clears any explicit assignment since that
// is the default for known users.
func (controller *AdminUsersController) SetRole(c *gin.Context) {
	targetID, err := parsePositiveInt(c.Param("id"))
	if err != nil || targetID <= 0 {
		respondBadRequest(c, "invalid user id")
		return
	}

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	role := access.Role(req.Role)
	if role != access.RoleUser && role != access.RoleAdmin {
		respondBadRequest(c, "role must be one of: user, admin")
		return
	}

	if _, err := controller.users.GetByID(uint(targetID)); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}

	if role == access.RoleUser {
		err = controller.roles.ClearRole(uint(targetID))
	} else {
		err = controller.roles.SetRole(uint(targetID), string(role))
	}
	if err != nil {
		respondInternalError(c, err, "set role")
		return
	}

	controller.auditService.LogRoleChange(GetUserID(c), uint(targetID), string(role))
	respondSuccess(c, "role updated")
}
