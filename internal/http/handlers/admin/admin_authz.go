package admin

import (
	"errors"

	"github.com/yhdfc-next/internal/authz"
	"github.com/yhdfc-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// ListAuthzRoles 获取角色列表及其策略
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzAdminRoles 获取管理员角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseID(c, "error.admin_id_invalid")
	if !ok {
		return
	}
	if !h.ensureAdminExists(c, adminID) {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}

// SetAuthzAdminRoles 覆盖设置管理员角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseID(c, "error.admin_id_invalid")
	if !ok {
		return
	}
	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.ensureAdminExists(c, adminID) {
		return
	}

	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondAuthzError(c, err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	requestLog(c).Infow("admin_authz_roles_updated", "target_admin_id", adminID, "roles", roles)
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}

func (h *Handler) ensureAdminExists(c *gin.Context, adminID uint) bool {
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return false
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return false
	}
	return true
}

func respondAuthzError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrRoleNotFound):
		respondError(c, response.CodeBadRequest, "error.role_not_found", nil)
	case errors.Is(err, authz.ErrRoleRequired):
		respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
	case errors.Is(err, authz.ErrUnavailable):
		respondError(c, response.CodeInternal, "error.authz_unavailable", err)
	default:
		respondError(c, response.CodeInternal, "error.internal_error", err)
	}
}
