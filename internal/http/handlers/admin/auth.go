package admin

import (
	"errors"

	"github.com/yhdfc-next/internal/constants"
	handlershared "github.com/yhdfc-next/internal/http/handlers/shared"
	"github.com/yhdfc-next/internal/http/response"
	"github.com/yhdfc-next/internal/i18n"
	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求，支持表单与 JSON
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	handlershared.CaptchaPayloadRequest
}

// AdminProfile 登录后返回的管理员信息
type AdminProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsSuper  bool   `json:"is_super"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   string       `json:"expires_at"`
	Admin       AdminProfile `json:"admin"`
}

func toAdminProfile(admin *models.Admin) AdminProfile {
	return AdminProfile{
		ID:       admin.ID,
		Username: admin.Username,
		Email:    admin.Email,
		FullName: admin.FullName,
		IsSuper:  admin.IsSuper,
	}
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneLogin, req.CaptchaPayloadRequest) {
		return
	}

	result, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.login_failed", nil)
		case errors.Is(err, service.ErrAdminDisabled):
			respondError(c, response.CodeForbidden, "error.admin_disabled", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal_error", err)
		}
		return
	}

	response.Success(c, LoginResponse{
		AccessToken: result.Token,
		TokenType:   service.TokenTypeBearer,
		ExpiresAt:   result.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		Admin:       toAdminProfile(result.Admin),
	})
}

// AdminLogout 登出，已签发的 token 全部失效
func (h *Handler) AdminLogout(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(c.Request.Context(), adminID); err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// GetAdminMe 当前管理员信息与角色
func (h *Handler) GetAdminMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.GetAdmin(adminID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	roles := []string{}
	if !admin.IsSuper {
		assigned, err := h.AuthzService.GetAdminRoles(adminID)
		if err != nil {
			requestLog(c).Warnw("admin_me_roles_failed", "admin_id", adminID, "error", err)
		} else {
			roles = assigned
		}
	}

	response.Success(c, gin.H{
		"admin": toAdminProfile(admin),
		"roles": roles,
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(c.Request.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			respondError(c, response.CodeBadRequest, "error.password_old_invalid", nil)
			return
		}
		if errors.Is(err, service.ErrWeakPassword) {
			locale := i18n.ResolveLocale(c)
			if perr, ok := err.(interface {
				Key() string
				Args() []interface{}
			}); ok {
				respondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(locale, perr.Key(), perr.Args()...), nil)
				return
			}
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}
