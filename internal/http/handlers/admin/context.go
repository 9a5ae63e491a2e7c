package admin

import (
	handlershared "github.com/yhdfc-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "admin_id", "error.admin_id_invalid", "error.internal_error")
}

func parseID(c *gin.Context, invalidKey string) (uint, bool) {
	return handlershared.ParseIDParam(c, "id", invalidKey)
}
