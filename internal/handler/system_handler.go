package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillsense/skillsense-ai/internal/service"
)

// SystemHandler 系统处理器
type SystemHandler struct {
	svc *service.Services
	db  *gorm.DB
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(svc *service.Services) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// WithDB 注入数据库连接用于健康检查
func (h *SystemHandler) WithDB(db *gorm.DB) *SystemHandler {
	h.db = db
	return h
}

// Health 健康检查
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListPolicies 列出可用的提问策略
// GET /api/v1/policies
func (h *SystemHandler) ListPolicies(c *gin.Context) {
	success(c, gin.H{
		"policies": h.svc.Selector.Policies(),
		"default":  h.svc.Config.Interview.DefaultPolicy,
	})
}
