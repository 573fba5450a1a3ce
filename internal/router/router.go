package router

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsense/skillsense-ai/internal/config"
	"github.com/skillsense/skillsense-ai/internal/handler"
	"github.com/skillsense/skillsense-ai/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))

	// 健康检查
	r.GET("/health", h.System.Health)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Policy 策略
		v1.GET("/policies", h.System.ListPolicies)

		// Interview 面试会话
		interviews := v1.Group("/interviews")
		{
			interviews.POST("", h.Interview.CreateInterview)
			interviews.GET("/:id", h.Interview.GetInterview)
			interviews.GET("/:id/interviewer", h.Interview.GetSuggestedTurn)
			interviews.POST("/:id/student", h.Interview.SubmitResponse)
			interviews.POST("/:id/suggestions/:index/select", h.Interview.SelectSuggestion)
			interviews.PUT("/:id/turns/:turn_number/reference-concepts", h.Interview.SetReferenceConcepts)
			interviews.POST("/:id/end", h.Interview.EndInterview)
		}
	}

	return r
}
