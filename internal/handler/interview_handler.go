package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillsense/skillsense-ai/internal/service"
	"github.com/skillsense/skillsense-ai/internal/service/interview"
)

// InterviewHandler 面试处理器
type InterviewHandler struct {
	svc *service.Services
}

// NewInterviewHandler 创建面试处理器
func NewInterviewHandler(svc *service.Services) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

// CreateInterview 创建面试
// POST /api/v1/interviews
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	var req interview.CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	iv, err := h.svc.Interview.CreateInterview(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, iv)
}

// GetInterview 获取面试快照
// GET /api/v1/interviews/:id
func (h *InterviewHandler) GetInterview(c *gin.Context) {
	snapshot, err := h.svc.Interview.GetInterview(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, snapshot)
}

// GetSuggestedTurn 获取当前轮次的候选提问（幂等）
// 会话达到终止条件时直接结束面试并返回统计
// GET /api/v1/interviews/:id/interviewer
func (h *InterviewHandler) GetSuggestedTurn(c *gin.Context) {
	id := c.Param("id")

	questions, done, err := h.svc.Interview.GetSuggestedTurn(c.Request.Context(), id)
	if err != nil {
		errorResponse(c, err)
		return
	}

	if done && len(questions) == 0 {
		result, err := h.svc.Interview.EndInterview(c.Request.Context(), id)
		if err != nil {
			errorResponse(c, err)
			return
		}
		success(c, gin.H{"done": true, "summary": result})
		return
	}

	success(c, gin.H{
		"suggested_conversations": questions,
		"done":                    done,
	})
}

// SubmitResponse 提交学生回答
// POST /api/v1/interviews/:id/student
func (h *InterviewHandler) SubmitResponse(c *gin.Context) {
	var req struct {
		Response string `json:"response" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.svc.Interview.SubmitResponse(c.Request.Context(), c.Param("id"), req.Response)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, result)
}

// SelectSuggestion 在当前轮次候选提问中选定一条
// POST /api/v1/interviews/:id/suggestions/:index/select
func (h *InterviewHandler) SelectSuggestion(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "invalid suggestion index")
		return
	}

	if err := h.svc.Interview.SelectSuggestion(c.Request.Context(), c.Param("id"), index); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"status": "success"})
}

// SetReferenceConcepts 人工修正某轮回答的参考概念
// PUT /api/v1/interviews/:id/turns/:turn_number/reference-concepts
func (h *InterviewHandler) SetReferenceConcepts(c *gin.Context) {
	turnNumber, err := strconv.Atoi(c.Param("turn_number"))
	if err != nil {
		badRequest(c, "invalid turn number")
		return
	}

	var req struct {
		Concepts []string `json:"concepts" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.svc.Interview.SetReferenceConcepts(c.Request.Context(), c.Param("id"), turnNumber, req.Concepts); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"status": "success"})
}

// EndInterview 结束面试
// POST /api/v1/interviews/:id/end
func (h *InterviewHandler) EndInterview(c *gin.Context) {
	result, err := h.svc.Interview.EndInterview(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, result)
}
