package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsense/skillsense-ai/internal/service/types"
)

// Response 统一响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// success 成功响应 (200)
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// created 创建成功响应 (201)
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// badRequest 参数错误响应 (400)
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: -1, Message: msg})
}

// errorResponse 按错误分类映射 HTTP 状态码
func errorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrInvalidArgument), errors.Is(err, types.ErrInvalidPolicy):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidState), errors.Is(err, types.ErrInterviewEnded), errors.Is(err, types.ErrStorageConflict):
		status = http.StatusConflict
	case errors.Is(err, types.ErrUpstreamFailure):
		status = http.StatusBadGateway
	}
	c.JSON(status, Response{Code: -1, Message: err.Error()})
}
