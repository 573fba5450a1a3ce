package handler

import (
	"github.com/skillsense/skillsense-ai/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Interview *InterviewHandler
	System    *SystemHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Interview: NewInterviewHandler(svc),
		System:    NewSystemHandler(svc),
	}
}
