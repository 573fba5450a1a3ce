// Package types 定义跨服务共享的错误分类与传输无关的数据结构
// 独立成包以避免 service 与 handler 之间的循环导入
package types

import (
	"errors"
	"time"

	"github.com/skillsense/skillsense-ai/internal/model"
)

// 错误分类，handler 层据此映射 HTTP 状态码
var (
	// ErrNotFound 未知的面试/学生/题目 id
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument 非法字段、缺失必填项、选择序号越界
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState 无待回答提问时提交学生回答
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidPolicy 策略 id 不在允许列表内
	ErrInvalidPolicy = errors.New("invalid policy")
	// ErrInterviewEnded 对已结束的面试执行变更操作
	ErrInterviewEnded = errors.New("interview already ended")
	// ErrStorageConflict 并发追加竞争，内部重试一次后仍冲突才会对外暴露
	ErrStorageConflict = errors.New("storage conflict")
	// ErrUpstreamFailure 知识画像（LLM）调用失败或超时，可安全重试
	ErrUpstreamFailure = errors.New("upstream failure")
)

// SuggestedQuestion 当前轮次的候选提问
type SuggestedQuestion struct {
	TurnNumber int    `json:"turn_number"`
	Index      int    `json:"index"`
	Question   string `json:"question"`
	Metadata   string `json:"metadata,omitempty"`
	Responded  bool   `json:"responded"`
}

// InterviewSnapshot 面试完整快照
type InterviewSnapshot struct {
	Interview *model.Interview          `json:"interview"`
	Student   *model.Student            `json:"student"`
	Artifact  *model.Artifact           `json:"artifact"`
	Turns     []*model.ConversationTurn `json:"turns"`
}

// SubmitResult 学生回答的处理结果
type SubmitResult struct {
	ProcessedAnswer string           `json:"processed_answer"`
	ReferenceAnswer string           `json:"reference_answer"`
	ExtractedKCs    model.StringList `json:"extracted_kcs"`
	ReferenceKCs    model.StringList `json:"reference_kcs"`
	Metadata        string           `json:"metadata,omitempty"`
	Done            bool             `json:"done"`
}

// EndResult 面试终止的统计信息
type EndResult struct {
	InterviewID string `json:"interview_id"`
	TotalTurns  int    `json:"total_conversation_turns"`
	// Duration 首末两条记录的时间差；不足两条时为 nil
	Duration *time.Duration `json:"total_time_taken,omitempty"`
}
