package policy

import (
	"context"

	"github.com/skillsense/skillsense-ai/internal/model"
)

// Question 一条候选提问
type Question struct {
	Text      string `json:"question"`
	Rationale string `json:"rationale,omitempty"`
}

// Interaction 策略对"下一轮提问什么"的决定
type Interaction struct {
	Questions []Question
	// Metadata 随提问行持久化的附加信息（序列化 JSON）
	Metadata string
	// Terminate 策略自身的终止信号，独立于提问条数上限
	Terminate bool
}

// AnswerAnalysis 学生回答的分析结果
type AnswerAnalysis struct {
	ExtractedKCs    []string
	ReferenceKCs    []string
	ReferenceAnswer string
}

// HistoryTurn 提供给策略的对话历史视图
type HistoryTurn struct {
	Role       int // model.TurnInterviewer / model.TurnStudent
	Text       string
	TurnNumber int
}

// KnowledgeProfile 可插拔的知识画像能力
// 实现方会原地更新 state；调用方负责将更新后的 state 与轮次写入同一事务
type KnowledgeProfile interface {
	// GetNextInteraction 基于题目与对话历史产出下一轮候选提问
	GetNextInteraction(ctx context.Context, artifact *model.Artifact, history []HistoryTurn, state *State) (*Interaction, error)

	// GetKCsFromAnswer 从学生回答中抽取知识组件，并给出参考概念与参考答案
	GetKCsFromAnswer(ctx context.Context, question, answer string, state *State) (*AnswerAnalysis, error)
}
