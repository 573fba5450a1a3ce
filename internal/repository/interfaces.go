// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import (
	"context"

	"github.com/skillsense/skillsense-ai/internal/model"
)

// ========== StudentRepository 接口 ==========

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
}

// ========== ArtifactRepository 接口 ==========

// ArtifactRepository 题目数据访问接口
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *model.Artifact) error
	GetByID(ctx context.Context, id string) (*model.Artifact, error)
	// GetRandomByLevel 按水平均匀随机抽取一道题目；无匹配时返回 gorm.ErrRecordNotFound
	GetRandomByLevel(ctx context.Context, level string) (*model.Artifact, error)
}

// ========== InterviewRepository 接口 ==========

// InterviewRepository 面试记录数据访问接口
type InterviewRepository interface {
	Create(ctx context.Context, interview *model.Interview) error
	GetByID(ctx context.Context, id string) (*model.Interview, error)
	Update(ctx context.Context, interview *model.Interview) error
}

// ========== TurnRecorder 接口 ==========

// TurnRecorder 对话轮次的读写接口
// AppendStep 保证一次 step 产生的所有行要么全部落库要么全部不落库，
// 并通过乐观的 turn_number 校验串行化同一面试上的并发写入
type TurnRecorder interface {
	// AppendStep 原子地插入 inserts、把 respondIDs 对应行标记为 responded、
	// 把 discardIDs 对应行标记为 discarded，并在 metadata 非 nil 时同步更新
	// 面试的策略状态。
	// 事务内校验：面试未结束；当前最大 turn_number 仍等于 expectedLastTurn；
	// 插入学生行时该轮次尚无学生行。校验失败返回 types.ErrStorageConflict
	// 或 types.ErrInterviewEnded，且不产生任何写入。
	AppendStep(ctx context.Context, interviewID string, expectedLastTurn int, inserts []*model.ConversationTurn, respondIDs, discardIDs []string, metadata *string) error

	// ListByInterview 返回全量历史，按 turn_number、turn_id、ordinal 排序
	ListByInterview(ctx context.Context, interviewID string) ([]*model.ConversationTurn, error)

	// ListByTurnNumber 返回某一轮次的全部行，排序同上
	ListByTurnNumber(ctx context.Context, interviewID string, turnNumber int) ([]*model.ConversationTurn, error)

	// MaxTurnNumber 已持久化的最大 turn_number，无记录时为 -1
	MaxTurnNumber(ctx context.Context, interviewID string) (int, error)

	// UpdateTurns 在单个事务中保存多行修改（候选选择、参考概念修正）
	UpdateTurns(ctx context.Context, turns []*model.ConversationTurn) error
}

// 确保实现满足接口
var (
	_ StudentRepository   = (*studentRepositoryImpl)(nil)
	_ ArtifactRepository  = (*artifactRepositoryImpl)(nil)
	_ InterviewRepository = (*interviewRepositoryImpl)(nil)
	_ TurnRecorder        = (*turnRecorderImpl)(nil)
)
