package model

import "time"

// 对话轮次角色
const (
	TurnInterviewer = 0 // 面试官提问
	TurnStudent     = 1 // 学生回答
)

// Interview 一次端到端的多轮面试会话
type Interview struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	StudentID  string    `gorm:"index;size:36" json:"student_id"`
	ArtifactID string    `gorm:"index;size:36" json:"artifact_id"`
	PolicyID   string    `gorm:"size:50;index" json:"policy_id"`
	// Metadata 保存策略内部状态（带 schema 版本的 JSON blob），对会话层不透明
	Metadata  string             `gorm:"type:text" json:"metadata,omitempty"`
	Ended     bool               `gorm:"default:false;index" json:"ended"`
	CreatedAt time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	Turns     []ConversationTurn `gorm:"foreignKey:InterviewID" json:"turns,omitempty"`
}

// ConversationTurn 单条持久化的对话事件（提问或回答）
// 同一 turn_number 下可能有多条面试官候选提问，ordinal 记录候选顺序
type ConversationTurn struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	InterviewID        string     `gorm:"index;size:36" json:"interview_id"`
	TurnNumber         int        `gorm:"index" json:"turn_number"`
	TurnID             int        `gorm:"index" json:"turn_id"` // 0=interviewer, 1=student
	Ordinal            int        `gorm:"default:0" json:"ordinal"`
	IsResponseQuestion bool       `gorm:"default:false" json:"is_response_question"`
	Response           string     `gorm:"type:text" json:"response"`
	Reference          string     `gorm:"type:text" json:"reference,omitempty"`
	ReferenceKCs       StringList `gorm:"type:text" json:"reference_kcs"`
	ExtractedKCs       StringList `gorm:"type:text" json:"extracted_kcs"`
	Metadata           string     `gorm:"type:text" json:"metadata,omitempty"`
	Responded          bool       `gorm:"default:false;index" json:"responded"`
	Discarded          bool       `gorm:"default:false" json:"discarded"`
	Timestamp          time.Time  `gorm:"index" json:"timestamp"`
}

// TableName 指定表名
func (Interview) TableName() string {
	return "interviews"
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}
