package model

import "time"

// Artifact 面试所围绕的题目/解答对
type Artifact struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Level            string    `gorm:"size:20;index" json:"level"`
	ProblemStatement string    `gorm:"type:text" json:"problem_statement"`
	ProblemSolution  string    `gorm:"type:text" json:"problem_solution"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Artifact) TableName() string {
	return "artifacts"
}
