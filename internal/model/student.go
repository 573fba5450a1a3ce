package model

import "time"

// 学生水平枚举
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelExpert       = "expert"
	LevelUnknown      = "unknown"
)

// StudentLevels 合法的学生水平集合
var StudentLevels = []string{LevelBeginner, LevelIntermediate, LevelExpert, LevelUnknown}

// ValidStudentLevel 判断学生水平是否合法
func ValidStudentLevel(level string) bool {
	for _, l := range StudentLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Student 受访学生
type Student struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	Level               string     `gorm:"size:20;index" json:"level"`
	KnowledgeComponents StringList `gorm:"type:text" json:"knowledge_components"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Student) TableName() string {
	return "students"
}
