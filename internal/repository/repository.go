package repository

import "gorm.io/gorm"

// Repositories 仓库集合，用于统一管理所有仓库
// 字段为接口类型，测试中可直接以 mock 实现替换
type Repositories struct {
	DB         *gorm.DB // 直接访问数据库
	Students   StudentRepository
	Artifacts  ArtifactRepository
	Interviews InterviewRepository
	Turns      TurnRecorder
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:         db,
		Students:   NewStudentRepository(db),
		Artifacts:  NewArtifactRepository(db),
		Interviews: NewInterviewRepository(db),
		Turns:      NewTurnRecorder(db),
	}
}
