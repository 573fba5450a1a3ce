package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillsense/skillsense-ai/internal/model"
)

// interviewRepositoryImpl 面试记录数据访问
type interviewRepositoryImpl struct {
	db *gorm.DB
}

// NewInterviewRepository 创建面试仓库
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepositoryImpl{db: db}
}

// Create 创建面试记录
func (r *interviewRepositoryImpl) Create(ctx context.Context, interview *model.Interview) error {
	return r.db.WithContext(ctx).Create(interview).Error
}

// GetByID 获取面试记录（不含轮次，历史由 TurnRecorder 单独加载）
func (r *interviewRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	var interview model.Interview
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&interview).Error
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// Update 更新面试记录
func (r *interviewRepositoryImpl) Update(ctx context.Context, interview *model.Interview) error {
	return r.db.WithContext(ctx).Save(interview).Error
}
