package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillsense/skillsense-ai/internal/model"
)

// studentRepositoryImpl 学生数据访问
type studentRepositoryImpl struct {
	db *gorm.DB
}

// NewStudentRepository 创建学生仓库
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepositoryImpl{db: db}
}

// Create 创建学生
func (r *studentRepositoryImpl) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// GetByID 获取学生
func (r *studentRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Update 更新学生
func (r *studentRepositoryImpl) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}
