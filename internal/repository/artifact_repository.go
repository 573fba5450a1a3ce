package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillsense/skillsense-ai/internal/model"
)

// artifactRepositoryImpl 题目数据访问
type artifactRepositoryImpl struct {
	db *gorm.DB
}

// NewArtifactRepository 创建题目仓库
func NewArtifactRepository(db *gorm.DB) ArtifactRepository {
	return &artifactRepositoryImpl{db: db}
}

// Create 创建题目
func (r *artifactRepositoryImpl) Create(ctx context.Context, artifact *model.Artifact) error {
	return r.db.WithContext(ctx).Create(artifact).Error
}

// GetByID 获取题目
func (r *artifactRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Artifact, error) {
	var artifact model.Artifact
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&artifact).Error
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// GetRandomByLevel 按水平随机抽取一道题目
func (r *artifactRepositoryImpl) GetRandomByLevel(ctx context.Context, level string) (*model.Artifact, error) {
	var artifact model.Artifact
	query := r.db.WithContext(ctx)
	if level != "" && level != model.LevelUnknown {
		query = query.Where("level = ?", level)
	}
	err := query.Order("random()").First(&artifact).Error
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}
