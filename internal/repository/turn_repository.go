package repository

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"github.com/skillsense/skillsense-ai/internal/model"
	"github.com/skillsense/skillsense-ai/internal/service/types"
)

// turnRecorderImpl 对话轮次读写，负责一次 step 的全有或全无落库
type turnRecorderImpl struct {
	db *gorm.DB
}

// NewTurnRecorder 创建轮次记录器
func NewTurnRecorder(db *gorm.DB) TurnRecorder {
	return &turnRecorderImpl{db: db}
}

// AppendStep 原子地追加一次 step 的新行与配对更新
func (r *turnRecorderImpl) AppendStep(ctx context.Context, interviewID string, expectedLastTurn int, inserts []*model.ConversationTurn, respondIDs, discardIDs []string, metadata *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var interview model.Interview
		if err := tx.Where("id = ?", interviewID).First(&interview).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return types.ErrNotFound
			}
			return err
		}
		if interview.Ended {
			return types.ErrInterviewEnded
		}

		// 乐观校验：并发写入者中后提交的一方在这里出局
		cur, err := maxTurnNumberTx(tx, interviewID)
		if err != nil {
			return err
		}
		if cur != expectedLastTurn {
			return types.ErrStorageConflict
		}

		now := time.Now()
		for _, turn := range inserts {
			if turn.Timestamp.IsZero() {
				turn.Timestamp = now
			}
			// 同一轮次的学生行只允许一条；重复提交的后来者视为冲突
			if turn.TurnID == model.TurnStudent {
				var n int64
				if err := tx.Model(&model.ConversationTurn{}).
					Where("interview_id = ? AND turn_number = ? AND turn_id = ?", interviewID, turn.TurnNumber, model.TurnStudent).
					Count(&n).Error; err != nil {
					return err
				}
				if n > 0 {
					return types.ErrStorageConflict
				}
			}
		}

		if len(inserts) > 0 {
			if err := tx.Create(inserts).Error; err != nil {
				return err
			}
		}

		if len(respondIDs) > 0 {
			if err := tx.Model(&model.ConversationTurn{}).
				Where("id IN ?", respondIDs).
				Update("responded", true).Error; err != nil {
				return err
			}
		}

		if len(discardIDs) > 0 {
			if err := tx.Model(&model.ConversationTurn{}).
				Where("id IN ?", discardIDs).
				Update("discarded", true).Error; err != nil {
				return err
			}
		}

		if metadata != nil {
			if err := tx.Model(&model.Interview{}).
				Where("id = ?", interviewID).
				Update("metadata", *metadata).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ListByInterview 获取全量历史
func (r *turnRecorderImpl) ListByInterview(ctx context.Context, interviewID string) ([]*model.ConversationTurn, error) {
	var turns []*model.ConversationTurn
	err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("turn_number ASC, turn_id ASC, ordinal ASC").
		Find(&turns).Error
	return turns, err
}

// ListByTurnNumber 获取某一轮次的全部行
func (r *turnRecorderImpl) ListByTurnNumber(ctx context.Context, interviewID string, turnNumber int) ([]*model.ConversationTurn, error) {
	var turns []*model.ConversationTurn
	err := r.db.WithContext(ctx).
		Where("interview_id = ? AND turn_number = ?", interviewID, turnNumber).
		Order("turn_number ASC, turn_id ASC, ordinal ASC").
		Find(&turns).Error
	return turns, err
}

// MaxTurnNumber 已持久化的最大 turn_number，无记录为 -1
func (r *turnRecorderImpl) MaxTurnNumber(ctx context.Context, interviewID string) (int, error) {
	return maxTurnNumberTx(r.db.WithContext(ctx), interviewID)
}

// UpdateTurns 单事务保存多行修改
func (r *turnRecorderImpl) UpdateTurns(ctx context.Context, turns []*model.ConversationTurn) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, turn := range turns {
			if err := tx.Save(turn).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func maxTurnNumberTx(tx *gorm.DB, interviewID string) (int, error) {
	var max sql.NullInt64
	err := tx.Model(&model.ConversationTurn{}).
		Where("interview_id = ?", interviewID).
		Select("MAX(turn_number)").
		Scan(&max).Error
	if err != nil {
		return -1, err
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}
