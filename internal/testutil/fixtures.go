package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillsense/skillsense-ai/internal/model"
)

// NewStudent 构造测试学生
func NewStudent(level string) *model.Student {
	return &model.Student{
		ID:        uuid.NewString(),
		Level:     level,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// NewArtifact 构造测试题目
func NewArtifact(level, statement, solution string) *model.Artifact {
	return &model.Artifact{
		ID:               uuid.NewString(),
		Level:            level,
		ProblemStatement: statement,
		ProblemSolution:  solution,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
}

// NewInterview 构造测试面试记录
func NewInterview(studentID, artifactID, policyID string) *model.Interview {
	return &model.Interview{
		ID:         uuid.NewString(),
		StudentID:  studentID,
		ArtifactID: artifactID,
		PolicyID:   policyID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// NewQuestionTurn 构造一条面试官提问行
func NewQuestionTurn(interviewID string, turnNumber, ordinal int, question string) *model.ConversationTurn {
	return &model.ConversationTurn{
		ID:          uuid.NewString(),
		InterviewID: interviewID,
		TurnNumber:  turnNumber,
		TurnID:      model.TurnInterviewer,
		Ordinal:     ordinal,
		Response:    question,
		Timestamp:   time.Now(),
	}
}

// NewAnswerTurn 构造一条学生回答行
func NewAnswerTurn(interviewID string, turnNumber int, answer string) *model.ConversationTurn {
	return &model.ConversationTurn{
		ID:          uuid.NewString(),
		InterviewID: interviewID,
		TurnNumber:  turnNumber,
		TurnID:      model.TurnStudent,
		Response:    answer,
		Responded:   true,
		Timestamp:   time.Now(),
	}
}
