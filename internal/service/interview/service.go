package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/skillsense/skillsense-ai/internal/config"
	"github.com/skillsense/skillsense-ai/internal/model"
	"github.com/skillsense/skillsense-ai/internal/repository"
	"github.com/skillsense/skillsense-ai/internal/service/policy"
	"github.com/skillsense/skillsense-ai/internal/service/types"
)

// Service 面试服务：对外的传输无关操作集合
// 每个操作都是一次完整的 reset-then-step 循环，不保留跨请求状态
type Service struct {
	repos    *repository.Repositories
	selector *policy.Selector
	session  *Session
}

// NewService 创建面试服务
func NewService(repos *repository.Repositories, selector *policy.Selector, cfg *config.InterviewConfig) *Service {
	return &Service{
		repos:    repos,
		selector: selector,
		session:  NewSession(repos, selector, cfg),
	}
}

// CreateInterviewRequest 创建面试请求
// 学生水平与提交的题解至少给出其一
type CreateInterviewRequest struct {
	StudentLevel     string `json:"student_level"`
	PolicyID         string `json:"policy_id"`
	ArtifactID       string `json:"artifact_id"`
	ProblemStatement string `json:"problem_statement"`
	ProblemSolution  string `json:"problem_solution"`
	ProblemLevel     string `json:"problem_level"`
}

// CreateInterview 创建学生、解析题目、落库面试记录
// 策略状态在首次 reset 时一次性初始化
func (s *Service) CreateInterview(ctx context.Context, req *CreateInterviewRequest) (*model.Interview, error) {
	hasArtifact := strings.TrimSpace(req.ProblemSolution) != ""
	if req.StudentLevel == "" && !hasArtifact && req.ArtifactID == "" {
		return nil, fmt.Errorf("%w: either a student level or artifact data is required", types.ErrInvalidArgument)
	}

	level := req.StudentLevel
	if level == "" {
		level = model.LevelUnknown
	}
	if !model.ValidStudentLevel(level) {
		return nil, fmt.Errorf("%w: invalid student level %q", types.ErrInvalidArgument, req.StudentLevel)
	}

	policyID, _, err := s.selector.Resolve(req.PolicyID)
	if err != nil {
		return nil, err
	}

	artifact, err := s.resolveArtifact(ctx, req, level)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		ID:    uuid.New().String(),
		Level: level,
	}
	if err := s.repos.Students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	interview := &model.Interview{
		ID:         uuid.New().String(),
		StudentID:  student.ID,
		ArtifactID: artifact.ID,
		PolicyID:   policyID,
	}
	if err := s.repos.Interviews.Create(ctx, interview); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	return interview, nil
}

func (s *Service) resolveArtifact(ctx context.Context, req *CreateInterviewRequest, level string) (*model.Artifact, error) {
	if req.ArtifactID != "" {
		artifact, err := s.repos.Artifacts.GetByID(ctx, req.ArtifactID)
		if err != nil {
			return nil, mapNotFound(err, "artifact %s", req.ArtifactID)
		}
		return artifact, nil
	}

	if strings.TrimSpace(req.ProblemSolution) != "" {
		artifactLevel := req.ProblemLevel
		if !model.ValidStudentLevel(artifactLevel) {
			artifactLevel = model.LevelUnknown
		}
		artifact := &model.Artifact{
			ID:               uuid.New().String(),
			Level:            artifactLevel,
			ProblemStatement: req.ProblemStatement,
			ProblemSolution:  req.ProblemSolution,
		}
		if err := s.repos.Artifacts.Create(ctx, artifact); err != nil {
			return nil, fmt.Errorf("failed to save submitted artifact: %w", err)
		}
		return artifact, nil
	}

	artifact, err := s.repos.Artifacts.GetRandomByLevel(ctx, level)
	if err != nil {
		return nil, mapNotFound(err, "artifact for level %s", level)
	}
	return artifact, nil
}

// GetInterview 返回面试完整快照
func (s *Service) GetInterview(ctx context.Context, interviewID string) (*types.InterviewSnapshot, error) {
	obs, err := s.session.Reset(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return &types.InterviewSnapshot{
		Interview: obs.Interview,
		Student:   obs.Student,
		Artifact:  obs.Artifact,
		Turns:     obs.Turns,
	}, nil
}

// GetSuggestedTurn 获取当前轮次的候选提问（幂等）
// 当前轮次已有未回答提问时原样重发；否则调用策略生成新提问
func (s *Service) GetSuggestedTurn(ctx context.Context, interviewID string) ([]types.SuggestedQuestion, bool, error) {
	obs, err := s.session.Reset(ctx, interviewID)
	if err != nil {
		return nil, false, err
	}

	obs, done, err := s.stepWithRetry(ctx, obs, model.TurnInterviewer, "")
	if err != nil {
		return nil, false, err
	}

	last := LastTurnNumber(obs.Turns)
	questions := make([]types.SuggestedQuestion, 0)
	for i, t := range openQuestions(obs.Turns, last) {
		questions = append(questions, types.SuggestedQuestion{
			TurnNumber: t.TurnNumber,
			Index:      i,
			Question:   t.Response,
			Metadata:   t.Metadata,
			Responded:  t.Responded,
		})
	}
	return questions, done, nil
}

// SubmitResponse 处理学生对当前提问的回答
func (s *Service) SubmitResponse(ctx context.Context, interviewID, response string) (*types.SubmitResult, error) {
	obs, err := s.session.Reset(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	obs, done, err := s.stepWithRetry(ctx, obs, model.TurnStudent, response)
	if err != nil {
		return nil, err
	}

	last := LastTurnNumber(obs.Turns)
	for _, t := range obs.Turns {
		if t.TurnNumber == last && t.TurnID == model.TurnStudent {
			return &types.SubmitResult{
				ProcessedAnswer: t.Response,
				ReferenceAnswer: t.Reference,
				ExtractedKCs:    t.ExtractedKCs,
				ReferenceKCs:    t.ReferenceKCs,
				Metadata:        t.Metadata,
				Done:            done,
			}, nil
		}
	}
	return nil, fmt.Errorf("student turn missing after step at turn %d", last)
}

// SelectSuggestion 在当前轮次的候选提问中选定一条
func (s *Service) SelectSuggestion(ctx context.Context, interviewID string, index int) error {
	obs, err := s.session.Reset(ctx, interviewID)
	if err != nil {
		return err
	}
	return s.session.SelectSuggestion(ctx, obs, LastTurnNumber(obs.Turns), index)
}

// SetReferenceConcepts 人工修正某轮回答的参考概念
func (s *Service) SetReferenceConcepts(ctx context.Context, interviewID string, turnNumber int, concepts []string) error {
	obs, err := s.session.Reset(ctx, interviewID)
	if err != nil {
		return err
	}
	return s.session.SetReferenceConcepts(ctx, obs, turnNumber, concepts)
}

// EndInterview 结束面试并返回统计
func (s *Service) EndInterview(ctx context.Context, interviewID string) (*types.EndResult, error) {
	obs, err := s.session.Reset(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return s.session.End(ctx, obs)
}

// stepWithRetry 推进一步；写入竞争失败时基于新读到的状态内部重试一次
func (s *Service) stepWithRetry(ctx context.Context, obs *Observation, turnID int, action string) (*Observation, bool, error) {
	out, done, err := s.session.Step(ctx, obs, turnID, action)
	if err == nil || !errors.Is(err, types.ErrStorageConflict) {
		return out, done, err
	}

	fresh, rerr := s.session.Reset(ctx, obs.Interview.ID)
	if rerr != nil {
		return nil, false, rerr
	}
	return s.session.Step(ctx, fresh, turnID, action)
}
