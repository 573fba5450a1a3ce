// Package interview 实现面试会话状态机
// reset/step 语义：每次调用都从存储完整重建状态再推进一步，
// 进程内不保留任何跨请求的会话对象
package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsense/skillsense-ai/internal/config"
	"github.com/skillsense/skillsense-ai/internal/model"
	"github.com/skillsense/skillsense-ai/internal/repository"
	"github.com/skillsense/skillsense-ai/internal/service/policy"
	"github.com/skillsense/skillsense-ai/internal/service/types"
)

// Observation 一次 reset 重建出的完整会话状态，请求结束即丢弃
type Observation struct {
	Interview *model.Interview
	Student   *model.Student
	Artifact  *model.Artifact
	Turns     []*model.ConversationTurn
	State     *policy.State
}

// Session 面试会话状态机，本身无状态，可跨请求复用
type Session struct {
	repos         *repository.Repositories
	selector      *policy.Selector
	questionLimit int
	policyTimeout time.Duration
}

// NewSession 创建会话状态机
func NewSession(repos *repository.Repositories, selector *policy.Selector, cfg *config.InterviewConfig) *Session {
	return &Session{
		repos:         repos,
		selector:      selector,
		questionLimit: cfg.QuestionLimit,
		policyTimeout: cfg.GetPolicyTimeout(),
	}
}

// Reset 从存储重建面试的完整状态
// 面试元数据缺失时在此做一次性的策略状态初始化并持久化
func (s *Session) Reset(ctx context.Context, interviewID string) (*Observation, error) {
	interview, err := s.repos.Interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, mapNotFound(err, "interview %s", interviewID)
	}

	student, err := s.repos.Students.GetByID(ctx, interview.StudentID)
	if err != nil {
		return nil, mapNotFound(err, "student %s", interview.StudentID)
	}

	artifact, err := s.repos.Artifacts.GetByID(ctx, interview.ArtifactID)
	if err != nil {
		return nil, mapNotFound(err, "artifact %s", interview.ArtifactID)
	}

	turns, err := s.repos.Turns.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	var state *policy.State
	if interview.Metadata == "" {
		policyID, _, err := s.selector.Resolve(interview.PolicyID)
		if err != nil {
			return nil, err
		}
		state = s.selector.NewState(policyID)
		raw, err := state.Marshal()
		if err != nil {
			return nil, err
		}
		interview.Metadata = raw
		if err := s.repos.Interviews.Update(ctx, interview); err != nil {
			return nil, fmt.Errorf("failed to initialize policy state: %w", err)
		}
	} else {
		state, err = policy.ParseState(interview.Metadata)
		if err != nil {
			return nil, err
		}
	}

	return &Observation{
		Interview: interview,
		Student:   student,
		Artifact:  artifact,
		Turns:     turns,
		State:     state,
	}, nil
}

// Step 推进会话一个逻辑轮次
// turnID=0 产出（或幂等重发）面试官提问；turnID=1 处理学生回答
// 返回推进后的新观察与 done 标志
func (s *Session) Step(ctx context.Context, obs *Observation, turnID int, action string) (*Observation, bool, error) {
	switch turnID {
	case model.TurnInterviewer:
		return s.stepInterviewer(ctx, obs)
	case model.TurnStudent:
		return s.stepStudent(ctx, obs, action)
	default:
		return nil, false, fmt.Errorf("%w: unknown turn id %d", types.ErrInvalidArgument, turnID)
	}
}

func (s *Session) stepInterviewer(ctx context.Context, obs *Observation) (*Observation, bool, error) {
	if obs.Interview.Ended {
		return nil, false, types.ErrInterviewEnded
	}

	last := LastTurnNumber(obs.Turns)

	// 幂等护栏：当前轮次已有未被回答的提问时原样重发，
	// 不再调用知识画像，也不推进 turn_number
	if len(openQuestions(obs.Turns, last)) > 0 {
		return obs, s.isDone(obs.Turns, false), nil
	}

	if s.isDone(obs.Turns, false) {
		return obs, true, nil
	}

	pctx, cancel := context.WithTimeout(ctx, s.policyTimeout)
	defer cancel()

	_, profile, err := s.selector.Resolve(obs.Interview.PolicyID)
	if err != nil {
		return nil, false, err
	}

	interaction, err := profile.GetNextInteraction(pctx, obs.Artifact, historyOf(obs.Turns), obs.State)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", types.ErrUpstreamFailure, err)
	}
	if interaction.Terminate {
		return obs, true, nil
	}

	now := time.Now()
	inserts := make([]*model.ConversationTurn, 0, len(interaction.Questions))
	for i, q := range interaction.Questions {
		inserts = append(inserts, &model.ConversationTurn{
			ID:          uuid.New().String(),
			InterviewID: obs.Interview.ID,
			TurnNumber:  last + 1,
			TurnID:      model.TurnInterviewer,
			Ordinal:     i,
			Response:    q.Text,
			Metadata:    interaction.Metadata,
			Responded:   false,
			Timestamp:   now,
		})
	}

	metadata, err := obs.State.Marshal()
	if err != nil {
		return nil, false, err
	}

	if err := s.repos.Turns.AppendStep(ctx, obs.Interview.ID, last, inserts, nil, nil, &metadata); err != nil {
		return nil, false, err
	}

	fresh, err := s.Reset(ctx, obs.Interview.ID)
	if err != nil {
		return nil, false, err
	}
	return fresh, s.isDone(fresh.Turns, interaction.Terminate), nil
}

func (s *Session) stepStudent(ctx context.Context, obs *Observation, action string) (*Observation, bool, error) {
	if strings.TrimSpace(action) == "" {
		return nil, false, fmt.Errorf("%w: student response is required", types.ErrInvalidArgument)
	}
	if obs.Interview.Ended {
		return nil, false, types.ErrInterviewEnded
	}

	last := LastTurnNumber(obs.Turns)
	if last < 0 {
		return nil, false, fmt.Errorf("%w: no interviewer question to answer", types.ErrInvalidState)
	}
	if hasStudentTurn(obs.Turns, last) {
		return nil, false, fmt.Errorf("%w: turn %d is already answered", types.ErrInvalidState, last)
	}

	paired := pairedQuestion(obs.Turns, last)
	if paired == nil {
		return nil, false, fmt.Errorf("%w: no interviewer question to answer", types.ErrInvalidState)
	}

	pctx, cancel := context.WithTimeout(ctx, s.policyTimeout)
	defer cancel()

	_, profile, err := s.selector.Resolve(obs.Interview.PolicyID)
	if err != nil {
		return nil, false, err
	}

	analysis, err := profile.GetKCsFromAnswer(pctx, paired.Response, action, obs.State)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", types.ErrUpstreamFailure, err)
	}

	studentTurn := &model.ConversationTurn{
		ID:           uuid.New().String(),
		InterviewID:  obs.Interview.ID,
		TurnNumber:   last,
		TurnID:       model.TurnStudent,
		Response:     action,
		Reference:    analysis.ReferenceAnswer,
		ReferenceKCs: analysis.ReferenceKCs,
		ExtractedKCs: analysis.ExtractedKCs,
		Metadata:     paired.Metadata,
		Responded:    true,
		Timestamp:    time.Now(),
	}

	// 配对的提问行与学生行在同一事务中落库；
	// 未被选中的候选提问同时弃用，保留"答了哪条"的审计痕迹
	respondIDs := make([]string, 0, 1)
	discardIDs := make([]string, 0)
	for _, t := range questionsAt(obs.Turns, last) {
		if t.Discarded || t.Responded {
			continue
		}
		if t.ID == paired.ID {
			respondIDs = append(respondIDs, t.ID)
		} else {
			discardIDs = append(discardIDs, t.ID)
		}
	}

	metadata, err := obs.State.Marshal()
	if err != nil {
		return nil, false, err
	}

	if err := s.repos.Turns.AppendStep(ctx, obs.Interview.ID, last, []*model.ConversationTurn{studentTurn}, respondIDs, discardIDs, &metadata); err != nil {
		return nil, false, err
	}

	fresh, err := s.Reset(ctx, obs.Interview.ID)
	if err != nil {
		return nil, false, err
	}
	return fresh, s.isDone(fresh.Turns, false), nil
}

// SelectSuggestion 在某轮次的候选提问中选定序号 index 的一条：
// 选中行标记为 responded，其余候选标记为 discarded（保留审计，不再出现在建议中）
func (s *Session) SelectSuggestion(ctx context.Context, obs *Observation, turnNumber, index int) error {
	if obs.Interview.Ended {
		return types.ErrInterviewEnded
	}

	candidates := make([]*model.ConversationTurn, 0)
	for _, t := range questionsAt(obs.Turns, turnNumber) {
		if !t.Discarded {
			candidates = append(candidates, t)
		}
	}
	if index < 0 || index >= len(candidates) {
		return fmt.Errorf("%w: suggestion index %d out of range [0,%d)", types.ErrInvalidArgument, index, len(candidates))
	}

	changed := make([]*model.ConversationTurn, 0, len(candidates))
	for i, t := range candidates {
		selected := i == index
		if t.Responded != selected || t.Discarded != !selected {
			t.Responded = selected
			t.Discarded = !selected
			changed = append(changed, t)
		}
	}
	if len(changed) == 0 {
		return nil
	}
	return s.repos.Turns.UpdateTurns(ctx, changed)
}

// SetReferenceConcepts 人工修正某轮学生回答的参考概念
func (s *Session) SetReferenceConcepts(ctx context.Context, obs *Observation, turnNumber int, concepts []string) error {
	if obs.Interview.Ended {
		return types.ErrInterviewEnded
	}

	for _, t := range obs.Turns {
		if t.TurnNumber == turnNumber && t.TurnID == model.TurnStudent && t.Responded {
			t.ReferenceKCs = model.StringList(concepts)
			return s.repos.Turns.UpdateTurns(ctx, []*model.ConversationTurn{t})
		}
	}
	return fmt.Errorf("%w: no responded student turn at turn number %d", types.ErrNotFound, turnNumber)
}

// End 结束面试并给出统计：总轮次数与首末记录的时间差
func (s *Session) End(ctx context.Context, obs *Observation) (*types.EndResult, error) {
	if !obs.Interview.Ended {
		obs.Interview.Ended = true
		if err := s.repos.Interviews.Update(ctx, obs.Interview); err != nil {
			return nil, fmt.Errorf("failed to end interview: %w", err)
		}
	}

	result := &types.EndResult{
		InterviewID: obs.Interview.ID,
		TotalTurns:  len(obs.Turns),
	}
	if len(obs.Turns) >= 2 {
		d := obs.Turns[len(obs.Turns)-1].Timestamp.Sub(obs.Turns[0].Timestamp)
		result.Duration = &d
	}
	return result, nil
}

// isDone 会话是否达到终止条件：提问条数达到上限，或策略已发出终止信号
func (s *Session) isDone(turns []*model.ConversationTurn, terminate bool) bool {
	if terminate {
		return true
	}
	count := 0
	for _, t := range turns {
		if t.TurnID == model.TurnInterviewer {
			count++
		}
	}
	return s.questionLimit > 0 && count >= s.questionLimit
}

// ========== 历史视图辅助 ==========

// LastTurnNumber 历史中的最大 turn_number，无记录为 -1
func LastTurnNumber(turns []*model.ConversationTurn) int {
	last := -1
	for _, t := range turns {
		if t.TurnNumber > last {
			last = t.TurnNumber
		}
	}
	return last
}

// questionsAt 某轮次的全部面试官行（含已弃用候选）
func questionsAt(turns []*model.ConversationTurn, turnNumber int) []*model.ConversationTurn {
	out := make([]*model.ConversationTurn, 0)
	for _, t := range turns {
		if t.TurnNumber == turnNumber && t.TurnID == model.TurnInterviewer {
			out = append(out, t)
		}
	}
	return out
}

// openQuestions 某轮次尚未被学生回答的有效提问
// 学生行一旦存在即视为该轮已关闭
func openQuestions(turns []*model.ConversationTurn, turnNumber int) []*model.ConversationTurn {
	if turnNumber < 0 || hasStudentTurn(turns, turnNumber) {
		return nil
	}
	out := make([]*model.ConversationTurn, 0)
	for _, t := range questionsAt(turns, turnNumber) {
		if !t.Discarded {
			out = append(out, t)
		}
	}
	return out
}

// pairedQuestion 学生回答所配对的提问：优先未 responded 的待回答行，
// 其次是经 SelectSuggestion 选定的行
func pairedQuestion(turns []*model.ConversationTurn, turnNumber int) *model.ConversationTurn {
	var selected *model.ConversationTurn
	for _, t := range questionsAt(turns, turnNumber) {
		if t.Discarded {
			continue
		}
		if !t.Responded {
			return t
		}
		if selected == nil {
			selected = t
		}
	}
	return selected
}

func hasStudentTurn(turns []*model.ConversationTurn, turnNumber int) bool {
	for _, t := range turns {
		if t.TurnNumber == turnNumber && t.TurnID == model.TurnStudent {
			return true
		}
	}
	return false
}

// historyOf 提供给策略的对话历史（剔除弃用候选）
func historyOf(turns []*model.ConversationTurn) []policy.HistoryTurn {
	out := make([]policy.HistoryTurn, 0, len(turns))
	for _, t := range turns {
		if t.Discarded {
			continue
		}
		out = append(out, policy.HistoryTurn{
			Role:       t.TurnID,
			Text:       t.Response,
			TurnNumber: t.TurnNumber,
		})
	}
	return out
}

func mapNotFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf(format+": %w", append(args, types.ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
