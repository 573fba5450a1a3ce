// Package testutil 提供测试辅助工具
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/skillsense/skillsense-ai/internal/model"
	"github.com/skillsense/skillsense-ai/internal/repository"
	"github.com/skillsense/skillsense-ai/internal/service/types"
)

// MemoryStore 内存版仓库实现，复刻持久层的事务语义供单元测试使用
type MemoryStore struct {
	mu         sync.Mutex
	students   map[string]*model.Student
	artifacts  map[string]*model.Artifact
	interviews map[string]*model.Interview
	turns      map[string][]*model.ConversationTurn // interviewID -> rows

	// FailAppendOnce 使下一次 AppendStep 返回 ErrStorageConflict，
	// 用于验证冲突重试路径
	FailAppendOnce bool
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		students:   make(map[string]*model.Student),
		artifacts:  make(map[string]*model.Artifact),
		interviews: make(map[string]*model.Interview),
		turns:      make(map[string][]*model.ConversationTurn),
	}
}

// Repositories 返回以内存实现填充的仓库集合
func (m *MemoryStore) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Students:   (*memStudents)(m),
		Artifacts:  (*memArtifacts)(m),
		Interviews: (*memInterviews)(m),
		Turns:      (*memTurns)(m),
	}
}

// ========== StudentRepository ==========

type memStudents MemoryStore

func (m *memStudents) Create(_ context.Context, s *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.students[s.ID] = &cp
	return nil
}

func (m *memStudents) GetByID(_ context.Context, id string) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStudents) Update(_ context.Context, s *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[s.ID]; !ok {
		return types.ErrNotFound
	}
	cp := *s
	m.students[s.ID] = &cp
	return nil
}

// ========== ArtifactRepository ==========

type memArtifacts MemoryStore

func (m *memArtifacts) Create(_ context.Context, a *model.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.artifacts[a.ID] = &cp
	return nil
}

func (m *memArtifacts) GetByID(_ context.Context, id string) (*model.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artifacts[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memArtifacts) GetRandomByLevel(_ context.Context, level string) (*model.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matchAll := level == "" || level == model.LevelUnknown
	ids := make([]string, 0, len(m.artifacts))
	for id, a := range m.artifacts {
		if matchAll || a.Level == level {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, types.ErrNotFound
	}
	sort.Strings(ids) // 确定性抽取，便于断言
	cp := *m.artifacts[ids[0]]
	return &cp, nil
}

// ========== InterviewRepository ==========

type memInterviews MemoryStore

func (m *memInterviews) Create(_ context.Context, iv *model.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *iv
	m.interviews[iv.ID] = &cp
	return nil
}

func (m *memInterviews) GetByID(_ context.Context, id string) (*model.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	iv, ok := m.interviews[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	cp := *iv
	return &cp, nil
}

func (m *memInterviews) Update(_ context.Context, iv *model.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.interviews[iv.ID]; !ok {
		return types.ErrNotFound
	}
	cp := *iv
	m.interviews[iv.ID] = &cp
	return nil
}

// ========== TurnRecorder ==========

type memTurns MemoryStore

func (m *memTurns) AppendStep(_ context.Context, interviewID string, expectedLastTurn int, inserts []*model.ConversationTurn, respondIDs, discardIDs []string, metadata *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAppendOnce {
		m.FailAppendOnce = false
		return types.ErrStorageConflict
	}

	iv, ok := m.interviews[interviewID]
	if !ok {
		return types.ErrNotFound
	}
	if iv.Ended {
		return types.ErrInterviewEnded
	}

	rows := m.turns[interviewID]
	maxTurn := -1
	for _, t := range rows {
		if t.TurnNumber > maxTurn {
			maxTurn = t.TurnNumber
		}
	}
	if maxTurn != expectedLastTurn {
		return types.ErrStorageConflict
	}

	for _, ins := range inserts {
		if ins.TurnID == model.TurnStudent {
			for _, t := range rows {
				if t.TurnNumber == ins.TurnNumber && t.TurnID == model.TurnStudent {
					return types.ErrStorageConflict
				}
			}
		}
	}

	for _, ins := range inserts {
		cp := *ins
		m.turns[interviewID] = append(m.turns[interviewID], &cp)
	}
	respond := make(map[string]bool, len(respondIDs))
	for _, id := range respondIDs {
		respond[id] = true
	}
	discard := make(map[string]bool, len(discardIDs))
	for _, id := range discardIDs {
		discard[id] = true
	}
	for _, t := range m.turns[interviewID] {
		if respond[t.ID] {
			t.Responded = true
		}
		if discard[t.ID] {
			t.Discarded = true
		}
	}
	if metadata != nil {
		iv.Metadata = *metadata
	}
	return nil
}

func (m *memTurns) ListByInterview(_ context.Context, interviewID string) ([]*model.ConversationTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.turns[interviewID]
	out := make([]*model.ConversationTurn, 0, len(rows))
	for _, t := range rows {
		cp := *t
		out = append(out, &cp)
	}
	sortTurns(out)
	return out, nil
}

func (m *memTurns) ListByTurnNumber(_ context.Context, interviewID string, turnNumber int) ([]*model.ConversationTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.ConversationTurn
	for _, t := range m.turns[interviewID] {
		if t.TurnNumber == turnNumber {
			cp := *t
			out = append(out, &cp)
		}
	}
	sortTurns(out)
	return out, nil
}

func (m *memTurns) MaxTurnNumber(_ context.Context, interviewID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	maxTurn := -1
	for _, t := range m.turns[interviewID] {
		if t.TurnNumber > maxTurn {
			maxTurn = t.TurnNumber
		}
	}
	return maxTurn, nil
}

func (m *memTurns) UpdateTurns(_ context.Context, turns []*model.ConversationTurn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, upd := range turns {
		found := false
		for ivID, rows := range m.turns {
			for i, t := range rows {
				if t.ID == upd.ID {
					cp := *upd
					m.turns[ivID][i] = &cp
					found = true
				}
			}
		}
		if !found {
			return types.ErrNotFound
		}
	}
	return nil
}

func sortTurns(rows []*model.ConversationTurn) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TurnNumber != rows[j].TurnNumber {
			return rows[i].TurnNumber < rows[j].TurnNumber
		}
		if rows[i].TurnID != rows[j].TurnID {
			return rows[i].TurnID < rows[j].TurnID
		}
		return rows[i].Ordinal < rows[j].Ordinal
	})
}

// 接口断言
var (
	_ repository.StudentRepository   = (*memStudents)(nil)
	_ repository.ArtifactRepository  = (*memArtifacts)(nil)
	_ repository.InterviewRepository = (*memInterviews)(nil)
	_ repository.TurnRecorder        = (*memTurns)(nil)
)
