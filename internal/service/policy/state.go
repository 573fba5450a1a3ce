// Package policy 提供面试提问策略：封闭的策略允许列表、
// 策略状态的版本化序列化，以及 LLM 驱动的知识画像实现
package policy

import (
	"encoding/json"
	"fmt"
)

// StateVersion 状态 blob 的 schema 版本
const StateVersion = 1

// State 策略内部状态，序列化后保存在 Interview.Metadata
// 对会话层不透明，只有策略自身读写其内容
type State struct {
	Version  int    `json:"version"`
	PolicyID string `json:"policy_id"`
	// Concepts 保序的知识组件清单，决定提问遍历顺序
	Concepts []string `json:"concepts"`
	// KnowledgeState 各知识组件的掌握度估计，0 到 1
	KnowledgeState map[string]float64 `json:"knowledge_state"`
	// AskedConcepts 已提问过的知识组件
	AskedConcepts []string `json:"asked_concepts,omitempty"`
	// QuestionCount 已生成的提问轮数
	QuestionCount int `json:"question_count"`
}

// NewState 构建初始策略状态
func NewState(policyID string, concepts []string) *State {
	knowledge := make(map[string]float64, len(concepts))
	for _, c := range concepts {
		knowledge[c] = 0.0
	}
	return &State{
		Version:        StateVersion,
		PolicyID:       policyID,
		Concepts:       append([]string{}, concepts...),
		KnowledgeState: knowledge,
	}
}

// ParseState 反序列化状态 blob 并校验版本
func ParseState(raw string) (*State, error) {
	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, fmt.Errorf("failed to parse policy state: %w", err)
	}
	if st.Version != StateVersion {
		return nil, fmt.Errorf("unsupported policy state version: %d", st.Version)
	}
	if st.KnowledgeState == nil {
		st.KnowledgeState = make(map[string]float64)
	}
	return &st, nil
}

// Marshal 序列化状态 blob
func (s *State) Marshal() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal policy state: %w", err)
	}
	return string(data), nil
}

// Asked 判断某知识组件是否已提问过
func (s *State) Asked(concept string) bool {
	for _, c := range s.AskedConcepts {
		if c == concept {
			return true
		}
	}
	return false
}

// MarkAsked 记录一次提问
func (s *State) MarkAsked(concept string) {
	if !s.Asked(concept) {
		s.AskedConcepts = append(s.AskedConcepts, concept)
	}
	s.QuestionCount++
}
