package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"

	"github.com/skillsense/skillsense-ai/internal/model"
)

// 掌握度超过该阈值的知识组件不再主动提问
const masteryThreshold = 0.8

// kc 画像每轮最多给出的候选提问条数
const maxCandidateQuestions = 3

// KCTrackingProfile 自适应知识组件追踪画像：
// 根据当前掌握度估计挑选最薄弱的概念提问，并用抽取到的知识组件更新估计；
// 所有概念达到掌握阈值后发出终止信号
type KCTrackingProfile struct {
	chatModel einomodel.ChatModel
}

// NewKCTrackingProfile 创建自适应画像
func NewKCTrackingProfile(chatModel einomodel.ChatModel) *KCTrackingProfile {
	return &KCTrackingProfile{chatModel: chatModel}
}

// GetNextInteraction 针对最薄弱的概念产出候选提问
func (p *KCTrackingProfile) GetNextInteraction(ctx context.Context, artifact *model.Artifact, history []HistoryTurn, state *State) (*Interaction, error) {
	concept := p.weakestConcept(state)
	if concept == "" {
		return &Interaction{Terminate: true}, nil
	}

	questions, err := p.generateCandidates(ctx, artifact, history, concept, state)
	if err != nil {
		return nil, err
	}

	state.MarkAsked(concept)

	meta, _ := json.Marshal(map[string]any{
		"concept":         concept,
		"knowledge_state": state.KnowledgeState,
	})

	return &Interaction{
		Questions: questions,
		Metadata:  string(meta),
	}, nil
}

// GetKCsFromAnswer 抽取知识组件并更新掌握度估计
func (p *KCTrackingProfile) GetKCsFromAnswer(ctx context.Context, question, answer string, state *State) (*AnswerAnalysis, error) {
	analysis, err := analyzeAnswer(ctx, p.chatModel, question, answer, state)
	if err != nil {
		return nil, err
	}

	// 观测到的知识组件抬升掌握度估计
	for _, kc := range analysis.ExtractedKCs {
		if _, ok := state.KnowledgeState[kc]; !ok {
			continue
		}
		score := state.KnowledgeState[kc] + 0.5
		if score > 1.0 {
			score = 1.0
		}
		state.KnowledgeState[kc] = score
	}

	return analysis, nil
}

// weakestConcept 掌握度最低且未提问过的概念，按清单顺序决胜
func (p *KCTrackingProfile) weakestConcept(state *State) string {
	best := ""
	bestScore := masteryThreshold
	for _, c := range state.Concepts {
		if state.Asked(c) {
			continue
		}
		if score := state.KnowledgeState[c]; score < bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

func (p *KCTrackingProfile) generateCandidates(ctx context.Context, artifact *model.Artifact, history []HistoryTurn, concept string, state *State) ([]Question, error) {
	if p.chatModel == nil {
		return []Question{{
			Text:      fmt.Sprintf("Can you walk me through how %s apply to your solution?", concept),
			Rationale: "template question, no chat model configured",
		}}, nil
	}

	prompt := fmt.Sprintf(`You are interviewing a student about their solution to a programming problem.

Problem statement:
%s

Student's solution:
%s

Conversation so far:
%s

Current mastery estimates (0 to 1): %s

Propose up to %d alternative questions probing the concept %q, ordered from most to least preferred.

Respond with JSON only:
{"questions": [{"question": "...", "rationale": "..."}]}`,
		artifact.ProblemStatement, artifact.ProblemSolution, historyTranscript(history),
		formatKnowledgeState(state), maxCandidateQuestions, concept)

	var out struct {
		Questions []Question `json:"questions"`
	}
	if err := generateJSON(ctx, p.chatModel, interviewerSystemPrompt, prompt, &out); err != nil {
		return nil, err
	}

	questions := make([]Question, 0, maxCandidateQuestions)
	for _, q := range out.Questions {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		questions = append(questions, q)
		if len(questions) >= maxCandidateQuestions {
			break
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("model returned no usable questions for concept %q", concept)
	}
	return questions, nil
}

func formatKnowledgeState(state *State) string {
	parts := make([]string, 0, len(state.Concepts))
	for _, c := range state.Concepts {
		parts = append(parts, fmt.Sprintf("%s=%.2f", c, state.KnowledgeState[c]))
	}
	return strings.Join(parts, ", ")
}
