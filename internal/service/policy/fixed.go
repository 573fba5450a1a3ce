package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"

	"github.com/skillsense/skillsense-ai/internal/model"
)

// FixedProfile 固定概念清单画像：按清单顺序逐个提问，每轮一条提问
// 清单遍历完毕后发出终止信号
type FixedProfile struct {
	chatModel einomodel.ChatModel
}

// NewFixedProfile 创建固定清单画像
func NewFixedProfile(chatModel einomodel.ChatModel) *FixedProfile {
	return &FixedProfile{chatModel: chatModel}
}

// GetNextInteraction 为清单中下一个概念生成一条提问
func (p *FixedProfile) GetNextInteraction(ctx context.Context, artifact *model.Artifact, history []HistoryTurn, state *State) (*Interaction, error) {
	concept := nextUnasked(state)
	if concept == "" {
		return &Interaction{Terminate: true}, nil
	}

	question, rationale, err := p.generateQuestion(ctx, artifact, history, concept)
	if err != nil {
		return nil, err
	}

	state.MarkAsked(concept)

	meta, _ := json.Marshal(map[string]string{
		"concept":   concept,
		"rationale": rationale,
	})

	return &Interaction{
		Questions: []Question{{Text: question, Rationale: rationale}},
		Metadata:  string(meta),
	}, nil
}

// GetKCsFromAnswer 抽取回答涉及的知识组件并给出参考答案
func (p *FixedProfile) GetKCsFromAnswer(ctx context.Context, question, answer string, state *State) (*AnswerAnalysis, error) {
	return analyzeAnswer(ctx, p.chatModel, question, answer, state)
}

func (p *FixedProfile) generateQuestion(ctx context.Context, artifact *model.Artifact, history []HistoryTurn, concept string) (string, string, error) {
	// 未配置 ChatModel 时退化为模板提问，保持服务可用
	if p.chatModel == nil {
		return fmt.Sprintf("Can you explain how %s are used in your solution?", concept),
			"template question, no chat model configured", nil
	}

	prompt := fmt.Sprintf(`You are interviewing a student about their solution to a programming problem.

Problem statement:
%s

Student's solution:
%s

Conversation so far:
%s

Ask one concise question that probes the student's understanding of the concept %q in the context of their solution.

Respond with JSON only:
{"question": "...", "rationale": "..."}`,
		artifact.ProblemStatement, artifact.ProblemSolution, historyTranscript(history), concept)

	var out struct {
		Question  string `json:"question"`
		Rationale string `json:"rationale"`
	}
	if err := generateJSON(ctx, p.chatModel, interviewerSystemPrompt, prompt, &out); err != nil {
		return "", "", err
	}
	if strings.TrimSpace(out.Question) == "" {
		return "", "", fmt.Errorf("model returned empty question for concept %q", concept)
	}
	return out.Question, out.Rationale, nil
}

// nextUnasked 清单中第一个尚未提问的概念，全部问完返回空串
func nextUnasked(state *State) string {
	for _, c := range state.Concepts {
		if !state.Asked(c) {
			return c
		}
	}
	return ""
}

const interviewerSystemPrompt = "You are an expert technical interviewer assessing a student's programming knowledge. Always respond with valid JSON."

// analyzeAnswer 两个画像共用的回答分析
func analyzeAnswer(ctx context.Context, chatModel einomodel.ChatModel, question, answer string, state *State) (*AnswerAnalysis, error) {
	if chatModel == nil {
		// 退化路径：在回答文本中朴素匹配清单概念
		extracted := []string{}
		lower := strings.ToLower(answer)
		for _, c := range state.Concepts {
			if strings.Contains(lower, strings.ToLower(c)) {
				extracted = append(extracted, c)
			}
		}
		reference := state.AskedConcepts
		if len(reference) > 0 {
			reference = reference[len(reference)-1:]
		}
		return &AnswerAnalysis{
			ExtractedKCs:    extracted,
			ReferenceKCs:    append([]string{}, reference...),
			ReferenceAnswer: fmt.Sprintf("A complete answer would address: %s", question),
		}, nil
	}

	prompt := fmt.Sprintf(`A student was asked the following interview question:

%s

The student answered:

%s

The knowledge components under assessment are: %s

1. List which knowledge components the student's answer demonstrates.
2. List which knowledge components a reference answer should cover.
3. Write a short reference answer.

Respond with JSON only:
{"extracted_kcs": ["..."], "reference_kcs": ["..."], "reference_answer": "..."}`,
		question, answer, strings.Join(state.Concepts, ", "))

	var out struct {
		ExtractedKCs    []string `json:"extracted_kcs"`
		ReferenceKCs    []string `json:"reference_kcs"`
		ReferenceAnswer string   `json:"reference_answer"`
	}
	if err := generateJSON(ctx, chatModel, interviewerSystemPrompt, prompt, &out); err != nil {
		return nil, err
	}
	return &AnswerAnalysis{
		ExtractedKCs:    out.ExtractedKCs,
		ReferenceKCs:    out.ReferenceKCs,
		ReferenceAnswer: out.ReferenceAnswer,
	}, nil
}
