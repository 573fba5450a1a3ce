package policy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ========== Mock ChatModel ==========

type mockChatModel struct {
	responses []string
	err       error
	callCount int
}

func newMockChatModel(responses []string, err error) *mockChatModel {
	return &mockChatModel{responses: responses, err: err}
}

func (m *mockChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.callCount++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &schema.Message{Role: schema.Assistant, Content: "{}"}, nil
	}
	idx := (m.callCount - 1) % len(m.responses)
	return &schema.Message{Role: schema.Assistant, Content: m.responses[idx]}, nil
}

func (m *mockChatModel) Stream(ctx context.Context, messages []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, nil
}

func (m *mockChatModel) BindTools(tools []*schema.ToolInfo) error {
	return nil
}

// ========== generateJSON 测试 ==========

func TestGenerateJSON(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		wantQ   string
		wantErr bool
	}{
		{
			name:    "plain json",
			content: `{"question": "What is a loop?"}`,
			wantQ:   "What is a loop?",
		},
		{
			name:    "fenced json",
			content: "```json\n{\"question\": \"What is recursion?\"}\n```",
			wantQ:   "What is recursion?",
		},
		{
			name:    "repairable json",
			content: `{"question": "Trailing comma?",}`,
			wantQ:   "Trailing comma?",
		},
		{
			name:    "garbage",
			content: "I cannot answer that.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := newMockChatModel([]string{tt.content}, nil)
			var out struct {
				Question string `json:"question"`
			}
			err := generateJSON(ctx, cm, "system", "prompt", &out)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("generateJSON() error: %v", err)
			}
			if out.Question != tt.wantQ {
				t.Errorf("question = %q, want %q", out.Question, tt.wantQ)
			}
		})
	}
}

func TestGenerateJSONModelError(t *testing.T) {
	cm := newMockChatModel(nil, errors.New("rate limited"))
	var out map[string]any
	err := generateJSON(context.Background(), cm, "system", "prompt", &out)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "generate failed") {
		t.Errorf("error = %v, want wrapped generate failure", err)
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		if got := stripCodeFences(tt.in); got != tt.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHistoryTranscript(t *testing.T) {
	if got := historyTranscript(nil); got != "(no conversation yet)" {
		t.Errorf("empty history = %q", got)
	}

	got := historyTranscript([]HistoryTurn{
		{Role: 0, Text: "What is a loop?"},
		{Role: 1, Text: "It repeats code."},
	})
	if !strings.Contains(got, "Interviewer: What is a loop?") {
		t.Errorf("transcript missing interviewer line: %q", got)
	}
	if !strings.Contains(got, "Student: It repeats code.") {
		t.Errorf("transcript missing student line: %q", got)
	}
}
