package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/kaptinlin/jsonrepair"

	appmodel "github.com/skillsense/skillsense-ai/internal/model"
)

// generateJSON 调用 ChatModel 并把输出解析为 JSON
// 模型输出常带 markdown 围栏或轻微语法错误，先剥离围栏再走 jsonrepair
func generateJSON(ctx context.Context, chatModel model.ChatModel, system, prompt string, out any) error {
	messages := []*schema.Message{
		{Role: schema.System, Content: system},
		{Role: schema.User, Content: prompt},
	}

	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return fmt.Errorf("chat model generate failed: %w", err)
	}

	content := stripCodeFences(resp.Content)

	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		repaired = content
	}

	if err := json.Unmarshal([]byte(repaired), out); err != nil {
		return fmt.Errorf("failed to parse model output: %w", err)
	}
	return nil
}

// stripCodeFences 剥离 ```json ... ``` 围栏
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// historyTranscript 把对话历史渲染为提示词中的文字记录
func historyTranscript(history []HistoryTurn) string {
	if len(history) == 0 {
		return "(no conversation yet)"
	}
	var sb strings.Builder
	for _, h := range history {
		role := "Interviewer"
		if h.Role == appmodel.TurnStudent {
			role = "Student"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", role, h.Text))
	}
	return sb.String()
}
