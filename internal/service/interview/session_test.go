package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/skillsense/skillsense-ai/internal/model"
	"github.com/skillsense/skillsense-ai/internal/service/types"
	"github.com/skillsense/skillsense-ai/internal/testutil"
)

// ========== 历史视图辅助测试 ==========

func TestLastTurnNumber(t *testing.T) {
	if got := LastTurnNumber(nil); got != -1 {
		t.Errorf("LastTurnNumber(nil) = %d, want -1", got)
	}

	turns := []*model.ConversationTurn{
		{TurnNumber: 0, TurnID: model.TurnInterviewer},
		{TurnNumber: 0, TurnID: model.TurnStudent},
		{TurnNumber: 2, TurnID: model.TurnInterviewer},
	}
	if got := LastTurnNumber(turns); got != 2 {
		t.Errorf("LastTurnNumber() = %d, want 2", got)
	}
}

func TestOpenQuestions(t *testing.T) {
	turns := []*model.ConversationTurn{
		{ID: "q1", TurnNumber: 0, TurnID: model.TurnInterviewer},
		{ID: "q2", TurnNumber: 0, TurnID: model.TurnInterviewer, Discarded: true},
	}

	open := openQuestions(turns, 0)
	if len(open) != 1 || open[0].ID != "q1" {
		t.Errorf("openQuestions = %+v, want only q1", open)
	}

	// 学生行关闭该轮次
	turns = append(turns, &model.ConversationTurn{ID: "a1", TurnNumber: 0, TurnID: model.TurnStudent})
	if got := openQuestions(turns, 0); len(got) != 0 {
		t.Errorf("openQuestions after answer = %d rows, want 0", len(got))
	}

	if got := openQuestions(nil, -1); got != nil {
		t.Errorf("openQuestions(-1) = %v, want nil", got)
	}
}

func TestPairedQuestion(t *testing.T) {
	// 未回答行优先
	turns := []*model.ConversationTurn{
		{ID: "selected", TurnNumber: 0, TurnID: model.TurnInterviewer, Responded: true},
		{ID: "pending", TurnNumber: 0, TurnID: model.TurnInterviewer},
	}
	if got := pairedQuestion(turns, 0); got == nil || got.ID != "pending" {
		t.Errorf("pairedQuestion = %v, want the pending row", got)
	}

	// 只剩选定行时返回之
	turns = []*model.ConversationTurn{
		{ID: "picked", TurnNumber: 0, TurnID: model.TurnInterviewer, Responded: true},
		{ID: "dropped", TurnNumber: 0, TurnID: model.TurnInterviewer, Discarded: true},
	}
	if got := pairedQuestion(turns, 0); got == nil || got.ID != "picked" {
		t.Errorf("pairedQuestion = %v, want the selected row", got)
	}

	if got := pairedQuestion(nil, 0); got != nil {
		t.Errorf("pairedQuestion(empty) = %v, want nil", got)
	}
}

func TestHistoryExcludesDiscarded(t *testing.T) {
	turns := []*model.ConversationTurn{
		{TurnNumber: 0, TurnID: model.TurnInterviewer, Response: "kept"},
		{TurnNumber: 0, TurnID: model.TurnInterviewer, Response: "dropped", Discarded: true},
		{TurnNumber: 0, TurnID: model.TurnStudent, Response: "answer"},
	}

	history := historyOf(turns)
	if len(history) != 2 {
		t.Fatalf("history = %d entries, want 2", len(history))
	}
	for _, h := range history {
		if h.Text == "dropped" {
			t.Error("discarded candidate leaked into the policy history")
		}
	}
}

// ========== 候选选择测试 ==========

// appendCandidates 直接落库一轮多候选提问，模拟多候选策略的产物
func appendCandidates(t *testing.T, store *testutil.MemoryStore, interviewID string, turnNumber int, texts ...string) []*model.ConversationTurn {
	t.Helper()
	rows := make([]*model.ConversationTurn, 0, len(texts))
	for i, text := range texts {
		row := testutil.NewQuestionTurn(interviewID, turnNumber, i, text)
		rows = append(rows, row)
	}
	if err := store.Repositories().Turns.AppendStep(context.Background(), interviewID, turnNumber-1, rows, nil, nil, nil); err != nil {
		t.Fatalf("append candidates: %v", err)
	}
	return rows
}

// 选择互斥：选中一条后其余候选被弃用且不再 responded
func TestSelectSuggestionExclusivity(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, 10)
	iv := createTestInterview(t, svc, store)
	appendCandidates(t, store, iv.ID, 0, "q0", "q1", "q2")

	if err := svc.SelectSuggestion(ctx, iv.ID, 1); err != nil {
		t.Fatalf("SelectSuggestion() error: %v", err)
	}

	snap, err := svc.GetInterview(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetInterview() error: %v", err)
	}
	for _, turn := range snap.Turns {
		selected := turn.Response == "q1"
		if turn.Responded != selected {
			t.Errorf("%s: Responded = %v, want %v", turn.Response, turn.Responded, selected)
		}
		if turn.Discarded == selected {
			t.Errorf("%s: Discarded = %v, want %v", turn.Response, turn.Discarded, !selected)
		}
	}
}

func TestSelectSuggestionOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, 10)
	iv := createTestInterview(t, svc, store)
	appendCandidates(t, store, iv.ID, 0, "q0", "q1")

	if err := svc.SelectSuggestion(ctx, iv.ID, 2); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
	if err := svc.SelectSuggestion(ctx, iv.ID, -1); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

// 选择后的轮次仍可幂等重发（只含选中行），且回答与选中行配对
func TestSelectThenAnswer(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, 10)
	iv := createTestInterview(t, svc, store)
	appendCandidates(t, store, iv.ID, 0, "q0", "q1", "q2")

	if err := svc.SelectSuggestion(ctx, iv.ID, 2); err != nil {
		t.Fatalf("SelectSuggestion() error: %v", err)
	}

	questions, done, err := svc.GetSuggestedTurn(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetSuggestedTurn() error: %v", err)
	}
	if done {
		t.Error("done = true with the turn still unanswered")
	}
	if len(questions) != 1 || questions[0].Question != "q2" {
		t.Fatalf("questions = %+v, want only the selected q2", questions)
	}
	if questions[0].TurnNumber != 0 {
		t.Errorf("TurnNumber = %d, want 0 (no regeneration)", questions[0].TurnNumber)
	}

	result, err := svc.SubmitResponse(ctx, iv.ID, "my answer")
	if err != nil {
		t.Fatalf("SubmitResponse() error: %v", err)
	}
	if result.ProcessedAnswer != "my answer" {
		t.Errorf("ProcessedAnswer = %q", result.ProcessedAnswer)
	}

	snap, err := svc.GetInterview(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetInterview() error: %v", err)
	}
	for _, turn := range snap.Turns {
		if turn.TurnID == model.TurnStudent && turn.TurnNumber != 0 {
			t.Errorf("student turn number = %d, want pairing at 0", turn.TurnNumber)
		}
	}
}

// 未经选择直接回答多候选轮次：只有配对提问行标记 responded，
// 其余候选被弃用，审计上仍能区分答的是哪条
func TestAnswerWithoutSelectDiscardsSiblings(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, 10)
	iv := createTestInterview(t, svc, store)
	appendCandidates(t, store, iv.ID, 0, "q0", "q1", "q2")

	if _, err := svc.SubmitResponse(ctx, iv.ID, "direct answer"); err != nil {
		t.Fatalf("SubmitResponse() error: %v", err)
	}

	snap, err := svc.GetInterview(ctx, iv.ID)
	if err != nil {
		t.Fatalf("GetInterview() error: %v", err)
	}
	responded := 0
	for _, turn := range snap.Turns {
		if turn.TurnID != model.TurnInterviewer {
			continue
		}
		if turn.Responded {
			responded++
			if turn.Response != "q0" {
				t.Errorf("responded question = %q, want the paired q0", turn.Response)
			}
			if turn.Discarded {
				t.Error("paired question must not be discarded")
			}
		} else if !turn.Discarded {
			t.Errorf("%s: unpicked sibling must be discarded", turn.Response)
		}
	}
	if responded != 1 {
		t.Errorf("responded question rows = %d, want exactly 1", responded)
	}
}

func TestSelectSuggestionOnEndedInterview(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, 10)
	iv := createTestInterview(t, svc, store)
	appendCandidates(t, store, iv.ID, 0, "q0", "q1")

	if _, err := svc.EndInterview(ctx, iv.ID); err != nil {
		t.Fatalf("EndInterview() error: %v", err)
	}
	if err := svc.SelectSuggestion(ctx, iv.ID, 0); !errors.Is(err, types.ErrInterviewEnded) {
		t.Errorf("error = %v, want ErrInterviewEnded", err)
	}
}

// ========== 原子追加语义测试 ==========

func TestAppendStepConflictOnStaleTurn(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, 10)
	iv := createTestInterview(t, svc, store)
	appendCandidates(t, store, iv.ID, 0, "q0")

	// 基于过期的 expectedLastTurn 追加
	stale := testutil.NewQuestionTurn(iv.ID, 1, 0, "late question")
	err := store.Repositories().Turns.AppendStep(ctx, iv.ID, -1, []*model.ConversationTurn{stale}, nil, nil, nil)
	if !errors.Is(err, types.ErrStorageConflict) {
		t.Errorf("error = %v, want ErrStorageConflict", err)
	}
}

func TestAppendStepRejectsDuplicateAnswer(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, 10)
	iv := createTestInterview(t, svc, store)
	appendCandidates(t, store, iv.ID, 0, "q0")

	first := testutil.NewAnswerTurn(iv.ID, 0, "first answer")
	if err := store.Repositories().Turns.AppendStep(ctx, iv.ID, 0, []*model.ConversationTurn{first}, nil, nil, nil); err != nil {
		t.Fatalf("first answer append error: %v", err)
	}

	// 学生行不推进 max turn_number，重复回答要靠专门校验拦截
	dup := testutil.NewAnswerTurn(iv.ID, 0, "second answer")
	err := store.Repositories().Turns.AppendStep(ctx, iv.ID, 0, []*model.ConversationTurn{dup}, nil, nil, nil)
	if !errors.Is(err, types.ErrStorageConflict) {
		t.Errorf("error = %v, want ErrStorageConflict", err)
	}
}
