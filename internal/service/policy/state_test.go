// Package policy 策略状态单元测试
package policy

import (
	"strings"
	"testing"
)

func TestNewState(t *testing.T) {
	concepts := []string{"loops", "functions"}
	st := NewState(PolicyFixed, concepts)

	if st.Version != StateVersion {
		t.Errorf("Version = %d, want %d", st.Version, StateVersion)
	}
	if st.PolicyID != PolicyFixed {
		t.Errorf("PolicyID = %q, want %q", st.PolicyID, PolicyFixed)
	}
	if len(st.Concepts) != 2 {
		t.Fatalf("Concepts = %v, want 2 entries", st.Concepts)
	}
	for _, c := range concepts {
		if score, ok := st.KnowledgeState[c]; !ok || score != 0.0 {
			t.Errorf("KnowledgeState[%q] = %v, %v; want 0.0, true", c, score, ok)
		}
	}

	// 输入切片后续修改不应影响状态
	concepts[0] = "mutated"
	if st.Concepts[0] != "loops" {
		t.Error("NewState should copy the concepts slice")
	}
}

func TestStateMarshalParse(t *testing.T) {
	st := NewState(PolicyKCTracking, []string{"loops", "recursion"})
	st.MarkAsked("loops")
	st.KnowledgeState["loops"] = 0.5

	raw, err := st.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	parsed, err := ParseState(raw)
	if err != nil {
		t.Fatalf("ParseState() error: %v", err)
	}
	if parsed.PolicyID != PolicyKCTracking {
		t.Errorf("PolicyID = %q, want %q", parsed.PolicyID, PolicyKCTracking)
	}
	if !parsed.Asked("loops") {
		t.Error("Asked(loops) = false after roundtrip, want true")
	}
	if parsed.Asked("recursion") {
		t.Error("Asked(recursion) = true, want false")
	}
	if parsed.KnowledgeState["loops"] != 0.5 {
		t.Errorf("KnowledgeState[loops] = %v, want 0.5", parsed.KnowledgeState["loops"])
	}
	if parsed.QuestionCount != 1 {
		t.Errorf("QuestionCount = %d, want 1", parsed.QuestionCount)
	}
}

func TestParseStateInvalid(t *testing.T) {
	if _, err := ParseState("not json"); err == nil {
		t.Error("ParseState should fail on malformed input")
	}

	if _, err := ParseState(`{"version": 99, "policy_id": "fixed"}`); err == nil {
		t.Error("ParseState should reject unknown versions")
	} else if !strings.Contains(err.Error(), "version") {
		t.Errorf("version error = %v, want mention of version", err)
	}
}

func TestParseStateNilKnowledge(t *testing.T) {
	st, err := ParseState(`{"version": 1, "policy_id": "fixed"}`)
	if err != nil {
		t.Fatalf("ParseState() error: %v", err)
	}
	if st.KnowledgeState == nil {
		t.Error("KnowledgeState should be initialized when absent")
	}
}

func TestMarkAskedIdempotentList(t *testing.T) {
	st := NewState(PolicyFixed, []string{"loops"})
	st.MarkAsked("loops")
	st.MarkAsked("loops")

	if len(st.AskedConcepts) != 1 {
		t.Errorf("AskedConcepts = %v, want single entry", st.AskedConcepts)
	}
	if st.QuestionCount != 2 {
		t.Errorf("QuestionCount = %d, want 2", st.QuestionCount)
	}
}
