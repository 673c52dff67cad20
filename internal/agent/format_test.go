package agent

import (
	"testing"

	"github.com/ledgerline/ledgerline/internal/models"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"answer": "hi"}`, `{"answer": "hi"}`},
		{"json fence", "```json\n{\"answer\": \"hi\"}\n```", `{"answer": "hi"}`},
		{"bare fence", "```\n{\"answer\": \"hi\"}\n```", `{"answer": "hi"}`},
		{"fence with whitespace", "  ```json\n{}\n```  ", "{}"},
		{"inner backticks preserved", "The `answer` field", "The `answer` field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf", "line one\r\nline two", "line one\nline two"},
		{"inline bullet", "Key points: - first - second", "Key points:\n- first\n- second"},
		{"excess blank lines", "a\n\n\n\nb", "a\n\nb"},
		{"trims", "  answer  \n", "answer"},
		{"bullet at line start untouched", "- first\n- second", "- first\n- second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeAnswer(tt.in); got != tt.want {
				t.Errorf("normalizeAnswer(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatAvailableScenarios(t *testing.T) {
	summaries := []models.ScenarioSummary{
		{ID: "alpha", Name: "Alpha", Description: "First", Active: true},
		{ID: "beta", Name: "Beta", Description: "Second"},
	}

	got := formatAvailableScenarios(summaries)
	want := "Available Scenarios:\n- Alpha (alpha) [active]: First\n- Beta (beta): Second"
	if got != want {
		t.Errorf("formatAvailableScenarios = %q, want %q", got, want)
	}
}
