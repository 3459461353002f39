package gemini

import (
	"context"
	"errors"
	"testing"
)

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already clean object",
			raw:  `{"merchant":"Uber"}`,
			want: `{"merchant":"Uber"}`,
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"merchant\":\"Uber\"}\n```",
			want: `{"merchant":"Uber"}`,
		},
		{
			name: "bare code fence",
			raw:  "```\n[{\"category\":\"Food\"}]\n```",
			want: `[{"category":"Food"}]`,
		},
		{
			name: "prose around array",
			raw:  "Here is the result:\n[1, 2, 3]\nHope that helps!",
			want: `[1, 2, 3]`,
		},
		{
			name: "prose around object",
			raw:  "Sure! {\"score\": 80} is my answer.",
			want: `{"score": 80}`,
		},
		{
			name: "surrounding whitespace",
			raw:  "\n\n  {\"a\":1}  \n",
			want: `{"a":1}`,
		},
		{
			name: "no json at all passes through",
			raw:  "I cannot answer that",
			want: "I cannot answer that",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanModelJSON(tt.raw)
			if got != tt.want {
				t.Errorf("cleanModelJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewClient with empty key = %v, want ErrMissingAPIKey", err)
	}

	_, err = NewClient(context.Background(), "   ", DefaultModel)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewClient with blank key = %v, want ErrMissingAPIKey", err)
	}
}

func TestCategoryEnum_CoversFallback(t *testing.T) {
	found := false
	for _, c := range categoryEnum() {
		if c == "Uncategorized" {
			found = true
		}
	}
	if !found {
		t.Error("schema category enum must allow Uncategorized")
	}
}
