package llm

import (
	"context"
	"errors"
	"testing"
)

type stubClient struct {
	responses []string
	calls     int
	err       error
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	idx := s.calls
	s.calls++
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return s.responses[idx], nil
}

type targetStruct struct {
	Theme string `json:"theme"`
	Words []string `json:"words"`
}

func TestCompleteJSON_SucceedsFirstTry(t *testing.T) {
	client := &stubClient{responses: []string{`{"theme":"Voyage","words":["MER","PLAGE"]}`}}

	var out targetStruct
	if err := CompleteJSON(context.Background(), client, "prompt", &out); err != nil {
		t.Fatalf("CompleteJSON() error = %v", err)
	}
	if out.Theme != "Voyage" {
		t.Errorf("Theme = %q, want Voyage", out.Theme)
	}
	if len(out.Words) != 2 {
		t.Errorf("Words = %v, want 2 entries", out.Words)
	}
	if client.calls != 1 {
		t.Errorf("calls = %d, want 1", client.calls)
	}
}

func TestCompleteJSON_RepairsAfterMalformedJSON(t *testing.T) {
	client := &stubClient{responses: []string{
		`not json at all`,
		`{"theme":"Cuisine","words":["TARTE"]}`,
	}}

	var out targetStruct
	if err := CompleteJSON(context.Background(), client, "prompt", &out); err != nil {
		t.Fatalf("CompleteJSON() error = %v", err)
	}
	if out.Theme != "Cuisine" {
		t.Errorf("Theme = %q, want Cuisine", out.Theme)
	}
	if client.calls != 2 {
		t.Errorf("calls = %d, want 2 (one repair round)", client.calls)
	}
}

func TestCompleteJSON_GivesUpAfterMaxRepairAttempts(t *testing.T) {
	client := &stubClient{responses: []string{"garbage", "still garbage", "more garbage"}}

	var out targetStruct
	err := CompleteJSON(context.Background(), client, "prompt", &out)
	if err == nil {
		t.Fatal("CompleteJSON() error = nil, want an error")
	}
	if client.calls != maxRepairAttempts+1 {
		t.Errorf("calls = %d, want %d", client.calls, maxRepairAttempts+1)
	}
}

func TestCompleteJSON_PropagatesCompletionError(t *testing.T) {
	client := &stubClient{err: errors.New("network down")}

	var out targetStruct
	err := CompleteJSON(context.Background(), client, "prompt", &out)
	if err == nil {
		t.Fatal("CompleteJSON() error = nil, want an error")
	}
}

func TestCompleteJSON_RepairsAfterEmptyResponse(t *testing.T) {
	client := &stubClient{responses: []string{"", `{"theme":"Sport","words":["BALLON"]}`}}

	var out targetStruct
	if err := CompleteJSON(context.Background(), client, "prompt", &out); err != nil {
		t.Fatalf("CompleteJSON() error = %v", err)
	}
	if out.Theme != "Sport" {
		t.Errorf("Theme = %q, want Sport", out.Theme)
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "fenced with json tag",
			input: "```json\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "fenced without tag",
			input: "```\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "prose before and after object",
			input: `Voici le résultat: {"a":1} Merci.`,
			want:  `{"a":1}`,
		},
		{
			name:  "bare array",
			input: `[1,2,3]`,
			want:  `[1,2,3]`,
		},
		{
			name:  "prose before array",
			input: `Voici: [1,2,3]`,
			want:  `[1,2,3]`,
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("CleanJSONResponse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q, want %q", got, "short")
	}
	if got := truncate("this is a long string", 7); got != "this is..." {
		t.Errorf("truncate() = %q, want %q", got, "this is...")
	}
}

func TestRetryableError_UnwrapAndError(t *testing.T) {
	base := errors.New("boom")
	err := &RetryableError{Err: base}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want boom", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("errors.Is(err, base) = false, want true")
	}
}
