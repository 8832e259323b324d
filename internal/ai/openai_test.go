package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"benchscope/internal/model"
)

func TestExplainDisabledWithoutKey(t *testing.T) {
	c := NewOpenAIClient("", "", "m", time.Second)
	if _, err := c.Explain(context.Background(), model.Record{ID: "A"}); err != ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestExplainPromptRedactsAndSkipsEmpty(t *testing.T) {
	p := buildExplainPrompt(model.Record{ID: "MNIST", Description: "contact lecun@example.com for access"})
	if strings.Contains(p, "lecun@example.com") {
		t.Fatalf("email not redacted: %s", p)
	}
	if strings.Contains(p, "License:") {
		t.Fatalf("empty field rendered: %s", p)
	}
	if !strings.Contains(p, "Name: MNIST") {
		t.Fatalf("name missing: %s", p)
	}
}

func TestExplainCallsChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "x",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": "  Handwritten digits.  "}}},
		})
	}))
	defer srv.Close()

	c := NewOpenAIClient("key", srv.URL+"/v1", "test-model", 5*time.Second)
	got, err := c.Explain(context.Background(), model.Record{ID: "MNIST"})
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if got != "Handwritten digits." {
		t.Fatalf("unexpected answer %q", got)
	}
}
