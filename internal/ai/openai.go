package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	altai "github.com/sashabaranov/go-openai"

	"benchscope/internal/model"
	"benchscope/internal/util"
)

var ErrDisabled = errors.New("openai disabled")

// OpenAIClient explains dataset records with a chat completion.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
}

func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{apiKey: apiKey, baseURL: baseURL, model: model, timeout: timeout}
}

// Enabled reports whether the client has credentials.
func (c *OpenAIClient) Enabled() bool { return c != nil && c.apiKey != "" }

// Explain returns a short plain-text overview of what the dataset is for
// and how it is typically benchmarked.
func (c *OpenAIClient) Explain(ctx context.Context, r model.Record) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	out, err := c.call(ctx2, buildExplainPrompt(r))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *OpenAIClient) call(ctx context.Context, prompt string) (string, error) {
	cfg := altai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	cli := altai.NewClientWithConfig(cfg)
	resp, err := cli.CreateChatCompletion(ctx, altai.ChatCompletionRequest{
		Model: c.model,
		Messages: []altai.ChatCompletionMessage{
			{Role: altai.ChatMessageRoleSystem, Content: "You explain machine learning benchmark datasets to practitioners. Answer in plain text, at most 8 short lines, no markdown."},
			{Role: altai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildExplainPrompt(r model.Record) string {
	var b strings.Builder
	b.WriteString("Explain this dataset: what it contains, which tasks it is used for, and what to watch out for when benchmarking on it.\n")
	line := func(k, v string) {
		if v == "" {
			return
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(util.RedactPII(v))
		b.WriteByte('\n')
	}
	line("Name", r.ID)
	line("Task", r.Task)
	line("Subtask", r.Subtask)
	line("Area", r.Area)
	line("Modalities", r.Modalities)
	line("Associated tasks", r.AssociatedTasks)
	line("Year", r.YearPublished)
	line("Size", r.DatasetSize)
	line("License", r.License)
	line("Languages", r.Languages)
	desc := r.Description
	if len(desc) > 2000 {
		desc = desc[:2000]
	}
	line("Description", desc)
	return b.String()
}
