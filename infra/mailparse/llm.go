package mailparse

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/meetwise/meetwise/core/logger"
	"github.com/meetwise/meetwise/core/model"
	"github.com/meetwise/meetwise/core/output"
)

// LLM refines vague requests through an OpenAI-compatible chat endpoint.
// The heuristic result is computed first; the model is consulted only when
// the heuristic found no time constraint, and any model failure or
// non-conforming reply falls back to the heuristic result.
type LLM struct {
	client    *openai.Client
	model     string
	timeout   time.Duration
	heuristic Heuristic
	log       logger.Logger
}

// NewLLM creates an LLM parser from the configuration.
func NewLLM(cfg Config, log logger.Logger) *LLM {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &LLM{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		heuristic: Heuristic{Log: log},
		log:       log,
	}
}

// llmReply is the JSON shape requested from the model.
type llmReply struct {
	MeetingDuration int    `json:"meeting_duration"`
	TimeConstraints string `json:"time_constraints"`
	Subject         string `json:"subject"`
}

// Parse implements Parser.
func (l *LLM) Parse(ctx context.Context, req output.Request) (model.Request, error) {
	base, err := l.heuristic.Parse(ctx, req)
	if err != nil {
		return model.Request{}, err
	}
	if base.Constraint != model.ConstraintFlexible {
		return base, nil
	}

	reply, err := l.complete(ctx, req.EmailContent)
	if err != nil {
		l.log.Warnf("llm parse failed for request %s, using heuristic: %v", req.RequestID, err)
		return base, nil
	}

	if reply.MeetingDuration > 0 {
		base.DurationMinutes = reply.MeetingDuration
	}
	if reply.TimeConstraints != "" {
		base.Constraint = model.ConstraintFromText(reply.TimeConstraints)
	}
	if base.Subject == "Meeting" && reply.Subject != "" {
		base.Subject = reply.Subject
	}
	return base, nil
}

func (l *LLM) complete(ctx context.Context, emailContent string) (llmReply, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`Extract meeting details and return as JSON:
1. meeting_duration (minutes, default: 30)
2. time_constraints (day/time)
3. subject

Email: %s`, emailContent)

	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       l.model,
		Temperature: 0,
		MaxTokens:   150,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return llmReply{}, err
	}
	if len(resp.Choices) == 0 {
		return llmReply{}, fmt.Errorf("empty completion response")
	}

	var reply llmReply
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return llmReply{}, fmt.Errorf("non-conforming completion: %w", err)
	}
	return reply, nil
}
