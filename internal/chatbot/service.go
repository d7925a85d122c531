package chatbot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/inspectra/inspection-management/internal"
	"github.com/inspectra/inspection-management/internal/auth"
	"github.com/inspectra/inspection-management/internal/dashboard"
)

// CompletionClientAPI is the slice of the openai client the service needs.
type CompletionClientAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type StatsProviderAPI interface {
	GetStats(actor *auth.User, orgID string) (*dashboard.Stats, error)
}

type Service struct {
	client  CompletionClientAPI
	stats   StatsProviderAPI
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewService(client CompletionClientAPI, stats StatsProviderAPI, model string, timeout time.Duration, logger *slog.Logger) *Service {
	return &Service{
		client:  client,
		stats:   stats,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// NewClient builds the openai client from config. A custom base URL points
// the client at a compatible self-hosted endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	if baseURL == "" {
		return openai.NewClient(apiKey)
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return openai.NewClientWithConfig(cfg)
}

// Ask forwards one user message to the completion endpoint with the caller's
// dashboard numbers folded into the system prompt, so answers can reference
// the actual state of the organization.
func (s *Service) Ask(ctx context.Context, actor *auth.User, dto MessageDTO) (*MessageResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: s.systemPrompt(actor)},
			{Role: openai.ChatMessageRoleUser, Content: dto.Message},
		},
	})
	if err != nil {
		s.logger.Error("assistant request failed", "error", err, "user_id", actor.ID)
		return nil, internal.NewExternalError("assistant request failed", internal.ErrCodeAssistantFailed, err)
	}
	if len(resp.Choices) == 0 {
		s.logger.Error("assistant returned no choices", "user_id", actor.ID)
		return nil, internal.NewExternalError("assistant returned an empty response", internal.ErrCodeAssistantFailed, nil)
	}

	s.logger.Info("assistant reply generated", "user_id", actor.ID, "model", s.model)
	return &MessageResponse{
		Reply: resp.Choices[0].Message.Content,
		Model: s.model,
	}, nil
}

func (s *Service) systemPrompt(actor *auth.User) string {
	var b strings.Builder
	b.WriteString("You are a safety inspection assistant for a multi-tenant inspection platform. ")
	b.WriteString("Answer questions about inspections, checklists, corrective action plans and compliance. ")
	b.WriteString("Be concise, and say so when a question needs data you do not have.\n")
	fmt.Fprintf(&b, "The caller has role %s in organization %s.\n", actor.Role, actor.OrgID)

	stats, err := s.stats.GetStats(actor, actor.OrgID)
	if err != nil {
		// Prompt context is optional; the assistant still answers without it.
		s.logger.Warn("failed to load stats for assistant prompt", "error", err, "org_id", actor.OrgID)
		return b.String()
	}

	b.WriteString("Current numbers for the caller's organization subtree:\n")
	fmt.Fprintf(&b, "- organizations: %d\n", stats.OrgCount)
	for status, count := range stats.InspectionsByStatus {
		fmt.Fprintf(&b, "- inspections %s: %d\n", status, count)
	}
	if stats.AverageScore != nil {
		fmt.Fprintf(&b, "- average inspection score: %.1f\n", *stats.AverageScore)
	}
	fmt.Fprintf(&b, "- open action plans: %d (%d overdue)\n", stats.OpenActionPlans, stats.OverdueActionPlans)
	if stats.ComplianceRate != nil {
		fmt.Fprintf(&b, "- compliance rate: %.1f%%\n", *stats.ComplianceRate)
	}
	return b.String()
}
