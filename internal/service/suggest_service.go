package service

import (
	"context"
	"fmt"
	"time"

	"Chirpio/internal/model"
	"Chirpio/internal/repository"
	"Chirpio/internal/utils"

	"go.uber.org/zap"
)

// SuggestionPrompt 固定的系统提示词
const SuggestionPrompt = "You help not-for-profit organisations manage their social media. " +
	"Helping to write better posts by suggesting hashtags, improving clarity, Spelling, Grammer and adding alt text if relevant."

// TextGenerator 文本生成供应商 (OpenAI / Gemini)
type TextGenerator interface {
	Provider() string
	Model() string
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SuggestMeta 审计日志用的调用方信息，公开接口传零值；Trace ID 从 ctx 读取
type SuggestMeta struct {
	UserID         string
	OrganisationID string
}

type SuggestService struct {
	gen  TextGenerator
	logs repository.SuggestionLogRepository
	log  *zap.Logger
}

func NewSuggestService(gen TextGenerator, logs repository.SuggestionLogRepository, log *zap.Logger) *SuggestService {
	return &SuggestService{gen: gen, logs: logs, log: log}
}

// Suggest 把草稿交给模型润色，原样返回模型文本
func (s *SuggestService) Suggest(ctx context.Context, content string, meta SuggestMeta) (string, error) {
	if content == "" {
		return "", ErrMissingContent
	}

	start := time.Now()
	suggestion, err := s.gen.Generate(ctx, SuggestionPrompt, content)
	s.record(ctx, meta, len(content), suggestion, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("generate suggestion: %w", err)
	}
	return suggestion, nil
}

// record 写审计日志，失败只打日志
func (s *SuggestService) record(ctx context.Context, meta SuggestMeta, contentLen int, suggestion string, d time.Duration, genErr error) {
	if s.logs == nil {
		return
	}
	entry := &model.SuggestionLog{
		OrganisationID: optional(meta.OrganisationID),
		UserID:         optional(meta.UserID),
		TraceID:        utils.TraceID(ctx),
		Provider:       s.gen.Provider(),
		Model:          s.gen.Model(),
		ContentLen:     contentLen,
		SuggestionLen:  len(suggestion),
		DurationMs:     d.Milliseconds(),
		Status:         "success",
	}
	if genErr != nil {
		entry.Status = "failed"
		entry.ErrorMsg = genErr.Error()
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.log.Warn("⚠️ 润色日志入库失败", traceField(ctx), zap.Error(err))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
