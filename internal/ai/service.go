// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/validate"
)

var generationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ai_generations_total",
		Help: "Description generation attempts by outcome.",
	},
	[]string{"outcome"},
)

// Service orchestrates description generation.
type Service struct {
	provider Provider
	quota    Quota
	logger   *slog.Logger
}

// NewService constructs an AI [Service]. A nil provider means no credential
// is configured; a nil quota disables the per-user cap.
func NewService(provider Provider, quota Quota, logger *slog.Logger) *Service {
	return &Service{provider: provider, quota: quota, logger: logger}
}

// Configured reports whether a provider credential is present.
func (service *Service) Configured() bool {
	return service.provider != nil
}

/*
Generate produces a description for a site title.

Description: The completion is trimmed, rejected when shorter than
[MinDescriptionLength] and cut to [MaxDescriptionLength] runes with a
trailing ellipsis when longer. A quota backend failure is logged and the
request proceeds.

Parameters:
  - context: context.Context
  - userID: string (quota subject)
  - title: string

Returns:
  - string: The description
  - error: Validation, RateLimited or a Generation-kind error
*/
func (service *Service) Generate(context context.Context, userID, title string) (string, error) {
	title = strings.TrimSpace(title)
	if err := (&validate.Validator{}).Required(FieldTitle, title).Err(); err != nil {
		return "", err
	}

	if !service.Configured() {
		generationsTotal.WithLabelValues("not_configured").Inc()
		return "", apperr.Generation(http.StatusInternalServerError, "AI_NOT_CONFIGURED", "AI provider API key not configured")
	}

	if service.quota != nil {
		allowed, err := service.quota.Allow(context, userID)
		switch {
		case err != nil:
			service.logger.Warn("ai_quota_unavailable", slog.Any("error", err))
		case !allowed:
			generationsTotal.WithLabelValues("rate_limited").Inc()
			return "", apperr.RateLimited("AI generation limit reached. Please try again later.")
		}
	}

	text, err := service.provider.Complete(context, Prompt(title))
	if err != nil {
		outcome, appError := translate(err)
		generationsTotal.WithLabelValues(outcome).Inc()
		service.logger.Error("ai_generation_failed",
			slog.String("outcome", outcome),
			slog.Any("error", err),
		)
		return "", appError
	}

	description := strings.TrimSpace(text)
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		generationsTotal.WithLabelValues("too_short").Inc()
		return "", apperr.Generation(http.StatusInternalServerError, "GENERATION_TOO_SHORT", "Generated description is too short")
	}

	generationsTotal.WithLabelValues("success").Inc()
	return Truncate(description), nil
}

// Truncate caps text at [MaxDescriptionLength] runes, replacing the tail with
// an ellipsis when it is cut.
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= MaxDescriptionLength {
		return text
	}

	runes := []rune(text)
	return string(runes[:MaxDescriptionLength-len(ellipsis)]) + ellipsis
}

// translate maps a provider failure onto a metric outcome and a client error.
func translate(err error) (string, *apperr.AppError) {
	switch {
	case errors.Is(err, ErrInvalidCredential):
		return "invalid_credential", apperr.Generation(http.StatusUnauthorized, "AI_INVALID_CREDENTIAL", "Invalid AI provider API key")
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded", apperr.Generation(http.StatusTooManyRequests, "AI_QUOTA_EXCEEDED", "AI provider quota exceeded")
	case errors.Is(err, ErrSafetyBlocked):
		return "blocked", apperr.Generation(http.StatusBadRequest, "AI_CONTENT_BLOCKED", "Content blocked by safety filters")
	case errors.Is(err, ErrTimeout):
		return "timeout", apperr.Generation(http.StatusRequestTimeout, "AI_TIMEOUT", "Request to AI provider timed out")
	default:
		return "failed", apperr.Generation(http.StatusInternalServerError, "GENERATION_FAILED",
			"Failed to generate description. Please try again later.").WithCause(err)
	}
}
