// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ai generates short site descriptions with an external text model.

# Architecture

  - [Provider]: One completion call. [OpenAIProvider] talks to any
    OpenAI-compatible chat endpoint (Gemini by default) and reduces provider
    failures to the sentinel errors below.
  - [Quota]: Optional per-user hourly cap. [RedisQuota] keeps the counters.
  - [Service]: Prompt, post-processing and the mapping of sentinels onto
    client-facing errors.
*/
package ai

import (
	"context"
	"errors"
	"fmt"
)

// Provider runs a single prompt against a text generation model.
type Provider interface {
	Complete(context context.Context, prompt string) (string, error)
}

// Quota decides whether a user may run another generation.
type Quota interface {
	Allow(context context.Context, userID string) (bool, error)
}

// Provider failure signals. Implementations wrap them so errors.Is works.
var (
	ErrInvalidCredential = errors.New("ai: invalid credential")
	ErrQuotaExceeded     = errors.New("ai: provider quota exceeded")
	ErrSafetyBlocked     = errors.New("ai: blocked by safety filters")
	ErrTimeout           = errors.New("ai: provider timed out")
)

const (
	// MinDescriptionLength rejects near-empty completions.
	MinDescriptionLength = 10
	// MaxDescriptionLength caps the returned text, ellipsis included.
	MaxDescriptionLength = 500

	ellipsis = "..."

	FieldTitle       = "title"
	FieldDescription = "description"
)

const promptTemplate = `Write a short, engaging description (2-3 sentences, at most 500 characters) for a website titled %q.
Make it informative and appealing so that readers want to visit.
Focus on what makes the website useful or interesting.`

// Prompt renders the fixed generation prompt for title.
func Prompt(title string) string {
	return fmt.Sprintf(promptTemplate, title)
}
