// Package extract converts free-text chat messages into structured
// transaction proposals. Two interchangeable strategies satisfy the same
// contract: a generative backend and a deterministic keyword heuristic.
package extract

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hprasetyo/finbot/internal/domain"
)

// ErrNoFinancialIntent indicates the message does not describe a
// transaction at all.
var ErrNoFinancialIntent = errors.New("extract: no financial intent detected")

// ErrNoAmount indicates a financial message without any numeric amount.
// An absent amount is a hard failure; amounts are never fabricated.
var ErrNoAmount = errors.New("extract: no amount found in message")

// Extractor turns one message into a complete proposal or fails. A partial
// proposal is never returned.
type Extractor interface {
	Extract(ctx context.Context, message string) (domain.Proposal, error)
}

// Fallback tries a primary extractor and falls back to a secondary one
// when the primary call or parse fails. The strategy pair is resolved once
// at startup, not per call.
type Fallback struct {
	primary   Extractor
	secondary Extractor
	log       zerolog.Logger
}

// NewFallback composes two extractors into one.
func NewFallback(primary, secondary Extractor, log zerolog.Logger) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, log: log}
}

// Extract implements the Extractor interface.
func (f *Fallback) Extract(ctx context.Context, message string) (domain.Proposal, error) {
	proposal, err := f.primary.Extract(ctx, message)
	if err == nil {
		return proposal, nil
	}

	f.log.Warn().Err(err).Msg("Primary extractor failed, falling back")
	return f.secondary.Extract(ctx, message)
}
