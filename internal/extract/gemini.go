package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"github.com/hprasetyo/finbot/internal/domain"
)

// Gemini is the generative extraction strategy. The model is asked for a
// fixed-shape JSON object; the first balanced object substring in the
// reply is parsed and validated.
type Gemini struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGemini creates the Gemini-backed extractor.
func NewGemini(ctx context.Context, apiKey, model string, log zerolog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("extract: create genai client: %w", err)
	}
	return &Gemini{client: client, model: model, log: log}, nil
}

// Extract implements the Extractor interface.
func (g *Gemini) Extract(ctx context.Context, message string) (domain.Proposal, error) {
	prompt := buildExtractionPrompt(message)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return domain.Proposal{}, fmt.Errorf("extract: generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return domain.Proposal{}, fmt.Errorf("extract: empty response from model")
	}

	proposal, err := ParseProposal(rawText)
	if err != nil {
		g.log.Debug().Str("raw", rawText).Err(err).Msg("Model reply did not parse")
		return domain.Proposal{}, err
	}
	return proposal, nil
}

func buildExtractionPrompt(message string) string {
	return "You are a financial message parser for a WhatsApp expense bot.\n\n" +
		"Task:\n" +
		"- Decide whether the message below records an income or an expense.\n" +
		"- Output STRICT JSON only (no comments, no extra text).\n" +
		"- Output a single JSON object.\n\n" +
		"The object must have these fields:\n" +
		"- \"type\": string, \"income\" or \"expense\"\n" +
		"- \"amount\": number, positive\n" +
		"- \"category\": string, a short lowercase label such as \"food\" or \"salary\"\n" +
		"- \"description\": string, a short restatement of the transaction\n\n" +
		"Rules:\n" +
		"- If the message does not describe a financial transaction, output {\"type\": \"none\"}.\n" +
		"- Never invent an amount that is not present in the message.\n" +
		"- Do NOT wrap the response in code fences.\n\n" +
		"Message: " + message + "\n"
}

// maxReplyLen keeps narrated replies inside the WhatsApp message limit.
const maxReplyLen = 1500

// Narrate asks the model for a short budget analysis over one month's
// category totals. Used by the report generator when Gemini is configured.
func (g *Gemini) Narrate(ctx context.Context, totals domain.CategoryTotals) (string, error) {
	var b strings.Builder
	b.WriteString("You are a personal finance assistant on WhatsApp.\n")
	b.WriteString("Write a short, friendly budget analysis (plain text, under 1000 characters) of this month's totals in Indonesian rupiah.\n")
	b.WriteString("Mention the largest spending categories and one practical suggestion.\n\n")
	b.WriteString("Expenses:\n")
	for _, t := range totals.Expense {
		fmt.Fprintf(&b, "- %s: %s\n", t.Category, t.Total)
	}
	b.WriteString("Income:\n")
	for _, t := range totals.Income {
		fmt.Fprintf(&b, "- %s: %s\n", t.Category, t.Total)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: b.String()},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("extract: narrate budget: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("extract: empty narration from model")
	}
	if len(text) > maxReplyLen {
		text = text[:maxReplyLen]
	}
	return text, nil
}

// ParseProposal extracts and validates the first balanced JSON object
// found in a model reply. Code fences and surrounding prose are tolerated.
func ParseProposal(raw string) (domain.Proposal, error) {
	obj, err := firstJSONObject(raw)
	if err != nil {
		return domain.Proposal{}, err
	}

	var payload struct {
		Type        string      `json:"type"`
		Amount      json.Number `json:"amount"`
		Category    string      `json:"category"`
		Description string      `json:"description"`
	}
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return domain.Proposal{}, fmt.Errorf("extract: unmarshal model object: %w", err)
	}

	kind := domain.TransactionKind(strings.ToLower(strings.TrimSpace(payload.Type)))
	if !kind.Valid() {
		return domain.Proposal{}, ErrNoFinancialIntent
	}

	if payload.Amount == "" {
		return domain.Proposal{}, ErrNoAmount
	}
	amount, err := decimal.NewFromString(payload.Amount.String())
	if err != nil || !amount.IsPositive() {
		return domain.Proposal{}, ErrNoAmount
	}

	proposal := domain.Proposal{
		Kind:        kind,
		Amount:      amount,
		Category:    strings.TrimSpace(payload.Category),
		Description: strings.TrimSpace(payload.Description),
	}
	if err := proposal.Validate(); err != nil {
		return domain.Proposal{}, fmt.Errorf("extract: incomplete proposal: %w", err)
	}
	return proposal, nil
}

// firstJSONObject returns the first balanced {...} substring of s. The
// scan is string-literal aware so braces inside values do not unbalance
// the depth count.
func firstJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", fmt.Errorf("extract: no JSON object in model reply")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("extract: unbalanced JSON object in model reply")
}
