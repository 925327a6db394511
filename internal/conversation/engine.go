// Package conversation drives the per-sender state machine that turns
// free-text messages into confirmed ledger transactions. State is implicit:
// a sender with a pending proposal is awaiting confirmation, everyone else
// is idle.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hprasetyo/finbot/internal/chatlog"
	"github.com/hprasetyo/finbot/internal/extract"
	"github.com/hprasetyo/finbot/internal/format"
	"github.com/hprasetyo/finbot/internal/ledger"
	"github.com/hprasetyo/finbot/internal/messenger"
	"github.com/hprasetyo/finbot/internal/report"
)

// Reserved commands. Matching is case-insensitive against the whole
// trimmed message; a sentence merely containing a command word falls
// through to extraction.
const (
	cmdHelp    = "help"
	cmdBalance = "balance"
	cmdReport  = "report"
	cmdBudget  = "budget"
	cmdConfirm = "confirm"
	cmdCancel  = "cancel"
)

// Deps are the collaborators the engine is built from. All of them are
// resolved once at process start.
type Deps struct {
	Store     Store
	Ledger    ledger.Ledger
	Messenger messenger.Messenger
	Extractor extract.Extractor
	Budget    *report.Generator
	ChatLog   chatlog.Log
	Log       zerolog.Logger
}

// Engine is the conversational state machine.
type Engine struct {
	store     Store
	ledger    ledger.Ledger
	messenger messenger.Messenger
	extractor extract.Extractor
	budget    *report.Generator
	chat      chatlog.Log
	log       zerolog.Logger
	locks     *senderLocks

	now func() time.Time
}

// New creates an engine from its collaborators.
func New(deps Deps) *Engine {
	return &Engine{
		store:     deps.Store,
		ledger:    deps.Ledger,
		messenger: deps.Messenger,
		extractor: deps.Extractor,
		budget:    deps.Budget,
		chat:      deps.ChatLog,
		log:       deps.Log,
		locks:     newSenderLocks(),
		now:       time.Now,
	}
}

// HandleMessage processes one inbound message from sender and sends the
// reply. Handling for the same sender is serialized; extraction failures
// and delivery failures are absorbed into user-visible replies, so an
// error return means something genuinely unexpected happened.
func (e *Engine) HandleMessage(ctx context.Context, sender, text string) error {
	lock := e.locks.acquire(sender)
	defer lock.Unlock()

	if e.store.Has(sender) {
		return e.resolvePending(ctx, sender, text)
	}
	return e.handleIdle(ctx, sender, text)
}

// resolvePending handles the AwaitingConfirmation state. Only confirm and
// cancel consume the entry; anything else re-prompts and leaves it intact.
func (e *Engine) resolvePending(ctx context.Context, sender, text string) error {
	switch command(text) {
	case cmdConfirm:
		proposal, ok := e.store.Get(sender)
		if !ok {
			// Entry expired between Has and Get; treat as idle.
			return e.handleIdle(ctx, sender, text)
		}

		record, err := e.ledger.Append(ctx, proposal)
		if err != nil {
			// Only reachable with an unbuffered ledger. Keep the entry so
			// the sender can confirm again.
			return fmt.Errorf("conversation: append confirmed proposal: %w", err)
		}

		e.log.Info().
			Str("sender", sender).
			Str("kind", string(record.Kind)).
			Str("amount", record.Amount.String()).
			Str("category", record.Category).
			Msg("Transaction recorded")

		e.store.Remove(sender)
		e.respond(ctx, sender, text, recordedMessage(format.Rupiah(record.Balance)))
		return nil

	case cmdCancel:
		e.store.Remove(sender)
		e.respond(ctx, sender, text, cancelledMessage)
		return nil

	default:
		e.respond(ctx, sender, text, repromptMessage)
		return nil
	}
}

// handleIdle handles the Idle state: reserved commands first, everything
// else goes through extraction.
func (e *Engine) handleIdle(ctx context.Context, sender, text string) error {
	switch command(text) {
	case cmdHelp:
		e.respond(ctx, sender, text, helpMessage)
		return nil

	case cmdBalance:
		balance, err := e.ledger.CurrentBalance(ctx)
		if err != nil {
			return fmt.Errorf("conversation: balance query: %w", err)
		}
		e.respond(ctx, sender, text, balanceMessage(format.Rupiah(balance)))
		return nil

	case cmdReport:
		now := e.now()
		records, err := e.ledger.MonthlyReport(ctx, now.Month(), now.Year())
		if err != nil {
			return fmt.Errorf("conversation: monthly report: %w", err)
		}
		e.respond(ctx, sender, text, report.Monthly(records))
		return nil

	case cmdBudget:
		now := e.now()
		totals, err := e.ledger.CategoryTotals(ctx, now.Month(), now.Year())
		if err != nil {
			return fmt.Errorf("conversation: category totals: %w", err)
		}
		e.respond(ctx, sender, text, e.budget.Budget(ctx, totals))
		return nil

	case cmdConfirm, cmdCancel:
		// Nothing to resolve; replying twice with cancel must not error.
		e.respond(ctx, sender, text, nothingPendingMessage)
		return nil

	default:
		proposal, err := e.extractor.Extract(ctx, text)
		if err != nil {
			e.log.Debug().Err(err).Str("sender", sender).Msg("Extraction failed")
			e.respond(ctx, sender, text, clarificationMessage)
			return nil
		}

		e.store.Set(sender, proposal)
		e.respond(ctx, sender, text, confirmationPrompt(proposal))
		return nil
	}
}

// respond delivers the reply and records the exchange. Both are
// best-effort: a failed send yields a synthetic receipt, a failed log
// write is only logged. Neither rolls back state already committed.
func (e *Engine) respond(ctx context.Context, sender, inbound, reply string) {
	receipt := e.messenger.Send(ctx, sender, reply)
	if receipt.Status == "error" {
		e.log.Error().Str("sender", sender).Str("error", receipt.Error).Msg("Delivery failed")
	}

	if e.chat == nil {
		return
	}
	err := e.chat.Record(ctx, chatlog.Entry{
		Timestamp: e.now(),
		Sender:    sender,
		Message:   inbound,
		Response:  reply,
	})
	if err != nil {
		e.log.Warn().Err(err).Msg("Failed to record chat log entry")
	}
}

// command normalizes a message for reserved-command matching.
func command(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
