package conversation

import (
	"github.com/hprasetyo/finbot/internal/domain"
	"github.com/hprasetyo/finbot/internal/format"
)

const helpMessage = "🤖 Financial Assistant Help\n\n" +
	"📝 To record transactions:\n" +
	"• Expense: 'spent 50000 on lunch'\n" +
	"• Income: 'received 1000000 salary'\n\n" +
	"📊 Reports:\n" +
	"• 'balance' - Check current balance\n" +
	"• 'report' - Monthly report\n" +
	"• 'budget' - Budget analysis\n\n" +
	"❓ Other commands:\n" +
	"• 'help' - Show this message\n" +
	"• 'cancel' - Cancel current operation"

const clarificationMessage = "🤔 I couldn't read that as a transaction.\n" +
	"Try something like 'spent 50000 on lunch' or 'received 1000000 salary'.\n" +
	"Type 'help' for all commands."

const repromptMessage = "❓ Please type \"confirm\" to save the transaction or \"cancel\" to discard it."

const cancelledMessage = "❌ Transaction cancelled."

const nothingPendingMessage = "ℹ️ There is no pending transaction. " +
	"Send a message like 'spent 50000 on lunch' to record one."

func confirmationPrompt(p domain.Proposal) string {
	label := "expense"
	if p.Kind == domain.Income {
		label = "income"
	}
	return "📝 New " + label + " detected:\n" +
		"💵 Amount: " + format.Rupiah(p.Amount) + "\n" +
		"📂 Category: " + p.Category + "\n" +
		"📄 Description: " + p.Description + "\n\n" +
		"Type 'confirm' to save or 'cancel' to discard."
}

func recordedMessage(balance string) string {
	return "✅ Transaction recorded successfully!\n💰 Current balance: " + balance
}

func balanceMessage(balance string) string {
	return "💰 Current Balance: " + balance
}
