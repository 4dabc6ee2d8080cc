package flow

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Akshit7103/IVR/internal/store"
)

type stepKind int

const (
	// stepAnnounce speaks and advances (or hangs up) with no listening phase.
	stepAnnounce stepKind = iota
	// stepQuestion speaks a prompt and then enters the listen phase.
	stepQuestion
)

type stepDef struct {
	kind     stepKind
	next     int  // advance target for stepAnnounce
	terminal bool // hang up after speaking
	resolve  bool // record Resolved on entry
	hints    []string
	reprompt string
	prompt   func(txn *store.Transaction) string
}

const defaultReprompt = "We did not receive that. Please answer after the beep."

var steps = map[int]stepDef{
	0: {
		kind:     stepQuestion,
		hints:    []string{"yes", "no"},
		reprompt: defaultReprompt,
		prompt:   step0Prompt,
	},
	1: {
		kind:     stepQuestion,
		hints:    []string{"yes", "no"},
		reprompt: defaultReprompt,
		prompt: constPrompt(
			"Have you shared your card details with anyone recently?"),
	},
	2: {
		kind:     stepQuestion,
		hints:    []string{"yes", "no"},
		reprompt: defaultReprompt,
		prompt: constPrompt(
			"Have you noticed any other suspicious transactions in your account?"),
	},
	3: {
		kind: stepAnnounce,
		next: 4,
		prompt: constPrompt(
			"Thank you for the information. We will block this transaction and issue a new card for your safety."),
	},
	4: {
		kind:     stepQuestion,
		hints:    []string{"physical", "virtual"},
		reprompt: "We did not receive that. Please say physical or virtual after the beep.",
		prompt: constPrompt(
			"Would you like to receive a physical card by mail, or a virtual card for immediate use?"),
	},
	5: {
		kind: stepAnnounce,
		next: 6,
		prompt: constPrompt(
			"Your new physical card will arrive within 3 to 5 business days."),
	},
	6: {
		kind: stepAnnounce,
		next: 7,
		prompt: constPrompt(
			"Meanwhile, a virtual card has been issued through your mobile banking app."),
	},
	7: {
		kind:     stepAnnounce,
		terminal: true,
		resolve:  true,
		prompt: constPrompt(
			"Also, a fraud case has been logged for this transaction. " +
				"Thank you for your time, and rest assured your account is secure. Goodbye."),
	},
	8: {
		kind:     stepAnnounce,
		terminal: true,
		resolve:  true,
		prompt: constPrompt(
			"A virtual card has been issued through your mobile banking app for immediate use. " +
				"A fraud case has been logged for this transaction. " +
				"Thank you for your cooperation, and your account is secure. Goodbye."),
	},
}

func constPrompt(text string) func(*store.Transaction) string {
	return func(*store.Transaction) string { return text }
}

// step0Prompt renders the opening prompt. A missing record degrades to
// placeholder language; the call itself must not fail.
func step0Prompt(txn *store.Transaction) string {
	if txn == nil {
		return "Hello. We have a security alert. Did you make the transaction?"
	}
	return fmt.Sprintf(
		"Hello %s, this is an automated call from your bank's security team. "+
			"We noticed a recent transaction at %s, for an amount of %s, on %s, "+
			"made using your %s card ending in %s. "+
			"Could you please confirm if you authorized this transaction?",
		txn.ClientName, txn.MerchantName, amountToWords(txn.Amount),
		txn.TransactionDate, txn.BankName, txn.CardLast4())
}

// amountToWords renders a decimal amount as spoken rupees and paise.
func amountToWords(amount decimal.Decimal) string {
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).
		Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if paise > 0 {
		return fmt.Sprintf("%d rupees and %d paise", rupees, paise)
	}
	return fmt.Sprintf("%d rupees", rupees)
}
