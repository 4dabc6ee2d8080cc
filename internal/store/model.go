package store

import "github.com/shopspring/decimal"

// Transaction is a card transaction under fraud review. Records are created
// out-of-band; this service only reads them to drive calls and updates the
// phone number and the action label.
type Transaction struct {
	ID              string          `json:"id" yaml:"id"`
	ClientName      string          `json:"client_name" yaml:"client_name"`
	ClientPhone     string          `json:"client_phone" yaml:"client_phone"`
	MerchantName    string          `json:"merchant_name" yaml:"merchant_name"`
	Amount          decimal.Decimal `json:"amount" yaml:"amount"`
	TransactionDate string          `json:"transaction_date" yaml:"transaction_date"`
	BankName        string          `json:"bank_name" yaml:"bank_name"`
	CardNumber      string          `json:"card_number" yaml:"card_number"`
	Action          string          `json:"action" yaml:"action"`
}

// CardLast4 returns the last four digits of the card number. Only these four
// digits are ever spoken or displayed.
func (t *Transaction) CardLast4() string {
	if len(t.CardNumber) <= 4 {
		return t.CardNumber
	}
	return t.CardNumber[len(t.CardNumber)-4:]
}
