package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors one ledger entry fetched from the aggregator. A nil
// Category means the entry has not been categorized by either the external
// API or the offline classifier.
type Transaction struct {
	ID                 int64           `json:"id"`
	AccountID          int64           `json:"account_id"`
	PlaidTransactionID string          `json:"plaid_transaction_id"`
	Name               string          `json:"name"`
	Amount             decimal.Decimal `json:"amount"`
	CurrencyCode       string          `json:"iso_currency_code"`
	Date               Date            `json:"date"`
	Category           []string        `json:"category"`
	Pending            bool            `json:"pending"`
	CreatedAt          time.Time       `json:"created_at"`
}
