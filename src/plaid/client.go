package plaid

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Client is the narrow surface of the Plaid API this service depends on.
// The linking and sync components are written against it so they can be
// tested with a stub.
type Client interface {
	CreateLinkToken(ctx context.Context, userID int64) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (ExchangeResult, error)
	GetAccounts(ctx context.Context, accessToken string) ([]AccountData, error)
	GetTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]TransactionData, error)
}

type ExchangeResult struct {
	AccessToken string
	ItemID      string
}

type AccountData struct {
	AccountID        string
	Name             string
	Mask             string
	Type             string
	Subtype          string
	CurrentBalance   decimal.NullDecimal
	AvailableBalance decimal.NullDecimal
	CurrencyCode     string
}

type TransactionData struct {
	TransactionID string
	AccountID     string
	Name          string
	Amount        decimal.Decimal
	CurrencyCode  string
	Date          time.Time
	Category      []string
	Pending       bool
}

// APIError carries a structured Plaid error along with the HTTP status the
// external API responded with, so handlers can propagate both verbatim.
type APIError struct {
	StatusCode   int    `json:"-"`
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	RequestID    string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("plaid: %s %s: %s", e.ErrorType, e.ErrorCode, e.ErrorMessage)
}
