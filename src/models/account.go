package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID               int64               `json:"id"`
	ItemID           int64               `json:"item_id"`
	PlaidAccountID   string              `json:"plaid_account_id"`
	Name             string              `json:"name"`
	Mask             string              `json:"mask"`
	Type             string              `json:"account_type"`
	Subtype          string              `json:"account_subtype"`
	CurrentBalance   decimal.NullDecimal `json:"current_balance"`
	AvailableBalance decimal.NullDecimal `json:"available_balance"`
	CurrencyCode     string              `json:"currency_code"`
	CreatedAt        time.Time           `json:"created_at"`
}
