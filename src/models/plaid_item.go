package models

import "time"

// PlaidItem is one authorized connection to a financial institution. The
// access token is the durable credential for all later API calls.
type PlaidItem struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	AccessToken     string    `json:"-"`
	ItemID          string    `json:"item_id"`
	InstitutionID   string    `json:"institution_id"`
	InstitutionName string    `json:"institution_name"`
	CreatedAt       time.Time `json:"created_at"`
}
