package db

import (
	"context"
	"errors"

	"fininsight-server/src/models"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (item_id, plaid_account_id, name, mask, account_type, account_subtype, current_balance, available_balance, currency_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	return s.Pool.QueryRow(ctx, query,
		account.ItemID,
		account.PlaidAccountID,
		account.Name,
		account.Mask,
		account.Type,
		account.Subtype,
		account.CurrentBalance,
		account.AvailableBalance,
		account.CurrencyCode,
	).Scan(&account.ID, &account.CreatedAt)
}

// FindAccountIDByPlaidID resolves the local account for an external account
// id. A missing row is not an error: the sync pipeline skips transactions
// for accounts it does not mirror yet.
func (s *Store) FindAccountIDByPlaidID(ctx context.Context, plaidAccountID string) (int64, bool, error) {
	query := `SELECT id FROM accounts WHERE plaid_account_id = $1`

	var id int64
	err := s.Pool.QueryRow(ctx, query, plaidAccountID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
