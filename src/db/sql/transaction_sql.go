package db

import (
	"context"

	"fininsight-server/src/models"
	"fininsight-server/src/plaid"
)

// UpsertTransaction creates or refreshes a mirrored transaction keyed on the
// external transaction id. Category is set only on first insert: a re-sync
// never overwrites what the categorizer (or an earlier sync) stored.
func (s *Store) UpsertTransaction(ctx context.Context, accountID int64, txn plaid.TransactionData) error {
	query := `
		INSERT INTO transactions (account_id, plaid_transaction_id, name, amount, iso_currency_code, date, category, pending)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (plaid_transaction_id) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			name = EXCLUDED.name,
			amount = EXCLUDED.amount,
			iso_currency_code = EXCLUDED.iso_currency_code,
			date = EXCLUDED.date,
			pending = EXCLUDED.pending
	`

	var category []string
	if len(txn.Category) > 0 {
		category = txn.Category
	}

	_, err := s.Pool.Exec(ctx, query,
		accountID,
		txn.TransactionID,
		txn.Name,
		txn.Amount,
		txn.CurrencyCode,
		models.NewDate(txn.Date),
		category,
		txn.Pending,
	)
	return err
}

func (s *Store) GetTransactionsInRange(ctx context.Context, userID int64, start, end models.Date) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.account_id, t.plaid_transaction_id, t.name, t.amount, COALESCE(t.iso_currency_code, ''), t.date, t.category, t.pending, t.created_at
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN plaid_items p ON a.item_id = p.id
		WHERE p.user_id = $1 AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date DESC, t.id DESC
	`

	rows, err := s.Pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		err := rows.Scan(&txn.ID, &txn.AccountID, &txn.PlaidTransactionID, &txn.Name, &txn.Amount, &txn.CurrencyCode, &txn.Date, &txn.Category, &txn.Pending, &txn.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

func (s *Store) GetUncategorizedTransactions(ctx context.Context) ([]models.Transaction, error) {
	query := `
		SELECT id, account_id, plaid_transaction_id, name, amount, COALESCE(iso_currency_code, ''), date, category, pending, created_at
		FROM transactions
		WHERE category IS NULL
		ORDER BY id
	`

	rows, err := s.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		err := rows.Scan(&txn.ID, &txn.AccountID, &txn.PlaidTransactionID, &txn.Name, &txn.Amount, &txn.CurrencyCode, &txn.Date, &txn.Category, &txn.Pending, &txn.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

func (s *Store) SetTransactionCategory(ctx context.Context, id int64, category []string) error {
	query := `UPDATE transactions SET category = $1 WHERE id = $2`
	_, err := s.Pool.Exec(ctx, query, category, id)
	return err
}
