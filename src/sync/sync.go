// Package sync pulls date-windowed transactions from the aggregator for each
// of a user's linked institutions and merges them into the local mirror.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fininsight-server/src/models"
	"fininsight-server/src/plaid"
)

var ErrNoLinkedItems = errors.New("no linked institutions")

type Store interface {
	GetItemsForUser(ctx context.Context, userID int64) ([]models.PlaidItem, error)
	FindAccountIDByPlaidID(ctx context.Context, plaidAccountID string) (int64, bool, error)
	UpsertTransaction(ctx context.Context, accountID int64, txn plaid.TransactionData) error
	GetTransactionsInRange(ctx context.Context, userID int64, start, end models.Date) ([]models.Transaction, error)
}

type Syncer struct {
	Client plaid.Client
	Store  Store
}

// Sync fetches [start, end] from the external API for every linked
// institution, upserts the results keyed on external transaction id, and
// returns the user's mirrored transactions for the same window, newest first.
//
// An external failure aborts the whole request; rows already upserted for
// earlier institutions stay committed. A transaction referencing an account
// not mirrored locally is skipped, not raised.
func (s *Syncer) Sync(ctx context.Context, userID int64, start, end models.Date) ([]models.Transaction, error) {
	items, err := s.Store.GetItemsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load linked institutions: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoLinkedItems
	}

	for _, item := range items {
		transactions, err := s.Client.GetTransactions(ctx, item.AccessToken, start.Time, end.Time)
		if err != nil {
			return nil, err
		}

		for _, txn := range transactions {
			accountID, found, err := s.Store.FindAccountIDByPlaidID(ctx, txn.AccountID)
			if err != nil {
				return nil, fmt.Errorf("look up account %s: %w", txn.AccountID, err)
			}
			if !found {
				log.Printf("INFO: Skipping transaction %s: account %s not found in local DB", txn.TransactionID, txn.AccountID)
				continue
			}
			if err := s.Store.UpsertTransaction(ctx, accountID, txn); err != nil {
				return nil, fmt.Errorf("upsert transaction %s: %w", txn.TransactionID, err)
			}
		}
	}

	return s.Store.GetTransactionsInRange(ctx, userID, start, end)
}
