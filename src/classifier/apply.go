package classifier

import (
	"context"
	"fmt"

	"fininsight-server/src/models"
)

type TransactionStore interface {
	GetUncategorizedTransactions(ctx context.Context) ([]models.Transaction, error)
	SetTransactionCategory(ctx context.Context, id int64, category []string) error
}

// Categorize predicts a category for every transaction missing one and
// persists it as a single-element list, matching the aggregator's
// category-as-list convention. Running it again is a no-op: the first pass
// leaves no null-category rows behind.
func Categorize(ctx context.Context, store TransactionStore, p *Pipeline) (int, error) {
	transactions, err := store.GetUncategorizedTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("load uncategorized transactions: %w", err)
	}

	updated := 0
	for _, txn := range transactions {
		category := p.Predict(txn.Name)
		if err := store.SetTransactionCategory(ctx, txn.ID, []string{category}); err != nil {
			return updated, fmt.Errorf("update transaction %d: %w", txn.ID, err)
		}
		updated++
	}
	return updated, nil
}
