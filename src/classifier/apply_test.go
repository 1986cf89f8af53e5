package classifier

import (
	"context"
	"errors"
	"testing"

	"fininsight-server/src/models"
)

type mockTransactionStore struct {
	uncategorized []models.Transaction
	updates       map[int64][]string
	setErr        error
}

func (m *mockTransactionStore) GetUncategorizedTransactions(ctx context.Context) ([]models.Transaction, error) {
	return m.uncategorized, nil
}

func (m *mockTransactionStore) SetTransactionCategory(ctx context.Context, id int64, category []string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.updates == nil {
		m.updates = make(map[int64][]string)
	}
	m.updates[id] = category
	return nil
}

func TestCategorize(t *testing.T) {
	p := trainedPipeline(t)
	store := &mockTransactionStore{
		uncategorized: []models.Transaction{
			{ID: 1, Name: "STARBUCKS #123"},
			{ID: 2, Name: "UBER TRIP"},
		},
	}

	updated, err := Categorize(context.Background(), store, p)
	if err != nil {
		t.Fatalf("Categorize() failed: %v", err)
	}
	if updated != 2 {
		t.Errorf("Categorize() updated = %d, want 2", updated)
	}

	for id, category := range store.updates {
		if len(category) != 1 {
			t.Errorf("transaction %d got category %v, want a single-element list", id, category)
		}
	}
	if got := store.updates[1]; len(got) != 1 || got[0] != "Food and Drink" {
		t.Errorf("transaction 1 category = %v, want [Food and Drink]", got)
	}
}

func TestCategorizeIdempotent(t *testing.T) {
	p := trainedPipeline(t)

	// A second run sees no null-category rows and writes nothing.
	store := &mockTransactionStore{}
	updated, err := Categorize(context.Background(), store, p)
	if err != nil {
		t.Fatalf("Categorize() failed: %v", err)
	}
	if updated != 0 {
		t.Errorf("Categorize() updated = %d, want 0", updated)
	}
	if len(store.updates) != 0 {
		t.Errorf("Categorize() wrote %d updates, want 0", len(store.updates))
	}
}

func TestCategorizeWriteFailure(t *testing.T) {
	p := trainedPipeline(t)
	store := &mockTransactionStore{
		uncategorized: []models.Transaction{{ID: 1, Name: "STARBUCKS"}},
		setErr:        errors.New("db down"),
	}

	updated, err := Categorize(context.Background(), store, p)
	if err == nil {
		t.Fatal("Categorize() should surface store write failures")
	}
	if updated != 0 {
		t.Errorf("Categorize() updated = %d, want 0", updated)
	}
}
