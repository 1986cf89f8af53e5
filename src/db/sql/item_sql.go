package db

import (
	"context"

	"fininsight-server/src/models"
)

func (s *Store) ItemExistsForInstitution(ctx context.Context, userID int64, institutionID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM plaid_items WHERE user_id = $1 AND institution_id = $2)`

	var exists bool
	if err := s.Pool.QueryRow(ctx, query, userID, institutionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) CreateItem(ctx context.Context, item *models.PlaidItem) error {
	query := `
		INSERT INTO plaid_items (user_id, access_token, item_id, institution_id, institution_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	return s.Pool.QueryRow(ctx, query,
		item.UserID,
		item.AccessToken,
		item.ItemID,
		item.InstitutionID,
		item.InstitutionName,
	).Scan(&item.ID, &item.CreatedAt)
}

func (s *Store) GetItemsForUser(ctx context.Context, userID int64) ([]models.PlaidItem, error) {
	query := `
		SELECT id, user_id, access_token, item_id, COALESCE(institution_id, ''), COALESCE(institution_name, ''), created_at
		FROM plaid_items
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := s.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PlaidItem
	for rows.Next() {
		var item models.PlaidItem
		err := rows.Scan(&item.ID, &item.UserID, &item.AccessToken, &item.ItemID, &item.InstitutionID, &item.InstitutionName, &item.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
