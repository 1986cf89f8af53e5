// Package link implements the institution linking flow: exchanging a
// temporary public token for a durable access token and mirroring the
// institution's accounts.
package link

import (
	"context"
	"errors"
	"fmt"

	"fininsight-server/src/models"
	"fininsight-server/src/plaid"
)

// ErrInstitutionLinked is returned when the user already has an item for the
// requested institution. Re-linking is refused, not merged.
var ErrInstitutionLinked = errors.New("institution already linked")

type Store interface {
	ItemExistsForInstitution(ctx context.Context, userID int64, institutionID string) (bool, error)
	CreateItem(ctx context.Context, item *models.PlaidItem) error
	CreateAccount(ctx context.Context, account *models.Account) error
}

type Service struct {
	Client plaid.Client
	Store  Store
}

// Result reports the outcome of a link attempt. AccountsErr is set when the
// item row was committed but its accounts could not be mirrored; the caller
// reports partial success and a later sync repairs the gap.
type Result struct {
	Item        models.PlaidItem
	NumAccounts int
	AccountsErr error
}

func (s *Service) LinkInstitution(ctx context.Context, userID int64, publicToken, institutionID, institutionName string) (*Result, error) {
	linked, err := s.Store.ItemExistsForInstitution(ctx, userID, institutionID)
	if err != nil {
		return nil, fmt.Errorf("check existing link: %w", err)
	}
	if linked {
		return nil, ErrInstitutionLinked
	}

	exchange, err := s.Client.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return nil, err
	}

	item := models.PlaidItem{
		UserID:          userID,
		AccessToken:     exchange.AccessToken,
		ItemID:          exchange.ItemID,
		InstitutionID:   institutionID,
		InstitutionName: institutionName,
	}
	if err := s.Store.CreateItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("save linked institution: %w", err)
	}

	accounts, err := s.Client.GetAccounts(ctx, exchange.AccessToken)
	if err != nil {
		return &Result{Item: item, AccountsErr: err}, nil
	}

	created := 0
	for _, acc := range accounts {
		account := models.Account{
			ItemID:           item.ID,
			PlaidAccountID:   acc.AccountID,
			Name:             acc.Name,
			Mask:             acc.Mask,
			Type:             acc.Type,
			Subtype:          acc.Subtype,
			CurrentBalance:   acc.CurrentBalance,
			AvailableBalance: acc.AvailableBalance,
			CurrencyCode:     acc.CurrencyCode,
		}
		if err := s.Store.CreateAccount(ctx, &account); err != nil {
			return &Result{Item: item, NumAccounts: created, AccountsErr: err}, nil
		}
		created++
	}
	return &Result{Item: item, NumAccounts: created}, nil
}
