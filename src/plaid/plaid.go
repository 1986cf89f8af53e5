package plaid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/plaid/plaid-go/v41/plaid"
	"github.com/shopspring/decimal"
)

// API implements Client against the hosted Plaid service.
type API struct {
	client     *plaid.APIClient
	clientName string
}

func NewAPI(clientID, secret, env, clientName string) (*API, error) {
	if clientID == "" || secret == "" {
		return nil, errors.New("plaid client ID and secret are required")
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	configuration.AddDefaultHeader("PLAID-SECRET", secret)

	switch env {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	default:
		return nil, fmt.Errorf("invalid Plaid environment: %s", env)
	}

	return &API{
		client:     plaid.NewAPIClient(configuration),
		clientName: clientName,
	}, nil
}

func (a *API) CreateLinkToken(ctx context.Context, userID int64) (string, error) {
	user := plaid.LinkTokenCreateRequestUser{
		ClientUserId: strconv.FormatInt(userID, 10),
	}
	request := plaid.NewLinkTokenCreateRequest(
		a.clientName,
		"en",
		[]plaid.CountryCode{plaid.COUNTRYCODE_US},
	)
	request.SetUser(user)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	resp, httpResp, err := a.client.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", wrapErr(httpResp, err)
	}
	return resp.GetLinkToken(), nil
}

func (a *API) ExchangePublicToken(ctx context.Context, publicToken string) (ExchangeResult, error) {
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, httpResp, err := a.client.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return ExchangeResult{}, wrapErr(httpResp, err)
	}
	return ExchangeResult{
		AccessToken: resp.GetAccessToken(),
		ItemID:      resp.GetItemId(),
	}, nil
}

func (a *API) GetAccounts(ctx context.Context, accessToken string) ([]AccountData, error) {
	request := plaid.NewAccountsGetRequest(accessToken)
	resp, httpResp, err := a.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
	if err != nil {
		return nil, wrapErr(httpResp, err)
	}

	plaidAccounts := resp.GetAccounts()
	accounts := make([]AccountData, 0, len(plaidAccounts))
	for _, acc := range plaidAccounts {
		balances := acc.GetBalances()
		accounts = append(accounts, AccountData{
			AccountID:        acc.GetAccountId(),
			Name:             acc.GetName(),
			Mask:             acc.GetMask(),
			Type:             string(acc.GetType()),
			Subtype:          string(acc.GetSubtype()),
			CurrentBalance:   nullDecimal(balances.GetCurrentOk()),
			AvailableBalance: nullDecimal(balances.GetAvailableOk()),
			CurrencyCode:     balances.GetIsoCurrencyCode(),
		})
	}
	return accounts, nil
}

func (a *API) GetTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]TransactionData, error) {
	request := plaid.NewTransactionsGetRequest(
		accessToken,
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"),
	)
	resp, httpResp, err := a.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
	if err != nil {
		return nil, wrapErr(httpResp, err)
	}

	plaidTxns := resp.GetTransactions()
	transactions := make([]TransactionData, 0, len(plaidTxns))
	for _, txn := range plaidTxns {
		date, err := time.Parse("2006-01-02", txn.GetDate())
		if err != nil {
			return nil, fmt.Errorf("parse date for transaction %s: %w", txn.GetTransactionId(), err)
		}
		transactions = append(transactions, TransactionData{
			TransactionID: txn.GetTransactionId(),
			AccountID:     txn.GetAccountId(),
			Name:          txn.GetName(),
			Amount:        decimal.NewFromFloat(txn.GetAmount()),
			CurrencyCode:  txn.GetIsoCurrencyCode(),
			Date:          date,
			Category:      txn.GetCategory(),
			Pending:       txn.GetPending(),
		})
	}
	return transactions, nil
}

func nullDecimal(v *float64, ok bool) decimal.NullDecimal {
	if !ok || v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(*v), Valid: true}
}

// wrapErr converts a plaid-go error into an APIError preserving the external
// status and structured body. Errors that are not Plaid API responses pass
// through unchanged.
func wrapErr(httpResp *http.Response, err error) error {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return err
	}
	status := http.StatusInternalServerError
	if httpResp != nil {
		status = httpResp.StatusCode
	}
	return &APIError{
		StatusCode:   status,
		ErrorType:    string(plaidErr.GetErrorType()),
		ErrorCode:    string(plaidErr.GetErrorCode()),
		ErrorMessage: plaidErr.GetErrorMessage(),
		RequestID:    plaidErr.GetRequestId(),
	}
}
