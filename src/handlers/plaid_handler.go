package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"fininsight-server/src/link"
	"fininsight-server/src/models"
	"fininsight-server/src/plaid"
	syncsvc "fininsight-server/src/sync"
)

const defaultWindowDays = 30

type InstitutionLinker interface {
	LinkInstitution(ctx context.Context, userID int64, publicToken, institutionID, institutionName string) (*link.Result, error)
}

type TransactionSyncer interface {
	Sync(ctx context.Context, userID int64, start, end models.Date) ([]models.Transaction, error)
}

func CreateLinkToken(client plaid.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		linkToken, err := client.CreateLinkToken(r.Context(), userID)
		if err != nil {
			log.Printf("ERROR: Plaid link token creation failed for user %d: %v", userID, err)
			writePlaidError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"link_token": linkToken,
		})
	}
}

// SetAccessToken implements the linking flow: exchange the public token,
// persist the item, then mirror its accounts. An account-fetch failure after
// the item is committed reports 207 rather than rolling back; a later sync
// repairs the missing accounts.
func SetAccessToken(linker InstitutionLinker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		var req struct {
			PublicToken string `json:"public_token"`
			Institution struct {
				InstitutionID string `json:"institution_id"`
				Name          string `json:"name"`
			} `json:"institution"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode set access token request body: %v", err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		if req.PublicToken == "" || req.Institution.InstitutionID == "" {
			writeError(w, http.StatusBadRequest, "Public token or institution ID not provided.")
			return
		}

		institutionName := req.Institution.Name
		if institutionName == "" {
			institutionName = "Unknown Institution"
		}

		result, err := linker.LinkInstitution(r.Context(), userID, req.PublicToken, req.Institution.InstitutionID, institutionName)
		if err != nil {
			if errors.Is(err, link.ErrInstitutionLinked) {
				log.Printf("ERROR: Duplicate institution link attempt - user %d, institution %s", userID, req.Institution.InstitutionID)
				writeError(w, http.StatusConflict, fmt.Sprintf("You have already linked an account from %s.", institutionName))
				return
			}
			log.Printf("ERROR: Failed to link institution for user %d: %v", userID, err)
			writePlaidError(w, err)
			return
		}

		if result.AccountsErr != nil {
			log.Printf("ERROR: Item linked but account fetch failed for user %d, item %s: %v", userID, result.Item.ItemID, result.AccountsErr)
			writeError(w, http.StatusMultiStatus, "Could not fetch accounts, but item was linked. Please try fetching data later.")
			return
		}

		log.Printf("INFO: Linked institution %s for user %d with %d accounts", institutionName, userID, result.NumAccounts)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"message": fmt.Sprintf("Access token for %s saved and accounts created successfully.", institutionName),
		})
	}
}

// GetTransactions syncs the requested window from the external API and
// returns the local mirror's view of it, newest first. Default window is the
// trailing 30 days.
func GetTransactions(syncer TransactionSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(int64)

		now := time.Now()
		end := models.NewDate(now)
		start := models.NewDate(now.AddDate(0, 0, -defaultWindowDays))

		var err error
		if s := r.URL.Query().Get("start_date"); s != "" {
			if start, err = models.ParseDate(s); err != nil {
				writeError(w, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
				return
			}
		}
		if s := r.URL.Query().Get("end_date"); s != "" {
			if end, err = models.ParseDate(s); err != nil {
				writeError(w, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
				return
			}
		}

		log.Printf("INFO: Syncing transactions for user %d from %s to %s", userID, start, end)

		transactions, err := syncer.Sync(r.Context(), userID, start, end)
		if err != nil {
			if errors.Is(err, syncsvc.ErrNoLinkedItems) {
				writeError(w, http.StatusNotFound, "No bank accounts linked.")
				return
			}
			log.Printf("ERROR: Transaction sync failed for user %d: %v", userID, err)
			writePlaidError(w, err)
			return
		}

		if transactions == nil {
			transactions = []models.Transaction{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"transactions": transactions,
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writePlaidError surfaces an external API failure with its original status
// and structured body; anything else becomes a best-effort 500.
func writePlaidError(w http.ResponseWriter, err error) {
	var apiErr *plaid.APIError
	if errors.As(err, &apiErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(apiErr.StatusCode)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": apiErr,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
