package api

import (
	"encoding/json"
	"net/http"

	db "fininsight-server/src/db/sql"
	"fininsight-server/src/handlers"
	"fininsight-server/src/link"
	"fininsight-server/src/middleware"
	"fininsight-server/src/plaid"
	"fininsight-server/src/sync"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, plaidClient plaid.Client, jwtSecret string) *chi.Mux {
	store := db.NewStore(pool)
	linker := &link.Service{Client: plaidClient, Store: store}
	syncer := &sync.Syncer{Client: plaidClient, Store: store}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/token/", handlers.ObtainTokenPair(store, jwtSecret))
		r.Post("/token/refresh/", handlers.RefreshToken(jwtSecret))

		r.Route("/core", func(r chi.Router) {
			r.Post("/register/", handlers.Register(store))

			// Protected routes
			r.With(middleware.JWTAuthMiddleware(jwtSecret)).Group(func(r chi.Router) {
				r.Get("/protected-data/", handlers.ProtectedData())
				r.Post("/create-link-token/", handlers.CreateLinkToken(plaidClient))
				r.Post("/set-access-token/", handlers.SetAccessToken(linker))
				r.Get("/transactions/", handlers.GetTransactions(syncer))
			})
		})
	})

	return r
}
