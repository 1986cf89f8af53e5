package db

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store runs the raw SQL for every entity against a pgx pool. The service
// packages consume it through their own narrow interfaces.
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}
