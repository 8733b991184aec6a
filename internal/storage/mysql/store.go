package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"luxe_haven/internal/adapters/observability"
)

// Store is the durable client store on MySQL, one row per (origin, key).
type Store struct {
	db     *sql.DB
	origin string
	now    func() time.Time
}

func New(db *sql.DB, origin string) *Store {
	return &Store{db: db, origin: origin, now: time.Now}
}

// Migrate creates the client_storage table if needed.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createClientStorageSQL)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, getValueSQL, s.origin, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		observability.ObserveStore("mysql", "miss")
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	observability.ObserveStore("mysql", "hit")
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	var exp any // NULL = durable
	if ttl > 0 {
		exp = s.now().UTC().Add(ttl)
	}
	observability.ObserveStore("mysql", "set")
	_, err := s.db.ExecContext(ctx, upsertValueSQL, s.origin, key, value, exp)
	return err
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, 0, len(keys)+1)
	args = append(args, s.origin)
	marks := make([]string, len(keys))
	for i, k := range keys {
		marks[i] = "?"
		args = append(args, k)
	}
	observability.ObserveStore("mysql", "del")
	_, err := s.db.ExecContext(ctx, deleteValuePrefix+"("+strings.Join(marks, ",")+")", args...)
	return err
}

// Purge removes expired rows for every origin.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, purgeExpiredSQL)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
