package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhouzirui/z-reply/backend/internal/model/reply"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store implements reply.Store on top of PostgreSQL.
type Store struct {
	db querier
}

var _ reply.Store = (*Store)(nil)

// NewStore returns a Store that borrows connections from pool per call.
func NewStore(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("postgres: pgx pool required")
	}
	return &Store{db: pool}
}

func newStoreWithQuerier(db querier) *Store {
	if db == nil {
		panic("postgres: querier required")
	}
	return &Store{db: db}
}

const listRepliesSQL = `
	SELECT id, original_message, generated_reply, platform, created_at
	FROM saved_replies
	ORDER BY created_at DESC, id DESC
`

// List returns every saved reply, newest first.
func (s *Store) List(ctx context.Context) ([]reply.SavedReply, error) {
	rows, err := s.db.Query(ctx, listRepliesSQL)
	if err != nil {
		return nil, fmt.Errorf("postgres: list replies: %w", err)
	}
	defer rows.Close()

	items := make([]reply.SavedReply, 0)
	for rows.Next() {
		item, err := scanReply(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan reply: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate replies: %w", err)
	}
	return items, nil
}

const insertReplySQL = `
	INSERT INTO saved_replies (original_message, generated_reply, platform)
	VALUES ($1, $2, $3)
	RETURNING id, original_message, generated_reply, platform, created_at
`

// Insert writes one row; id and created_at come from the database.
func (s *Store) Insert(ctx context.Context, rec reply.Record) (reply.SavedReply, error) {
	row := s.db.QueryRow(ctx, insertReplySQL, rec.OriginalMessage, rec.GeneratedReply, string(rec.Platform))
	saved, err := scanReply(row)
	if err != nil {
		return reply.SavedReply{}, fmt.Errorf("postgres: insert reply: %w", err)
	}
	return saved, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func scanReply(row pgx.Row) (reply.SavedReply, error) {
	var (
		item     reply.SavedReply
		platform string
	)
	if err := row.Scan(&item.ID, &item.OriginalMessage, &item.GeneratedReply, &platform, &item.CreatedAt); err != nil {
		return reply.SavedReply{}, err
	}
	item.Platform = reply.Platform(platform)
	item.CreatedAt = item.CreatedAt.UTC()
	return item, nil
}
