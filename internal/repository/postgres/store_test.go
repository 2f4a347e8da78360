package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/z-reply/backend/internal/model/reply"
)

var replyColumns = []string{"id", "original_message", "generated_reply", "platform", "created_at"}

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return newStoreWithQuerier(mock), mock
}

func TestStoreInsertReturnsStoredRow(t *testing.T) {
	store, mock := newMockStore(t)
	createdAt := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO saved_replies").
		WithArgs("How much is the premium plan?", "Hi! Could you tell me about your team size? 😊", "whatsapp").
		WillReturnRows(pgxmock.NewRows(replyColumns).
			AddRow(int64(1), "How much is the premium plan?", "Hi! Could you tell me about your team size? 😊", "whatsapp", createdAt))

	saved, err := store.Insert(context.Background(), reply.Record{
		OriginalMessage: "How much is the premium plan?",
		GeneratedReply:  "Hi! Could you tell me about your team size? 😊",
		Platform:        reply.WhatsApp,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, saved.ID)
	require.Equal(t, reply.WhatsApp, saved.Platform)
	require.True(t, saved.CreatedAt.Equal(createdAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreInsertPropagatesError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO saved_replies").
		WithArgs("q", "a", "instagram").
		WillReturnError(errors.New("connection reset"))

	_, err := store.Insert(context.Background(), reply.Record{OriginalMessage: "q", GeneratedReply: "a", Platform: reply.Instagram})
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListOrdersByCreatedAtDesc(t *testing.T) {
	store, mock := newMockStore(t)
	newer := time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(`SELECT id, original_message, generated_reply, platform, created_at\s+FROM saved_replies\s+ORDER BY created_at DESC, id DESC`).
		WillReturnRows(pgxmock.NewRows(replyColumns).
			AddRow(int64(2), "I love your product!", "Thanks so much! 💜", "instagram", newer).
			AddRow(int64(1), "How much?", "What do you need?", "whatsapp", older))

	items, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.EqualValues(t, 2, items[0].ID)
	require.Equal(t, reply.Instagram, items[0].Platform)
	require.EqualValues(t, 1, items[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListEmpty(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, original_message").WillReturnRows(pgxmock.NewRows(replyColumns))

	items, err := store.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListQueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, original_message").WillReturnError(errors.New("db down"))

	_, err := store.List(context.Background())
	require.ErrorContains(t, err, "db down")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorePing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	store := newStoreWithQuerier(mock)

	mock.ExpectPing()
	require.NoError(t, store.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("unreachable"))
	require.Error(t, store.Ping(context.Background()))

	require.NoError(t, mock.ExpectationsWereMet())
}
