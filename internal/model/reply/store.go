package reply

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Record 待写入的字段，id 与 createdAt 由存储层分配。
type Record struct {
	OriginalMessage string
	GeneratedReply  string
	Platform        Platform
}

// Store persists saved replies. Implementations assign ID and CreatedAt.
type Store interface {
	List(ctx context.Context) ([]SavedReply, error)
	Insert(ctx context.Context, rec Record) (SavedReply, error)
	Ping(ctx context.Context) error
}

// MemoryStore implements Store in process memory, suitable for local runs and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  []SavedReply
	now    func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: func() time.Time { return time.Now().UTC() }}
}

// List returns every stored reply, newest first.
func (s *MemoryStore) List(_ context.Context) ([]SavedReply, error) {
	s.mu.RLock()
	items := append([]SavedReply(nil), s.items...)
	s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if items == nil {
		items = []SavedReply{}
	}
	return items, nil
}

// Insert appends a record with the next identifier.
func (s *MemoryStore) Insert(_ context.Context, rec Record) (SavedReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	saved := SavedReply{
		ID:              s.nextID,
		OriginalMessage: rec.OriginalMessage,
		GeneratedReply:  rec.GeneratedReply,
		Platform:        rec.Platform,
		CreatedAt:       s.now(),
	}
	s.items = append(s.items, saved)
	return saved, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
