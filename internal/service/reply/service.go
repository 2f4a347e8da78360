package reply

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-reply/backend/internal/model/reply"
	"github.com/zhouzirui/z-reply/backend/internal/observability/metrics"
)

// Service is the append-only archive of saved replies.
type Service struct {
	store   reply.Store
	logger  zerolog.Logger
	metrics *metrics.ReplyMetrics
}

// NewService wires the archive to an explicitly constructed store.
func NewService(store reply.Store, logger zerolog.Logger, m *metrics.ReplyMetrics) (*Service, error) {
	if store == nil {
		return nil, errors.New("reply: store must not be nil")
	}
	return &Service{store: store, logger: logger, metrics: m}, nil
}

// List returns every saved reply, newest first.
func (s *Service) List(ctx context.Context) ([]reply.SavedReply, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		s.metrics.ObserveArchive("list", "error")
		s.logger.Error().Err(err).Msg("list saved replies failed")
		return nil, &reply.PersistenceError{Op: "list", Err: err}
	}
	if items == nil {
		items = []reply.SavedReply{}
	}
	s.metrics.ObserveArchive("list", "ok")
	return items, nil
}

// Create validates the input and appends a new record.
func (s *Service) Create(ctx context.Context, in reply.NewReply) (reply.SavedReply, error) {
	platform, err := in.Validate()
	if err != nil {
		s.metrics.ObserveArchive("create", "invalid")
		return reply.SavedReply{}, err
	}

	saved, err := s.store.Insert(ctx, reply.Record{
		OriginalMessage: in.OriginalMessage,
		GeneratedReply:  in.GeneratedReply,
		Platform:        platform,
	})
	if err != nil {
		s.metrics.ObserveArchive("create", "error")
		s.logger.Error().Err(err).Str("platform", string(platform)).Msg("save reply failed")
		return reply.SavedReply{}, &reply.PersistenceError{Op: "insert", Err: err}
	}

	s.metrics.ObserveArchive("create", "ok")
	s.logger.Info().Int64("id", saved.ID).Str("platform", string(platform)).Msg("saved reply")
	return saved, nil
}

// Ping reports whether the underlying store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return &reply.PersistenceError{Op: "ping", Err: err}
	}
	return nil
}
