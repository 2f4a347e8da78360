package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-reply/backend/internal/model/reply"
	"github.com/zhouzirui/z-reply/backend/internal/observability/metrics"
)

// FallbackReply is returned when the model answers with empty content.
const FallbackReply = "Could not generate reply."

const defaultTimeout = 30 * time.Second

// Service drafts replies to customer messages. It never writes to the archive.
type Service struct {
	completer Completer
	timeout   time.Duration
	logger    zerolog.Logger
	metrics   *metrics.ReplyMetrics
}

// Option customises a Service.
type Option func(*Service)

// WithTimeout bounds each upstream call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.ReplyMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a new AI service instance
func NewService(completer Completer, opts ...Option) (*Service, error) {
	if completer == nil {
		return nil, errors.New("ai: completer must not be nil")
	}
	s := &Service{
		completer: completer,
		timeout:   defaultTimeout,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GenerateReply validates the request, makes exactly one completion call and
// returns the trimmed reply, substituting FallbackReply for empty content.
func (s *Service) GenerateReply(ctx context.Context, req reply.GenerationRequest) (reply.GenerationResult, error) {
	platform, err := req.Validate()
	if err != nil {
		s.metrics.ObserveGeneration(platformLabel(req.Platform), "invalid")
		return reply.GenerationResult{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.completer.Complete(callCtx, BuildSystemPrompt(platform), req.Message)
	elapsed := time.Since(start)
	s.metrics.ObserveGenerationLatency(string(platform), elapsed.Seconds())

	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = errors.Join(err, context.DeadlineExceeded)
		}
		s.metrics.ObserveGeneration(string(platform), "error")
		s.logger.Error().Err(err).
			Str("platform", string(platform)).
			Dur("elapsed", elapsed).
			Msg("reply generation failed")
		return reply.GenerationResult{}, &reply.GenerationError{Err: err}
	}

	text := strings.TrimSpace(raw)
	status := "ok"
	if text == "" {
		text = FallbackReply
		status = "fallback"
	}
	s.metrics.ObserveGeneration(string(platform), status)
	s.logger.Info().
		Str("platform", string(platform)).
		Str("status", status).
		Int("length", len(text)).
		Dur("elapsed", elapsed).
		Msg("generated reply")

	return reply.GenerationResult{Reply: text}, nil
}

func platformLabel(raw string) string {
	if p, ok := reply.ParsePlatform(raw); ok {
		return string(p)
	}
	return "unknown"
}
