package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/z-reply/backend/internal/model/reply"
)

type stubCompleter struct {
	answer  string
	err     error
	block   bool
	calls   int
	system  string
	message string
}

func (s *stubCompleter) Complete(ctx context.Context, system, message string) (string, error) {
	s.calls++
	s.system = system
	s.message = message
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.answer, s.err
}

func newTestService(t *testing.T, c Completer, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService(c, opts...)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresCompleter(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}

func TestGenerateReplyReturnsUpstreamText(t *testing.T) {
	stub := &stubCompleter{answer: "Thanks so much! 💜"}
	svc := newTestService(t, stub)

	out, err := svc.GenerateReply(context.Background(), reply.GenerationRequest{
		Message:  "I love your product!",
		Platform: "instagram",
	})
	require.NoError(t, err)
	require.Equal(t, reply.GenerationResult{Reply: "Thanks so much! 💜"}, out)
	require.Equal(t, 1, stub.calls)
	require.Equal(t, "I love your product!", stub.message)
	require.Contains(t, stub.system, "replying to customers on instagram")
}

func TestGenerateReplyTrimsWhitespace(t *testing.T) {
	svc := newTestService(t, &stubCompleter{answer: "\n  Hey! What size are you after? \n"})

	out, err := svc.GenerateReply(context.Background(), reply.GenerationRequest{Message: "Do you have this in blue?", Platform: "whatsapp"})
	require.NoError(t, err)
	require.Equal(t, "Hey! What size are you after?", out.Reply)
}

func TestGenerateReplyEmptyContentUsesFallback(t *testing.T) {
	for _, answer := range []string{"", "   \n\t"} {
		svc := newTestService(t, &stubCompleter{answer: answer})
		out, err := svc.GenerateReply(context.Background(), reply.GenerationRequest{Message: "hello", Platform: "whatsapp"})
		require.NoError(t, err)
		require.Equal(t, FallbackReply, out.Reply)
	}
}

func TestGenerateReplyValidationSkipsUpstream(t *testing.T) {
	cases := []struct {
		req   reply.GenerationRequest
		field string
	}{
		{reply.GenerationRequest{Message: "", Platform: "whatsapp"}, "message"},
		{reply.GenerationRequest{Message: "hi", Platform: "telegram"}, "platform"},
		{reply.GenerationRequest{Message: "hi", Platform: ""}, "platform"},
	}
	for _, tc := range cases {
		stub := &stubCompleter{answer: "should not be used"}
		svc := newTestService(t, stub)

		_, err := svc.GenerateReply(context.Background(), tc.req)
		var verr *reply.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, tc.field, verr.Field)
		require.Zero(t, stub.calls)
	}
}

func TestGenerateReplyUpstreamFailure(t *testing.T) {
	cause := errors.New("provider returned 503")
	stub := &stubCompleter{err: cause}
	svc := newTestService(t, stub)

	out, err := svc.GenerateReply(context.Background(), reply.GenerationRequest{Message: "hi", Platform: "whatsapp"})
	var gerr *reply.GenerationError
	require.ErrorAs(t, err, &gerr)
	require.ErrorIs(t, err, cause)
	require.Empty(t, out.Reply)
	require.Equal(t, 1, stub.calls)
}

func TestGenerateReplyTimeout(t *testing.T) {
	stub := &stubCompleter{block: true}
	svc := newTestService(t, stub, WithTimeout(20*time.Millisecond))

	_, err := svc.GenerateReply(context.Background(), reply.GenerationRequest{Message: "hi", Platform: "instagram"})
	var gerr *reply.GenerationError
	require.ErrorAs(t, err, &gerr)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, 1, stub.calls)
}
