package reply

import (
	"context"

	"github.com/zhouzirui/z-reply/backend/internal/model/reply"
)

// Samples 空存档启动时写入的示例记录。
func Samples() []reply.NewReply {
	return []reply.NewReply{
		{
			OriginalMessage: "How much is the premium plan?",
			GeneratedReply:  "Hi! Thanks for asking. Could you tell me more about your team size so I can suggest the best plan for you? 😊",
			Platform:        string(reply.WhatsApp),
		},
		{
			OriginalMessage: "I love your product!",
			GeneratedReply:  "Thanks so much! We're thrilled to hear that. Let us know if there's anything else we can do for you! 💜",
			Platform:        string(reply.Instagram),
		},
	}
}

// SeedIfEmpty inserts samples only when the archive has no records yet.
// It returns the number of records written.
func (s *Service) SeedIfEmpty(ctx context.Context, samples []reply.NewReply) (int, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, sample := range samples {
		if _, err := s.Create(ctx, sample); err != nil {
			return i, err
		}
	}
	return len(samples), nil
}
