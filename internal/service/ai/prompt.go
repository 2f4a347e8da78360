package ai

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/z-reply/backend/internal/model/reply"
)

// replyGuidelines 约束回复风格，顺序即提示词中的顺序。
var replyGuidelines = []string{
	"Keep the reply short (1-2 lines)",
	"Use simple English",
	"Use emojis only if natural (max 1)",
	"Ask a question if more details are needed",
	"If customer asks for price, ask about their requirement first",
	"If customer shows interest, guide them to next step",
}

// BuildSystemPrompt renders the fixed instruction for the given platform.
func BuildSystemPrompt(platform reply.Platform) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI CRM assistant replying to customers on %s.\n", platform)
	b.WriteString("Read the customer message carefully and reply in a casual, friendly, human-like tone.\n")
	b.WriteString("Do not sound robotic or too salesy.\n\n")
	b.WriteString("Guidelines:\n")
	for _, g := range replyGuidelines {
		b.WriteString("- ")
		b.WriteString(g)
		b.WriteString("\n")
	}
	b.WriteString("\nGenerate only the reply text. Do not add explanations.")
	return b.String()
}
