package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/z-reply/backend/internal/config"
)

// Completer runs one single-turn completion: a system instruction plus one user message.
type Completer interface {
	Complete(ctx context.Context, system, message string) (string, error)
}

// NewCompleter builds the Completer for the configured provider.
func NewCompleter(ctx context.Context, cfg config.AIConfig) (Completer, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("ai: provider %q is missing credentials or model", cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderArk:
		chatModel, err := cfg.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		completer, err := NewChainCompleter(ctx, chatModel, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		return completer, nil
	default:
		return NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.MaxTokens), nil
	}
}

// ChainCompleter drives an eino chat model through a compiled prompt chain.
type ChainCompleter struct {
	chain     compose.Runnable[map[string]any, *schema.Message]
	maxTokens int
}

// NewChainCompleter compiles the system+user template in front of chatModel.
func NewChainCompleter(ctx context.Context, chatModel model.ChatModel, maxTokens int) (*ChainCompleter, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("ai: chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &ChainCompleter{chain: runnable, maxTokens: maxTokens}, nil
}

// Complete invokes the chain once.
func (c *ChainCompleter) Complete(ctx context.Context, system, message string) (string, error) {
	input := map[string]any{
		"system": system,
		"query":  message,
	}

	var opts []compose.Option
	if c.maxTokens > 0 {
		opts = append(opts, compose.WithChatModelOption(model.WithMaxTokens(c.maxTokens)))
	}

	response, err := c.chain.Invoke(ctx, input, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil {
		return "", nil
	}
	return response.Content, nil
}
