package llm

import (
	"go.uber.org/zap"

	"negscreen/internal/model"
)

// NewClient selects the completion client once at configuration time:
// a live OpenAI-backed client when a credential is present, the
// fixed-response test client otherwise. Business logic never branches
// on the credential again.
func NewClient(cfg model.LLMConfig, log *zap.Logger) Client {
	if cfg.APIKey == "" {
		log.Warn("no completion API key configured, using fixed-response test client")
		return NewMockClient()
	}

	client, err := NewOpenAIClient(cfg)
	if err != nil {
		log.Warn("completion client initialization failed, using fixed-response test client", zap.Error(err))
		return NewMockClient()
	}
	return client
}
