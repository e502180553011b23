package search

import (
	"go.uber.org/zap"

	"negscreen/internal/model"
)

// NewProvider selects the search backend: Bing when an API key is
// configured, the offline mock otherwise.
func NewProvider(cfg model.SearchConfig, log *zap.Logger) Provider {
	if cfg.APIKey == "" {
		log.Warn("no search API key configured, using mock search provider")
		return NewMockProvider()
	}
	provider, err := NewBingProvider(cfg, log)
	if err != nil {
		log.Warn("bing provider unavailable, using mock search provider", zap.Error(err))
		return NewMockProvider()
	}
	return provider
}
