package cli

import (
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"negscreen/internal/llm"
	"negscreen/internal/model"
	"negscreen/internal/pipeline"
	"negscreen/internal/search"
)

// newLogger builds the process logger. Verbose runs get the
// development encoder with debug output.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}

// loadConfig layers the config file and environment on top of the
// built-in defaults. API keys come from the environment only.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if viper.IsSet("llm.temperature") {
		cfg.LLM.Temperature = float32(viper.GetFloat64("llm.temperature"))
	}
	if viper.IsSet("llm.max_tokens") {
		cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	}
	if viper.IsSet("llm.timeout") {
		cfg.LLM.Timeout = viper.GetDuration("llm.timeout")
	}

	if v := viper.GetString("search.endpoint"); v != "" {
		cfg.Search.Endpoint = v
	}
	if viper.IsSet("search.top_k") {
		cfg.Search.TopK = viper.GetInt("search.top_k")
	}
	if viper.IsSet("search.days_back") {
		cfg.Search.DaysBack = viper.GetInt("search.days_back")
	}
	if v := viper.GetString("search.market"); v != "" {
		cfg.Search.Market = v
	}

	if viper.IsSet("fetch.timeout") {
		cfg.Fetch.Timeout = viper.GetDuration("fetch.timeout")
	}
	if v := viper.GetString("fetch.user_agent"); v != "" {
		cfg.Fetch.UserAgent = v
	}
	if viper.IsSet("fetch.respect_robots") {
		cfg.Fetch.RespectRobots = viper.GetBool("fetch.respect_robots")
	}
	if viper.IsSet("fetch.requests_per_second") {
		cfg.Fetch.RequestsPerSecond = viper.GetFloat64("fetch.requests_per_second")
	}

	if viper.IsSet("chunk.max_chars") {
		cfg.Chunk.MaxChars = viper.GetInt("chunk.max_chars")
	}
	if viper.IsSet("chunk.min_overlap") {
		cfg.Chunk.MinOverlap = viper.GetInt("chunk.min_overlap")
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if viper.IsSet("cache.ttl") {
		cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	}

	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}

	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Search.APIKey = os.Getenv("BING_SEARCH_API_KEY")
	return cfg
}

// newPipeline assembles the pipeline with its collaborators chosen
// from the loaded configuration.
func newPipeline(cfg *model.Config, log *zap.Logger) *pipeline.Pipeline {
	client := llm.NewClient(cfg.LLM, log)
	provider := search.NewProvider(cfg.Search, log)
	return pipeline.New(cfg, client, provider, log)
}

// screenTimeout bounds one-shot CLI screenings.
const screenTimeout = 5 * time.Minute
