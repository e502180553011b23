package model

import "time"

// Config holds all runtime configuration for the screening service.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Search   SearchConfig   `yaml:"search"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Chunk    ChunkConfig    `yaml:"chunk"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
}

// LLMConfig configures the text-completion collaborator.
type LLMConfig struct {
	// APIKey comes from OPENAI_API_KEY. Empty selects the fixed-response
	// test client.
	APIKey      string        `yaml:"-"`
	BaseURL     string        `yaml:"base_url,omitempty"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// SearchConfig configures the web-search provider.
type SearchConfig struct {
	// APIKey comes from BING_SEARCH_API_KEY. Empty selects the fixed
	// mock provider.
	APIKey   string        `yaml:"-"`
	Engine   string        `yaml:"engine"`
	Endpoint string        `yaml:"endpoint"`
	TopK     int           `yaml:"top_k"`
	DaysBack int           `yaml:"days_back"`
	Market   string        `yaml:"market"`
	Timeout  time.Duration `yaml:"timeout"`
}

// FetchConfig configures page retrieval.
type FetchConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	UserAgent         string        `yaml:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	Delay             time.Duration `yaml:"delay"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	RespectRobots     bool          `yaml:"respect_robots"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty"`
}

// ChunkConfig bounds content windows for analysis.
type ChunkConfig struct {
	MaxChars   int `yaml:"max_chars"`
	MinOverlap int `yaml:"min_overlap"`
}

// AnalysisConfig tunes the negative-news analyzer.
type AnalysisConfig struct {
	RiskThreshold string  `yaml:"risk_threshold"`
	Temperature   float32 `yaml:"temperature"`
}

// CacheConfig controls the in-memory page cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.3,
			MaxTokens:   1000,
			Timeout:     30 * time.Second,
		},
		Search: SearchConfig{
			Engine:   "bing",
			Endpoint: "https://api.bing.microsoft.com/v7.0/search",
			TopK:     15,
			DaysBack: 30,
			Market:   "en-US",
			Timeout:  15 * time.Second,
		},
		Fetch: FetchConfig{
			Timeout:           10 * time.Second,
			UserAgent:         "negscreen/0.1 (+https://github.com/negscreen/negscreen)",
			MaxBodyBytes:      2_000_000,
			Delay:             500 * time.Millisecond,
			RequestsPerSecond: 2,
			RespectRobots:     true,
		},
		Chunk: ChunkConfig{
			MaxChars:   2000,
			MinOverlap: 200,
		},
		Analysis: AnalysisConfig{
			RiskThreshold: "Low",
			Temperature:   0.2,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Server: ServerConfig{
			Addr: ":8002",
		},
	}
}
