package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configPathEnv = "LATERSTACK_CONFIG"

type Config struct {
	Port        string `yaml:"port"`
	DatabaseDSN string `yaml:"databaseDsn"`
	JWTSecret   string `yaml:"jwtSecret"`

	// Identity provider (session tokens, profile API, sync webhooks)
	IdentityAPIURL    string `yaml:"identityApiUrl"`
	IdentityAPISecret string `yaml:"identityApiSecret"`
	WebhookSecret     string `yaml:"webhookSecret"`

	// Content extraction
	ScraperProvider string        `yaml:"scraperProvider"` // "jina" or "direct"
	JinaReaderURL   string        `yaml:"jinaReaderUrl"`
	JinaAPIKey      string        `yaml:"jinaApiKey"`
	ScrapeTimeout   time.Duration `yaml:"scrapeTimeout"`

	// Relevance analysis
	AIProvider   string `yaml:"aiProvider"` // "gemini" or "heuristic"
	GeminiAPIKey string `yaml:"geminiApiKey"`
	GeminiModel  string `yaml:"geminiModel"`
}

// Load reads an optional YAML config file and applies environment overrides.
// Environment variables always win so deployments can keep secrets out of files.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[Config] cannot read %s: %v (using defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, cfg); err != nil {
			log.Printf("[Config] cannot parse %s: %v (using defaults)", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if cfg.ScrapeTimeout <= 0 {
		cfg.ScrapeTimeout = 10 * time.Second
	}

	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Port:            "8080",
		DatabaseDSN:     "host=localhost user=postgres password=postgres dbname=laterstack port=5432 sslmode=disable",
		JWTSecret:       "your-secret-key-change-in-production",
		IdentityAPIURL:  "https://api.identity.example.com/v1",
		ScraperProvider: "jina",
		JinaReaderURL:   "https://r.jina.ai",
		ScrapeTimeout:   10 * time.Second,
		AIProvider:      "gemini",
		GeminiModel:     "gemini-2.5-flash",
	}
}

func (c *Config) applyEnvOverrides() {
	c.Port = getEnv("PORT", c.Port)
	c.DatabaseDSN = getEnv("DATABASE_DSN", c.DatabaseDSN)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.IdentityAPIURL = getEnv("IDENTITY_API_URL", c.IdentityAPIURL)
	c.IdentityAPISecret = getEnv("IDENTITY_API_SECRET", c.IdentityAPISecret)
	c.WebhookSecret = getEnv("IDENTITY_WEBHOOK_SECRET", c.WebhookSecret)
	c.ScraperProvider = getEnv("SCRAPER_PROVIDER", c.ScraperProvider)
	c.JinaReaderURL = getEnv("JINA_READER_URL", c.JinaReaderURL)
	c.JinaAPIKey = getEnv("JINA_API_KEY", c.JinaAPIKey)
	c.AIProvider = getEnv("AI_PROVIDER", c.AIProvider)
	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = getEnv("GEMINI_MODEL", c.GeminiModel)

	if v := os.Getenv("SCRAPE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.ScrapeTimeout = parsed
		} else if secs, err := strconv.Atoi(v); err == nil {
			c.ScrapeTimeout = time.Duration(secs) * time.Second
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
