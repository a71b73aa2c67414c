package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisURL           string
	RecommendCacheTTL  int // seconds; 0 disables the cache
	EmbeddingCacheSize int

	AuthHubURL     string
	AuthHubTimeout int // seconds

	EmbeddingURL        string
	EmbeddingModel      string
	EmbeddingAPIKey     string
	EmbeddingDimensions int
	EmbeddingTimeout    int // seconds

	NewsAPIURL     string
	NewsAPIKey     string
	NewsAPITimeout int // seconds
	NewsQuery      string
	RSSFeedURLs    []string
	IngestInterval int // seconds; 0 disables the worker

	TopLabels int
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),

		DBHost:     getEnv("DB_HOST", "curator-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "curator_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "curator_password"),
		DBName:     getEnv("DB_NAME", "curator_db"),

		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		RecommendCacheTTL:  getEnvInt("RECOMMEND_CACHE_TTL", 60),
		EmbeddingCacheSize: getEnvInt("EMBEDDING_CACHE_SIZE", 512),

		AuthHubURL:     getEnv("AUTH_HUB_URL", "http://auth-hub:8888"),
		AuthHubTimeout: getEnvInt("AUTH_HUB_TIMEOUT", 2),

		EmbeddingURL:        getEnv("EMBEDDING_API_URL", "http://embedder:11434"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "embeddinggemma"),
		EmbeddingAPIKey:     getSecret("EMBEDDING_API_KEY", "EMBEDDING_API_KEY_FILE", ""),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", 768),
		EmbeddingTimeout:    getEnvInt("EMBEDDING_TIMEOUT", 30),

		NewsAPIURL:     getEnv("NEWS_API_URL", "https://newsapi.org/v2"),
		NewsAPIKey:     getSecret("NEWS_API_KEY", "NEWS_API_KEY_FILE", ""),
		NewsAPITimeout: getEnvInt("NEWS_API_TIMEOUT", 10),
		NewsQuery:      getEnv("NEWS_QUERY", "technology OR sports"),
		RSSFeedURLs:    getEnvList("RSS_FEED_URLS"),
		IngestInterval: getEnvInt("INGEST_INTERVAL", 900),

		TopLabels: getEnvInt("PREFERENCE_TOP_LABELS", 3),
	}
}

// DatabaseURL assembles the pgx connection string.
func (c *Config) DatabaseURL() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=disable"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}
