package config

import (
	"os"
	"strconv"
	"strings"

	"storescrapers/catalogworker/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Scraper configuration
	ScraperName      string
	AligroStartURL   string
	AligroCategories []string
	FolderPrefix     string

	// Storage configuration
	AWSBucketName string
	DebugMode     bool
	OutputDir     string

	// Cache configuration
	MemcacheAddr string

	// Optional downstream stream publishing
	RedisAddr         string
	RedisDB           int
	RedisStream       string
	RedisStreamMaxLen int

	// Engine configuration
	Concurrency int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAXLEN", "1000"))
	concurrency, _ := strconv.Atoi(getEnv("CRAWL_CONCURRENCY", "8"))

	return &Config{
		ScraperName:    getEnv("SCRAPER_NAME", ""),
		AligroStartURL: getEnv("ALIGRO_START_URL", "https://www.aligro.ch/de/"),
		AligroCategories: splitList(getEnv("ALIGRO_CATEGORIES",
			"Frischprodukte,Wein und Getränke,Allgemeine Lebensmittel,Non-Food")),
		FolderPrefix:      getEnv("FOLDER_PREFIX", ""),
		AWSBucketName:     getEnv("AWS_BUCKET_NAME", ""),
		DebugMode:         getEnv("DEBUG_MODE", "") != "",
		OutputDir:         getEnv("OUTPUT_DIR", "product_data"),
		MemcacheAddr:      getEnv("MEMCACHE_ADDR", "localhost:11211"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisDB:           redisDB,
		RedisStream:       getEnv("REDIS_STREAM", "products"),
		RedisStreamMaxLen: streamMaxLen,
		Concurrency:       concurrency,
		Environment:       getEnv("ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable for a run
func (c *Config) Validate() error {
	if !c.DebugMode && c.AWSBucketName == "" {
		return errors.NewConfiguration("AWS_BUCKET_NAME is required unless DEBUG_MODE is set", nil)
	}
	if c.Concurrency < 1 {
		return errors.NewConfiguration("CRAWL_CONCURRENCY must be at least 1", nil)
	}
	if len(c.AligroCategories) == 0 {
		return errors.NewConfiguration("ALIGRO_CATEGORIES must not be empty", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma-separated list, trimming whitespace and
// dropping empty entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
