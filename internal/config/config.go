package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Log        LogConfig
	LLM        LLMConfig
	Ollama     OllamaConfig
	Gemini     GeminiConfig
	Extraction ExtractionConfig
	Storage    StorageConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level string
}

type LLMConfig struct {
	Provider string
	Timeout  time.Duration
}

type OllamaConfig struct {
	URL   string
	Model string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// ExtractionConfig bounds the prompt and the diagnostic excerpts, in characters.
type ExtractionConfig struct {
	MaxChars     int
	ExcerptChars int
}

type StorageConfig struct {
	TempPath    string
	MaxFileSize int64
}

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment only.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderOllama)),
			Timeout:  getEnvAsDuration("LLM_TIMEOUT", "30s"),
		},
		Ollama: OllamaConfig{
			URL:   getEnv("OLLAMA_URL", "http://localhost:11434/api/generate"),
			Model: getEnv("OLLAMA_MODEL", "llama3.2"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Extraction: ExtractionConfig{
			MaxChars:     getEnvAsInt("MAX_TEXT_CHARS", 3000),
			ExcerptChars: getEnvAsInt("EXCERPT_CHARS", 500),
		},
		Storage: StorageConfig{
			TempPath:    getEnv("TEMP_PATH", os.TempDir()),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil && duration > 0 {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
