package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/truthlenz/truthlenz/src/ai/core"
)

// Config carries everything the verifier service needs from the environment.
// Model chains are explicit ordered candidate lists, not package globals.
type Config struct {
	Port     string
	MySQLDSN string
	RedisURL string

	GeminiKey string
	OpenAIKey string

	TextChain      []core.Candidate
	MediaChain     []core.Candidate
	SecondaryChain []core.Candidate
	FeedbackChain  []core.Candidate

	ModelTimeout    time.Duration
	MaxPayloadBytes int64

	RateLimit  int
	RateWindow time.Duration
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func getint(key string, def int) int {
	v, err := strconv.Atoi(getenv(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

func Load() Config {
	geminiKey := os.Getenv("GEMINI_API_KEY")
	openAIKey := os.Getenv("OPENAI_API_KEY")
	if geminiKey == "" && openAIKey == "" {
		log.Fatalf("no model provider key configured (GEMINI_API_KEY or OPENAI_API_KEY)")
	}

	return Config{
		Port:      getenv("PORT", "8080"),
		MySQLDSN:  getenv("MYSQL_DSN", "truthlenz:truthlenz@tcp(localhost:3306)/truthlenz?parseTime=true"),
		RedisURL:  getenv("REDIS_URL", "redis://localhost:6379/0"),
		GeminiKey: geminiKey,
		OpenAIKey: openAIKey,

		TextChain: core.ParseChain(
			getenv("TEXT_MODEL_CHAIN", "gemini-1.5-flash,gemini-1.5-pro,gemini-2.0-flash"), "gemini"),
		MediaChain: core.ParseChain(
			getenv("MEDIA_MODEL_CHAIN", "gemini-1.5-pro,gemini-1.5-flash,gemini-2.0-flash"), "gemini"),
		SecondaryChain: core.ParseChain(
			getenv("SECONDARY_MODEL_CHAIN", "gemini-1.5-flash,gemini-2.0-flash"), "gemini"),
		FeedbackChain: core.ParseChain(
			getenv("FEEDBACK_MODEL_CHAIN", "gemini-2.0-flash"), "gemini"),

		ModelTimeout:    time.Duration(getint("MODEL_TIMEOUT_SECONDS", 90)) * time.Second,
		MaxPayloadBytes: int64(getint("MAX_PAYLOAD_MB", 7)) * 1024 * 1024,

		RateLimit:  getint("RATE_LIMIT", 30),
		RateWindow: time.Duration(getint("RATE_WINDOW_SECONDS", 60)) * time.Second,
	}
}
