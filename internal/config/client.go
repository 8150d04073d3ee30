package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/store"
)

// Client holds the TUI-side settings. The three feed cadences default to the
// values the app has always polled at, but stay configurable so a slow server
// or a test can change them without touching the loops.
type Client struct {
	ServerURL            string
	StateDir             string
	ThreadPollInterval   time.Duration
	BadgePollInterval    time.Duration
	QuestionPollInterval time.Duration
	RelayPollInterval    time.Duration
}

func LoadClient() Client {
	godotenv.Load()

	return Client{
		ServerURL:            getEnv("SERVER_URL", "http://localhost:8080"),
		StateDir:             getEnv("STATE_DIR", store.DefaultDir()),
		ThreadPollInterval:   getEnvAsSeconds("THREAD_POLL_SECONDS", 5),
		BadgePollInterval:    getEnvAsSeconds("BADGE_POLL_SECONDS", 8),
		QuestionPollInterval: getEnvAsSeconds("QUESTION_POLL_SECONDS", 12),
		RelayPollInterval:    500 * time.Millisecond,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsSeconds(key string, defaultValue int64) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil && intValue > 0 {
			return time.Duration(intValue) * time.Second
		}
	}
	return time.Duration(defaultValue) * time.Second
}
