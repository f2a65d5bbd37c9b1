package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultCodeforcesURL = "https://codeforces.com/api/"

type Config struct {
	Port             string
	TelegramBotToken string
	WebhookSecret    string
	BotBaseURL       string
	BotWorkers       int
	FirestoreProject string

	Admins         []int64
	BlockedHandles []string

	CodeforcesAPIURL     string
	CodeforcesTimeoutSec int

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SolvedCacheSec  int
	CatalogCacheSec int

	LogMode string
}

// WebhookMode reports whether updates arrive through the webhook instead of
// long polling.
func (c Config) WebhookMode() bool {
	return c.BotBaseURL != ""
}

// Load reads the environment, after applying an optional .env file from the
// working directory. Variables already set take precedence over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	workers, err := parseIntEnv("BOT_WORKERS", 8)
	if err != nil {
		return Config{}, err
	}
	cfTimeout, err := parseIntEnv("CODEFORCES_TIMEOUT_SEC", 30)
	if err != nil {
		return Config{}, err
	}
	solvedSec, err := parseIntEnv("SOLVED_CACHE_SEC", 600)
	if err != nil {
		return Config{}, err
	}
	catalogSec, err := parseIntEnv("CATALOG_CACHE_SEC", 3600)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := parseNonNegativeIntEnv("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	admins, err := parseIDListEnv("ADMINS")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		TelegramBotToken:     strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		WebhookSecret:        strings.TrimSpace(os.Getenv("WEBHOOK_SECRET")),
		BotBaseURL:           getEnv("BOT_BASE_URL", ""),
		BotWorkers:           workers,
		FirestoreProject:     strings.TrimSpace(os.Getenv("FIRESTORE_PROJECT_ID")),
		Admins:               admins,
		BlockedHandles:       parseListEnv("BLOCKED_HANDLES"),
		CodeforcesAPIURL:     getEnv("CODEFORCES_API_URL", defaultCodeforcesURL),
		CodeforcesTimeoutSec: cfTimeout,
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              redisDB,
		SolvedCacheSec:       solvedSec,
		CatalogCacheSec:      catalogSec,
		LogMode:              getEnv("LOG_MODE", "production"),
	}

	if cfg.TelegramBotToken == "" {
		return Config{}, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.FirestoreProject == "" {
		return Config{}, fmt.Errorf("FIRESTORE_PROJECT_ID is required")
	}
	if cfg.WebhookMode() && cfg.WebhookSecret == "" {
		return Config{}, fmt.Errorf("WEBHOOK_SECRET is required when BOT_BASE_URL is set")
	}
	switch cfg.LogMode {
	case "production", "development":
	default:
		return Config{}, fmt.Errorf("invalid LOG_MODE %q: expected production or development", cfg.LogMode)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func parseNonNegativeIntEnv(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

// splitList accepts both ":" and "," as separators.
func splitList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ':' || r == ',' })
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func parseListEnv(key string) []string {
	items := splitList(os.Getenv(key))
	if len(items) == 0 {
		return nil
	}
	return items
}

func parseIDListEnv(key string) ([]int64, error) {
	items := splitList(os.Getenv(key))
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry %q", key, item)
		}
		out = append(out, id)
	}
	return out, nil
}
