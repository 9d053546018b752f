package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	AppName    = "Oompa Catalog"
	AppVersion = "1.0.0"
)

// UserAgent identifies the catalog backend to the remote API.
var UserAgent = "Mozilla/5.0 (compatible; OompaCatalog/" + AppVersion + ")"

// Chrome headers for TLS fingerprinting (must match azuretls Chrome profile version)
const (
	ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
	ChromeSecChUa   = `"Google Chrome";v="135", "Chromium";v="135", "Not-A.Brand";v="8"`
)

const DefaultAPIBaseURL = "https://2q2woep105.execute-api.eu-west-1.amazonaws.com/napptilus"

// Snapshot store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Description rendering modes.
const (
	DescriptionSanitize = "sanitize"
	DescriptionPlain    = "plain"
	DescriptionTrusted  = "trusted"
)

type Config struct {
	Addr            string
	DBPath          string
	DataDir         string
	StaticDir       string
	APIBaseURL      string
	ListTTL         time.Duration
	DetailTTL       time.Duration
	FilterDebounce  time.Duration
	RefreshInterval time.Duration
	HTTPTimeout     time.Duration
	RateLimit       int
	ProxyURL        string
	Store           string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	DescriptionMode string
	LogLevel        string
	ConsoleSize     int
	NodeID          int64
}

func Load() Config {
	dataDir := envString("OOMPA_DATA_DIR", "./data")
	path := envString("OOMPA_DB_PATH", filepath.Join(dataDir, "oompa.db"))
	// the frontend is optional; without a directory only the API is served
	staticDir := strings.TrimSpace(os.Getenv("OOMPA_STATIC_DIR"))
	if staticDir != "" {
		staticDir = filepath.Clean(staticDir)
	}

	store := strings.ToLower(envString("OOMPA_STORE", StoreSQLite))
	if store != StoreRedis {
		store = StoreSQLite
	}

	mode := strings.ToLower(envString("OOMPA_DESCRIPTION_MODE", DescriptionSanitize))
	switch mode {
	case DescriptionPlain, DescriptionTrusted:
	default:
		mode = DescriptionSanitize
	}

	return Config{
		Addr:            envString("OOMPA_ADDR", ":8080"),
		DBPath:          filepath.Clean(path),
		DataDir:         filepath.Clean(dataDir),
		StaticDir:       staticDir,
		APIBaseURL:      strings.TrimRight(envString("OOMPA_API_BASE_URL", DefaultAPIBaseURL), "/"),
		ListTTL:         envDuration("OOMPA_LIST_TTL", 24*time.Hour),
		DetailTTL:       envDuration("OOMPA_DETAIL_TTL", 24*time.Hour),
		FilterDebounce:  envDuration("OOMPA_FILTER_DEBOUNCE", 500*time.Millisecond),
		RefreshInterval: envDuration("OOMPA_REFRESH_INTERVAL", time.Hour),
		HTTPTimeout:     envDuration("OOMPA_HTTP_TIMEOUT", 15*time.Second),
		RateLimit:       envInt("OOMPA_RATE_LIMIT", 5),
		ProxyURL:        os.Getenv("OOMPA_PROXY_URL"),
		Store:           store,
		RedisAddr:       envString("OOMPA_REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("OOMPA_REDIS_PASSWORD"),
		RedisDB:         envInt("OOMPA_REDIS_DB", 0),
		DescriptionMode: mode,
		LogLevel:        envString("OOMPA_LOG_LEVEL", "info"),
		ConsoleSize:     envInt("OOMPA_CONSOLE_SIZE", 200),
		NodeID:          int64(envInt("OOMPA_NODE_ID", 1)),
	}
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// envDuration accepts Go duration strings ("24h") or plain seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
