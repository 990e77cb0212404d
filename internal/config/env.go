package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
)

// Default process settings.
const (
	DefaultPreviewAddr = "127.0.0.1:8089"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultLogLevel    = "info"
)

// DefaultSDKURLs are tried in order when loading the renderer SDK into the
// preview page.
var DefaultSDKURLs = []string{
	"https://cdn.qdx.example.com/qdx-renderer/latest/qdx-renderer.min.js",
	"https://static.qdx.example.com/qdx-renderer/qdx-renderer.min.js",
}

// Env is the process configuration read from the environment.
type Env struct {
	Endpoints   catalog.Endpoints
	SDKURLs     []string
	PreviewAddr string
	LogLevel    string
	HTTPTimeout time.Duration
}

// LoadEnv reads the environment, loading the given .env files first when
// they exist. Variables already set win over file values.
func LoadEnv(files ...string) Env {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	return Env{
		Endpoints: catalog.Endpoints{
			DisplayTypes: getEnv("QDX_DISPLAY_URL", ""),
			Themes:       getEnv("QDX_THEME_URL", ""),
			Locations:    getEnv("QDX_LOCATION_URL", ""),
			Templates:    getEnv("QDX_TEMPLATE_URL", ""),
		},
		SDKURLs:     getEnvList("QDX_SDK_URLS", DefaultSDKURLs),
		PreviewAddr: getEnv("QDX_PREVIEW_ADDR", DefaultPreviewAddr),
		LogLevel:    getEnv("QDX_LOG_LEVEL", DefaultLogLevel),
		HTTPTimeout: getEnvDuration("QDX_HTTP_TIMEOUT", DefaultHTTPTimeout),
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping blank items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return out
}

// getEnvDuration accepts a Go duration or a whole number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil && parsed > 0 {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
