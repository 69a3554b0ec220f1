package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
)

type Support struct {
	Telegram  string
	Email     string
	WhatsApp  string
	Instagram string
}

// LeadPackage is a quote-request option offered by the lead flow.
type LeadPackage struct {
	Key   string
	Label string
}

type Config struct {
	BotToken      string
	BrandName     string
	DefaultLang   domain.Language
	Tier          domain.Tier
	ShowProducts  bool
	SheetURL      string
	Admins        []string
	WebhookSecret string
	DBPath        string
	Support       Support
	LeadPackages  []LeadPackage

	HTTPPort           string
	MaxRequestBodySize int64
	ShutdownTimeout    time.Duration

	SessionStore  string
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration

	CatalogSyncInterval time.Duration
	SendTimeout         time.Duration
	FeedTimeout         time.Duration
	BroadcastRate       float64
	// BroadcastLimit caps /broadcast recipients; 0 reaches every user.
	BroadcastLimit      int

	LocaleFile string
	LogLevel   string
	LogFormat  string
}

// Getenv reads one variable; os.Getenv satisfies it.
type Getenv func(string) string

// Load builds the configuration from the environment.
func Load(getenv Getenv) *Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	lang, ok := domain.ParseLanguage(env("DEFAULT_LANG", "FA"))
	if !ok {
		lang = domain.LanguageFA
	}

	return &Config{
		BotToken:      env("TELEGRAM_BOT_TOKEN", ""),
		BrandName:     env("BRAND_NAME", "Work1 Shop"),
		DefaultLang:   lang,
		Tier:          domain.LookupTier(env("PLAN", "bronze")),
		ShowProducts:  parseBool(env("SHOW_PRODUCTS", "0")),
		SheetURL:      env("SHEET_URL", ""),
		Admins:        splitList(env("ADMINS", "")),
		WebhookSecret: getenv("WEBHOOK_SECRET"),
		DBPath:        env("DATA_DB_FILE", env("DB_PATH", "data.sqlite")),
		Support: Support{
			Telegram:  env("SUPPORT_TG", ""),
			Email:     env("SUPPORT_EMAIL", ""),
			WhatsApp:  env("SUPPORT_WHATSAPP", ""),
			Instagram: env("SUPPORT_INSTAGRAM", ""),
		},
		LeadPackages: parsePackages(env("LEAD_PACKAGES", "")),

		HTTPPort:           env("PORT", "5000"),
		MaxRequestBodySize: 1 << 20, // 1MB
		ShutdownTimeout:    10 * time.Second,

		SessionStore:  strings.ToLower(env("SESSION_STORE", "memory")),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPassword: env("REDIS_PASSWORD", ""),
		SessionTTL:    parseDuration(env("SESSION_TTL", "0"), 0),

		CatalogSyncInterval: parseDuration(env("CATALOG_SYNC_INTERVAL", "0"), 0),
		SendTimeout:         parseDuration(env("SEND_TIMEOUT", "10s"), 10*time.Second),
		FeedTimeout:         parseDuration(env("FEED_TIMEOUT", "15s"), 15*time.Second),
		BroadcastRate:       parseFloat(env("BROADCAST_RATE", "25"), 25),
		BroadcastLimit:      parseInt(env("BROADCAST_LIMIT", "0"), 0),

		LocaleFile: env("LOCALE_FILE", ""),
		LogLevel:   env("LOG_LEVEL", "info"),
		LogFormat:  env("LOG_FORMAT", "json"),
	}
}

// RemoteCatalog reports whether the catalog is sourced from the feed.
func (c *Config) RemoteCatalog() bool {
	return c.Tier.RemoteCatalog && c.SheetURL != ""
}

func (c *Config) IsAdmin(chatID string) bool {
	for _, a := range c.Admins {
		if a == chatID {
			return true
		}
	}
	return false
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parsePackages reads "key|label;key|label". A missing label reuses the key.
func parsePackages(s string) []LeadPackage {
	var out []LeadPackage
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, label, found := strings.Cut(entry, "|")
		key = strings.TrimSpace(key)
		label = strings.TrimSpace(label)
		if !found || label == "" {
			label = key
		}
		out = append(out, LeadPackage{Key: key, Label: label})
	}
	return out
}

// parseDuration accepts Go durations or plain seconds.
func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
