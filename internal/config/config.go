package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	HTTPAddr       string
	PostgresDSN    string
	RedisAddr      string
	KafkaBrokers   []string
	ResendAPIKey   string
	MailFrom       string
	AdminEmail     string
	AdminToken     string
	InternalSecret string
	ServiceName    string
}

// Load reads configuration from the environment. The database DSN and the
// three credentials have no defaults: a missing one is a startup failure,
// not something to discover on the first request.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: splitCSV(getenv("KAFKA_BROKERS", "localhost:9092")),
		MailFrom:     getenv("MAIL_FROM", "GalaxyShop <orders@galaxyshop.store>"),
		AdminEmail:   getenv("ADMIN_EMAIL", "admin@galaxyshop.store"),
		ServiceName:  getenv("SERVICE_NAME", "galaxyshop-api"),
	}
	required := []struct {
		key string
		dst *string
	}{
		{"POSTGRES_DSN", &cfg.PostgresDSN},
		{"RESEND_API_KEY", &cfg.ResendAPIKey},
		{"ADMIN_TOKEN", &cfg.AdminToken},
		{"INTERNAL_SECRET", &cfg.InternalSecret},
	}
	for _, r := range required {
		v := os.Getenv(r.key)
		if v == "" {
			return Config{}, fmt.Errorf("missing required env %s", r.key)
		}
		*r.dst = v
	}
	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
