package configs

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SessionTTL is the absolute lifetime of a login.
const SessionTTL = 8 * time.Hour

type Config struct {
	DBDriver         string
	DBSource         string
	Port             string
	SessionSecret    string
	SessionTTL       time.Duration
	CookieSecure     bool
	RestaurantConfig string
	PublicDir        string
	AdminUsername    string
	AdminPassword    string
	CORSOrigins      []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ️ no .env file, using process environment")
	}

	secret := getEnv("SESSION_SECRET", "")
	if secret == "" {
		log.Println("⚠️ SESSION_SECRET not set, using an insecure development secret")
		secret = "changeme"
	}

	return &Config{
		DBDriver:         getEnv("DB_DRIVER", "sqlite"),
		DBSource:         getEnv("DB_SOURCE", "restaurante.db"),
		Port:             getEnv("PORT", "3000"),
		SessionSecret:    secret,
		SessionTTL:       SessionTTL,
		CookieSecure:     getEnv("COOKIE_SECURE", "false") == "true",
		RestaurantConfig: getEnv("RESTAURANT_CONFIG", "config.json"),
		PublicDir:        getEnv("PUBLIC_DIR", "public"),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
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
