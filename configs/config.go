package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource   string
	Port       string
	JWTSecret  string
	JWTTTL     time.Duration
	UploadDir  string
	TableCount int

	// IANA zone name the "daily" order-number boundary is evaluated in.
	Timezone string

	// Menu section labels, in display order.
	Categories []string

	AdminUsername string
	AdminPassword string
}

const defaultCategories = "Lunch of the Day,Dessert of the Day,Breakfast,Bowls,Soups,Salads,Hot Dishes,Starters,Desserts,Drinks"

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:      getEnv("DB_SOURCE", "tableside.db"),
		Port:          getEnv("PORT", "8000"),
		JWTSecret:     getEnv("SECRET_KEY", "changeme"),
		JWTTTL:        time.Duration(12) * time.Hour,
		UploadDir:     getEnv("UPLOAD_DIR", "uploads/images"),
		TableCount:    getEnvInt("TABLE_COUNT", 14),
		Timezone:      getEnv("TIMEZONE", "Europe/Warsaw"),
		Categories:    splitList(getEnv("MENU_CATEGORIES", defaultCategories)),
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

// Location resolves the configured zone; a bad name is a deployment error.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Fatalf("invalid TIMEZONE %q: %v", c.Timezone, err)
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid %s: %v", key, err)
		}
		return n
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
