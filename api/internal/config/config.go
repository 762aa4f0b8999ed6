package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	OpenAIAPIKey         string
	OpenAIModel          string // classification / evaluation
	OpenAIReasoningModel string // guidance / practice / vision
	GeminiAPIKey         string
	GeminiModel          string

	UploadDir         string
	AllowedExtensions []string
	MaxUploadSizeMB   int

	TelegramBotToken string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func Load() *Config {
	// .env is optional; real deployments set env directly.
	_ = godotenv.Load()

	exts := strings.Split(getEnv("ALLOWED_EXTENSIONS", "jpg,jpeg,png,gif,webp,pdf,txt"), ",")
	for i := range exts {
		exts[i] = strings.ToLower(strings.TrimSpace(exts[i]))
	}

	return &Config{
		Port: getEnv("PORT", "8000"),

		OpenAIAPIKey:         mustEnv("OPENAI_API_KEY"),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIReasoningModel: getEnv("OPENAI_REASONING_MODEL", "gpt-4o"),
		GeminiAPIKey:         mustEnv("GEMINI_API_KEY"),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		AllowedExtensions: exts,
		MaxUploadSizeMB:   getEnvInt("MAX_UPLOAD_SIZE_MB", 10),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}
}

// ResolveDSN prefers DATABASE_URL, then assembles a DSN from POSTGRES_* parts.
func ResolveDSN() string {
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		return dsn
	}
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		return ""
	}
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	pass := os.Getenv("POSTGRES_PASSWORD")
	db := getEnv("POSTGRES_DB", "postgres")
	ssl := getEnv("POSTGRES_SSLMODE", "disable")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + db + "?sslmode=" + ssl
}
