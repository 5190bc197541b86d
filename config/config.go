package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port     string
	LogLevel string

	CatalogAPIURL  string
	CatalogTimeout time.Duration
	AllowedOrigins []string

	AuthMode          string // "api" or "local"
	AdminUsername     string
	AdminPasswordHash string

	SessionStore string // "memory" or "mongo"
	SessionTTL   time.Duration
	CookieSecure bool
	MongoURI     string
	DatabaseName string

	PreviewStorage  string // "memory", "filesystem", "gcs" or "r2"
	PreviewDir      string
	GCSBucket       string
	CredentialsFile string
	R2Bucket        string
	R2AccessKey     string
	R2SecretKey     string
	R2Endpoint      string

	UploadExtensions []string
	UploadMimeTypes  []string
	MaxUploadSizeMB  int
}

// Load reads .env (if any) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	return &Config{
		Port:     envDefault("PORT", "8080"),
		LogLevel: envDefault("LOG_LEVEL", "info"),

		CatalogAPIURL:  strings.TrimRight(os.Getenv("CATALOG_API_URL"), "/"),
		CatalogTimeout: time.Duration(envInt("CATALOG_API_TIMEOUT_SECONDS", 30)) * time.Second,
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),

		AuthMode:          strings.ToLower(envDefault("AUTH_MODE", "api")),
		AdminUsername:     strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		SessionStore: strings.ToLower(envDefault("SESSION_STORE", "memory")),
		SessionTTL:   time.Duration(envInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
		MongoURI:     os.Getenv("MONGODB_URI"),
		DatabaseName: envDefault("DATABASE_NAME", "saho_admin"),

		PreviewStorage:  strings.ToLower(envDefault("PREVIEW_STORAGE", "memory")),
		PreviewDir:      envDefault("PREVIEW_DIR", "./data/previews"),
		GCSBucket:       os.Getenv("GCS_BUCKET"),
		CredentialsFile: os.Getenv("CREDENTIALS_FILE_LOCATION"),
		R2Bucket:        os.Getenv("R2_BUCKET"),
		R2AccessKey:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretKey:     os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2Endpoint:      os.Getenv("R2_ENDPOINT"),

		UploadExtensions: splitList(envDefault("ALLOWED_FILE_EXTENSIONS", ".jpg,.jpeg,.png,.webp")),
		UploadMimeTypes:  splitList(envDefault("ALLOWED_FILE_MIME_TYPES", "image/jpeg,image/png,image/webp")),
		MaxUploadSizeMB:  envInt("MAX_UPLOAD_SIZE_MB", 5),
	}
}

func (c *Config) Validate() error {
	if c.CatalogAPIURL == "" {
		return fmt.Errorf("missing CATALOG_API_URL")
	}
	switch c.AuthMode {
	case "api", "local":
	default:
		return fmt.Errorf("unknown AUTH_MODE %q (want api or local)", c.AuthMode)
	}
	if c.SessionStore == "mongo" && c.MongoURI == "" {
		return fmt.Errorf("SESSION_STORE=mongo needs MONGODB_URI")
	}
	return nil
}

func envDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitList(v string) []string {
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
