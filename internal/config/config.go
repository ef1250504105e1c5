package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendAuto     = "auto"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendSQLite   = "sqlite"
	BackendFile     = "file"
)

type AppConfig struct {
	Port          string
	Backend       string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	SQLitePath    string
	JSONFile      string
}

func Load() (AppConfig, error) {
	_ = godotenv.Load() // load .env if present

	cfg := AppConfig{
		Port:          getEnv("PORT", "8080"),
		Backend:       strings.ToLower(getEnv("STORAGE_BACKEND", BackendAuto)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "qr_code_db"),
		SQLitePath:    getEnv("SQLITE_PATH", "badges.db"),
		JSONFile:      getEnv("JSON_DB_FILE", "employees.json"),
	}
	cfg.MongoURI = mongoURI(cfg.MongoDatabase)

	switch cfg.Backend {
	case BackendAuto:
		cfg.Backend = cfg.resolveAuto()
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return cfg, fmt.Errorf("missing required env: DATABASE_URL")
		}
	case BackendMongo:
		if cfg.MongoURI == "" {
			return cfg, fmt.Errorf("missing required env: MONGODB_URI")
		}
	case BackendSQLite, BackendFile:
	default:
		return cfg, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Backend)
	}
	return cfg, nil
}

func (c AppConfig) resolveAuto() string {
	switch {
	case c.DatabaseURL != "":
		return BackendPostgres
	case c.MongoURI != "":
		return BackendMongo
	default:
		return BackendFile
	}
}

// mongoURI prefers MONGODB_URI and otherwise assembles an Atlas URI from its parts.
func mongoURI(database string) string {
	if v := os.Getenv("MONGODB_URI"); v != "" {
		return v
	}
	user := os.Getenv("MONGODB_USERNAME")
	pass := os.Getenv("MONGODB_PASSWORD")
	cluster := os.Getenv("MONGODB_CLUSTER_URL")
	if user == "" || pass == "" || cluster == "" {
		return ""
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/%s?retryWrites=true&w=majority",
		url.QueryEscape(user), url.QueryEscape(pass), cluster, database)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
