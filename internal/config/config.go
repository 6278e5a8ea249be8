package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	MongoURI       string
	MongoDB        string
	StorageBackend string // "mongodb" | "postgres" | "sqlite"
	PostgresDSN    string
	SQLitePath     string
	RedisAddr      string
	ClickHouseAddr string
	ClickHouseDB   string
	DaprPublishURL string
	PubsubName     string
	UseKafka       bool
	KafkaBrokers   []string
	CacheTTL       time.Duration
	HTTPPort       string
}

func LoadConfig() *Config {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")

	return &Config{
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGODB_DB", "facturalab"),
		StorageBackend: getEnv("STORAGE_BACKEND", "mongodb"),
		PostgresDSN:    getEnv("POSTGRES_DSN", "postgres://localhost:5432/facturalab"),
		SQLitePath:     getEnv("SQLITE_PATH", "./facturalab_invoices.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		ClickHouseAddr: getEnv("CLICKHOUSE_ADDR", ""),
		ClickHouseDB:   getEnv("CLICKHOUSE_DB", "facturalab"),
		DaprPublishURL: getEnv("DAPR_PUBLISH_URL", "http://localhost:3500/v1.0/publish"),
		PubsubName:     getEnv("PUBSUB_NAME", "pubsub"),
		UseKafka:       getEnv("USE_KAFKA", "") == "true",
		KafkaBrokers:   kafkaBrokers,
		CacheTTL:       5 * time.Minute,
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
	}
}
