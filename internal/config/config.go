package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Storage StorageConfig
	Upload  UploadConfig
	Log     LogConfig
	CORS    CORSConfig
	Queue   QueueConfig
	Email   EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// StorageConfig holds uploaded-file storage settings. Provider "local"
// keeps source documents on disk under Dir; "s3" stores them in the
// configured bucket.
type StorageConfig struct {
	Provider  string `mapstructure:"provider"`
	Dir       string `mapstructure:"dir"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// UploadConfig bounds one upload batch.
type UploadConfig struct {
	MaxFiles      int   `mapstructure:"max_files"`
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// QueueConfig holds extraction queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EmailConfig holds job-completion notification settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	NotifyTo    string `mapstructure:"notify_to"`
}

// Load reads configuration from environment variables with the PEAKBRIDGE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PEAKBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "peakbridge")
	v.SetDefault("db.password", "peakbridge_secret")
	v.SetDefault("db.name", "peakbridge_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "peakbridge")

	// Storage defaults
	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.dir", "./data/uploads")
	v.SetDefault("storage.region", "ap-southeast-1")
	v.SetDefault("storage.bucket", "peakbridge-uploads")
	v.SetDefault("storage.endpoint", "")

	// Upload defaults
	v.SetDefault("upload.max_files", 200)
	v.SetDefault("upload.max_file_size_mb", 20)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 2)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 4)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-southeast-1")
	v.SetDefault("email.from_address", "noreply@peakbridge.local")
	v.SetDefault("email.from_name", "PeakBridge")
	v.SetDefault("email.notify_to", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "PEAKBRIDGE_SERVER_PORT",
		"server.read_timeout":      "PEAKBRIDGE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "PEAKBRIDGE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "PEAKBRIDGE_SERVER_ENVIRONMENT",
		"db.host":                  "PEAKBRIDGE_DB_HOST",
		"db.port":                  "PEAKBRIDGE_DB_PORT",
		"db.user":                  "PEAKBRIDGE_DB_USER",
		"db.password":              "PEAKBRIDGE_DB_PASSWORD",
		"db.name":                  "PEAKBRIDGE_DB_NAME",
		"db.sslmode":               "PEAKBRIDGE_DB_SSLMODE",
		"db.max_open":              "PEAKBRIDGE_DB_MAX_OPEN",
		"db.max_idle":              "PEAKBRIDGE_DB_MAX_IDLE",
		"jwt.secret":               "PEAKBRIDGE_JWT_SECRET",
		"jwt.access_expiry":        "PEAKBRIDGE_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":       "PEAKBRIDGE_JWT_REFRESH_EXPIRY",
		"jwt.issuer":               "PEAKBRIDGE_JWT_ISSUER",
		"storage.provider":         "PEAKBRIDGE_STORAGE_PROVIDER",
		"storage.dir":              "PEAKBRIDGE_STORAGE_DIR",
		"storage.region":           "PEAKBRIDGE_STORAGE_REGION",
		"storage.bucket":           "PEAKBRIDGE_STORAGE_BUCKET",
		"storage.endpoint":         "PEAKBRIDGE_STORAGE_ENDPOINT",
		"storage.access_key":       "PEAKBRIDGE_STORAGE_ACCESS_KEY",
		"storage.secret_key":       "PEAKBRIDGE_STORAGE_SECRET_KEY",
		"upload.max_files":         "PEAKBRIDGE_UPLOAD_MAX_FILES",
		"upload.max_file_size_mb":  "PEAKBRIDGE_UPLOAD_MAX_FILE_SIZE_MB",
		"log.level":                "PEAKBRIDGE_LOG_LEVEL",
		"log.format":               "PEAKBRIDGE_LOG_FORMAT",
		"cors.allowed_origins":     "PEAKBRIDGE_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs": "PEAKBRIDGE_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":        "PEAKBRIDGE_QUEUE_MAX_RETRIES",
		"queue.concurrency":        "PEAKBRIDGE_QUEUE_CONCURRENCY",
		"email.provider":           "PEAKBRIDGE_EMAIL_PROVIDER",
		"email.region":             "PEAKBRIDGE_EMAIL_REGION",
		"email.from_address":       "PEAKBRIDGE_EMAIL_FROM_ADDRESS",
		"email.from_name":          "PEAKBRIDGE_EMAIL_FROM_NAME",
		"email.notify_to":          "PEAKBRIDGE_EMAIL_NOTIFY_TO",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PEAKBRIDGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PEAKBRIDGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Storage = StorageConfig{
		Provider:  v.GetString("storage.provider"),
		Dir:       v.GetString("storage.dir"),
		Region:    v.GetString("storage.region"),
		Bucket:    v.GetString("storage.bucket"),
		Endpoint:  v.GetString("storage.endpoint"),
		AccessKey: v.GetString("storage.access_key"),
		SecretKey: v.GetString("storage.secret_key"),
	}
	cfg.Upload = UploadConfig{
		MaxFiles:      v.GetInt("upload.max_files"),
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		NotifyTo:    v.GetString("email.notify_to"),
	}

	return cfg, nil
}
