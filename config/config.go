package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	AVATAR_SIZE = 64

	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

type DBConfig struct {
	Driver   string
	User     string
	Pass     string
	Host     string
	Name     string
	Path     string // sqlite database file
	MaxConns int
}

type Config struct {
	Port          string
	GinMode       string
	Origins       []string
	DB            DBConfig
	StorageBucket string
	// MediaRoot holds uploaded images when StorageBucket is empty
	MediaRoot     string
	PostsOnPage   uint
	IndexCacheTTL time.Duration
	SessionTTL    time.Duration
	SecureCookies bool
	LogLevel      string
	LogFormat     string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_NAME", "yatube")
	v.SetDefault("DB_PATH", "./yatube.db")
	v.SetDefault("DB_MAX_CONNS", 50)
	v.SetDefault("POSTS_ON_PAGE", 10)
	v.SetDefault("MEDIA_ROOT", "./media")
	v.SetDefault("INDEX_CACHE_TTL", 20*time.Second)
	v.SetDefault("SESSION_TTL", 14*24*time.Hour)
	v.SetDefault("SESSION_COOKIE_SECURE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real env vars take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:    v.GetString("PORT"),
		GinMode: v.GetString("GIN_MODE"),
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			User:     v.GetString("DB_USER"),
			Pass:     v.GetString("DB_PASS"),
			Host:     v.GetString("DB_HOST"),
			Name:     v.GetString("DB_NAME"),
			Path:     v.GetString("DB_PATH"),
			MaxConns: v.GetInt("DB_MAX_CONNS"),
		},
		StorageBucket: v.GetString("STORAGE_BUCKET"),
		MediaRoot:     v.GetString("MEDIA_ROOT"),
		PostsOnPage:   v.GetUint("POSTS_ON_PAGE"),
		IndexCacheTTL: v.GetDuration("INDEX_CACHE_TTL"),
		SessionTTL:    v.GetDuration("SESSION_TTL"),
		SecureCookies: v.GetBool("SESSION_COOKIE_SECURE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
	}
	if origins := v.GetString("FE_ORIGINS"); origins != "" {
		cfg.Origins = strings.Split(origins, ";")
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMySQL:
		if c.DB.Host == "" {
			return fmt.Errorf("DB_HOST must be set for driver %v", c.DB.Driver)
		}
	case DriverSQLite:
		if c.DB.Path == "" {
			return fmt.Errorf("DB_PATH must be set for driver %v", c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.PostsOnPage == 0 {
		return fmt.Errorf("POSTS_ON_PAGE must be positive")
	}
	if c.Port == "" {
		return fmt.Errorf("$PORT must be set")
	}
	return nil
}

// ConfigureFirebaseCredentials makes credentials passed as a JSON string available
// to the firebase SDK, which only reads them from a file.
func ConfigureFirebaseCredentials() (string, error) {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		return credentialsPath, nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 0400)
		if err != nil {
			return "", fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		err = os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile)
		if err != nil {
			return "", fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return TargetCredentialsFile, nil
	}
	return "", fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
