package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DeletePolicy decides what happens to appointments and medications when
// the patient or doctor they reference is deleted.
type DeletePolicy string

const (
	DeletePolicyRestrict DeletePolicy = "restrict"
	DeletePolicyCascade  DeletePolicy = "cascade"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	AntiForgery  AntiForgeryConfig
	DeletePolicy DeletePolicy
}

type AppConfig struct {
	Port       string
	Env        string
	LogLevel   string
	CORSOrigin string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	TimeZone    string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AntiForgeryConfig struct {
	Secret string
	Expiry time.Duration
}

// IsDevelopment reports whether the app runs with APP_ENV=development.
func (c AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// LoadConfig reads .env from the working directory when present and lets
// environment variables override it.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DELETE_POLICY", string(DeletePolicyRestrict))

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	antiForgeryExpiry, err := time.ParseDuration(v.GetString("ANTIFORGERY_EXPIRY"))
	if err != nil {
		antiForgeryExpiry = 2 * time.Hour
	}

	policy := DeletePolicy(strings.ToLower(v.GetString("DELETE_POLICY")))
	if policy != DeletePolicyRestrict && policy != DeletePolicyCascade {
		return nil, fmt.Errorf("invalid DELETE_POLICY %q, use restrict or cascade", policy)
	}

	secret := v.GetString("ANTIFORGERY_SECRET")
	if secret == "" && !strings.EqualFold(v.GetString("APP_ENV"), "development") {
		return nil, errors.New("ANTIFORGERY_SECRET must be set outside development")
	}

	config := &Config{
		App: AppConfig{
			Port:       v.GetString("APP_PORT"),
			Env:        v.GetString("APP_ENV"),
			LogLevel:   v.GetString("LOG_LEVEL"),
			CORSOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			TimeZone:    v.GetString("DB_TIMEZONE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		AntiForgery: AntiForgeryConfig{
			Secret: secret,
			Expiry: antiForgeryExpiry,
		},
		DeletePolicy: policy,
	}

	return config, nil
}
