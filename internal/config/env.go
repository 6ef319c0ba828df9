package config

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is only meant for local development.
const DefaultJWTSecret = "dev-secret-change-me"

var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set to a non-default value in release mode")

type Env struct {
	AppAddr string
	GinMode string

	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBTimeout   time.Duration
	AutoMigrate bool

	JWTSecret  string
	SessionTTL time.Duration

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "somnolencia")
	v.SetDefault("DB_TIMEOUT", "5s")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("SESSION_TTL", "8h")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	dbTimeout := v.GetDuration("DB_TIMEOUT")
	if dbTimeout <= 0 {
		dbTimeout = 5 * time.Second
	}

	return Env{
		AppAddr:            strings.TrimSpace(v.GetString("APP_ADDR")),
		GinMode:            strings.TrimSpace(v.GetString("GIN_MODE")),
		DBHost:             strings.TrimSpace(v.GetString("DB_HOST")),
		DBPort:             strings.TrimSpace(v.GetString("DB_PORT")),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             strings.TrimSpace(v.GetString("DB_NAME")),
		DBTimeout:          dbTimeout,
		AutoMigrate:        v.GetBool("AUTO_MIGRATE"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		AdminUsername:      strings.TrimSpace(v.GetString("ADMIN_USERNAME")),
		AdminPassword:      v.GetString("ADMIN_PASSWORD"),
		AdminPasswordHash:  strings.TrimSpace(v.GetString("ADMIN_PASSWORD_HASH")),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}
}

// Validate rejects settings that are unsafe to run with. The development
// JWT secret is public, so release mode refuses it.
func (e Env) Validate() error {
	if e.GinMode == gin.ReleaseMode {
		secret := strings.TrimSpace(e.JWTSecret)
		if secret == "" || secret == DefaultJWTSecret {
			return ErrInsecureJWTSecret
		}
	}
	return nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
