package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	RedisAddr  string
	RedisPass  string
	ServerAddr string
	JWTSecret  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	AppURL       string
	FromEmail    string
}

func LoadConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "sipcircle")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("PORT", ":8080")
	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 1025)
	v.SetDefault("APP_URL", "http://localhost:3000")
	v.SetDefault("FROM_EMAIL", "no-reply@sipcircle.app")

	return &Config{
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBUser:       v.GetString("DB_USER"),
		DBPassword:   v.GetString("DB_PASS"),
		DBName:       v.GetString("DB_NAME"),
		RedisAddr:    v.GetString("REDIS_ADDR"),
		RedisPass:    v.GetString("REDIS_PASS"),
		ServerAddr:   v.GetString("PORT"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPUsername: v.GetString("SMTP_USER"),
		SMTPPassword: v.GetString("SMTP_PASS"),
		AppURL:       v.GetString("APP_URL"),
		FromEmail:    v.GetString("FROM_EMAIL"),
	}
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
