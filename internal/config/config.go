package config

import (
	"os"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	AdminEmail  string
	AppBaseURL  string

	MailgunAPIKey      string
	MailgunDomain      string
	MailgunSenderEmail string
	MailgunSenderName  string
}

func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		AdminEmail:  getEnv("ADMIN_EMAIL", "admin@growvend.com"),
		AppBaseURL:  getEnv("APP_BASE_URL", "http://localhost:3000"),

		MailgunAPIKey:      getEnv("MAILGUN_API_KEY", ""),
		MailgunDomain:      getEnv("MAILGUN_DOMAIN", ""),
		MailgunSenderEmail: getEnv("MAILGUN_SENDER_EMAIL", "no-reply@vendshop.local"),
		MailgunSenderName:  getEnv("MAILGUN_SENDER_NAME", "VendShop"),
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
