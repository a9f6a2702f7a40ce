package config

import "main/utils"

type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string // prefix for reset-password links
}

func LoadMailerConfig() MailerConfig {
	return MailerConfig{
		Host:     utils.GetEnvAsString("SMTP_HOST", "localhost"),
		Port:     utils.GetEnvAsInt("SMTP_PORT", 587),
		Username: utils.GetEnvAsString("SMTP_USERNAME", ""),
		Password: utils.GetEnvAsString("SMTP_PASSWORD", ""),
		From:     utils.GetEnvAsString("SMTP_FROM", "no-reply@notekeeper.local"),
		BaseURL:  utils.GetEnvAsString("APP_BASE_URL", "http://localhost:8080"),
	}
}
