package cmd

import "time"

// Config carries the environment-driven settings for the service.
type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	RabbitMQURL       string
	PaymentsBaseURL   string
	PaymentsAPIKey    string
	UrgentAfter       time.Duration
	SideEffectTimeout time.Duration
}
