package service

import "os"

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	// ServiceRoleKey authenticates the external scheduler that triggers
	// distribution runs.
	ServiceRoleKey string

	Graph struct {
		BaseURL   string
		UploadURL string
	}

	Stripe struct {
		PublishableKey string
		SecretKey      string
		WebhookSecret  string
	}

	Clerk struct {
		SecretKey string
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		Port:           getEnv("PORT", "8000"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:         getEnv("DB_PATH", "./db/promojour.db"),
		ServiceRoleKey: getEnv("SERVICE_ROLE_KEY", ""),
	}

	// Graph API host overrides, used against mock hosts in staging
	config.Graph.BaseURL = getEnv("GRAPH_BASE_URL", "")
	config.Graph.UploadURL = getEnv("GRAPH_UPLOAD_URL", "")

	// Stripe
	config.Stripe.PublishableKey = getEnv("STRIPE_PUBLISHABLE_KEY", "")
	config.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")
	config.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")

	// Clerk
	config.Clerk.SecretKey = getEnv("CLERK_SECRET_KEY", "")

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
