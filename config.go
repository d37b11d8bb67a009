package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"order-tracking-service/providers"
)

// Config holds all configuration for the order tracking service.
type Config struct {
	Port             string
	Env              string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
	StripeSecretKey  string
	DHLAPIKey        string
	// Warehouse / origin address defaults
	OriginName       string
	OriginStreet     string
	OriginCity       string
	OriginPostalCode string
	OriginCountry    string
}

// OriginAddress builds the warehouse shipping address from config values.
func (c *Config) OriginAddress() providers.CarrierAddress {
	return providers.CarrierAddress{
		Name:       c.OriginName,
		Street:     c.OriginStreet,
		City:       c.OriginCity,
		PostalCode: c.OriginPostalCode,
		Country:    c.OriginCountry,
	}
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB,
		c.PostgresPort, c.PostgresSSLMode, c.PostgresTimeZone,
	)
}

// LoadConfig reads configuration from the environment, with .env as a
// development convenience.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		DHLAPIKey:        os.Getenv("DHL_API_KEY"),
		OriginName:       getEnv("ORIGIN_NAME", "Order Tracking Warehouse"),
		OriginStreet:     getEnv("ORIGIN_STREET", "123 Warehouse Blvd"),
		OriginCity:       getEnv("ORIGIN_CITY", "San Francisco"),
		OriginPostalCode: getEnv("ORIGIN_POSTAL_CODE", "94105"),
		OriginCountry:    getEnv("ORIGIN_COUNTRY", "US"),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY environment variable not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
