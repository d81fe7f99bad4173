package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Year range requested from the BLS API. Single point of change if the
// history window moves.
const (
	StartYear = 2022
	EndYear   = 2025
)

const defaultBLSURL = "https://api.bls.gov/publicAPI/v2/timeseries/data/"

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	BLS      BLSConfig
	DataPath string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// BLSConfig holds the statistics API endpoint
type BLSConfig struct {
	URL string
}

// Address returns host:port for the dashboard listener
func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}

// Load reads configuration from an optional .env file and environment variables
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		BLS: BLSConfig{
			URL: getEnv("BLS_API_URL", defaultBLSURL),
		},
		DataPath: getEnv("LABOR_DATA_PATH", "labor_data.csv"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
