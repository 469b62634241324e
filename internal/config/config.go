package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ADDR          string
	MONGO_URI     string
	MONGO_DB      string
	JWT_SECRET    string
	KAFKA_ADDRESS string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	LOG_LEVEL     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		ADDR:          os.Getenv("ADDR"),
		MONGO_URI:     os.Getenv("MONGO_URI"),
		MONGO_DB:      os.Getenv("MONGO_DB"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		LOG_LEVEL:     os.Getenv("LOG_LEVEL"),
	}

	if config.ADDR == "" {
		config.ADDR = ":8080"
	}
	if config.MONGO_DB == "" {
		config.MONGO_DB = "storefront"
	}

	return config, nil
}
