package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	Port        string `mapstructure:"PORT"`

	// MaxActiveRooms caps the number of rooms with status open or busy
	// across the whole process.
	MaxActiveRooms int `mapstructure:"MAX_ACTIVE_ROOMS"`

	// VirusNickname is the reserved nickname of the automated participant.
	VirusNickname string `mapstructure:"VIRUS_NICKNAME"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("MAX_ACTIVE_ROOMS", 10)
	viper.SetDefault("VIRUS_NICKNAME", "virus")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
