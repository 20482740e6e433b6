package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	GeminiAPIKey string

	// AIMinScore is the floor below which a written answer earns no credit.
	// The judge scores 0-100; anything under this threshold is treated as a
	// near-zero-quality assessment rather than scaled linearly.
	AIMinScore int

	// DefaultPassingScore applies to tests that carry no threshold.
	DefaultPassingScore int

	// JudgeTimeoutSeconds bounds each AI judge call.
	JudgeTimeoutSeconds int
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("AI_MIN_SCORE", 15)
	viper.SetDefault("DEFAULT_PASSING_SCORE", 70)
	viper.SetDefault("JUDGE_TIMEOUT_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	config.AIMinScore = viper.GetInt("AI_MIN_SCORE")
	config.DefaultPassingScore = viper.GetInt("DEFAULT_PASSING_SCORE")
	config.JudgeTimeoutSeconds = viper.GetInt("JUDGE_TIMEOUT_SECONDS")

	log.Info().Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}

func (c *Config) JudgeTimeout() time.Duration {
	return time.Duration(c.JudgeTimeoutSeconds) * time.Second
}
