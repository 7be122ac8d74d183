package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort         int    `mapstructure:"APP_PORT"`
	DatabasePath    string `mapstructure:"DATABASE_PATH"`
	CompletionURL   string `mapstructure:"COMPLETION_URL"`
	CompletionModel string `mapstructure:"COMPLETION_MODEL"`
	TitleStrategy   string `mapstructure:"TITLE_STRATEGY"`
	TitleMaxLength  int    `mapstructure:"TITLE_MAX_LENGTH"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("DATABASE_PATH", "/data/threadline.db")
	viper.SetDefault("COMPLETION_URL", "http://completion:11434")
	viper.SetDefault("COMPLETION_MODEL", "default")
	viper.SetDefault("TITLE_STRATEGY", "heuristic")
	viper.SetDefault("TITLE_MAX_LENGTH", 50)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
