package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Mistral    MistralConfig    `mapstructure:"mistral"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Bot        BotConfig        `mapstructure:"bot"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type ClassifierConfig struct {
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Workers  int64         `mapstructure:"workers"`
}

type MistralConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type ModerationConfig struct {
	DefaultModRoleID    int64 `mapstructure:"default_mod_role_id"`
	DefaultModChannelID int64 `mapstructure:"default_mod_channel_id"`
}

type BotConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// DefaultRole returns the process-wide moderator role, or nil when left
// at the zero value, meaning "no default".
func (m ModerationConfig) DefaultRole() *int64 {
	if m.DefaultModRoleID == 0 {
		return nil
	}
	v := m.DefaultModRoleID
	return &v
}

// DefaultChannel returns the process-wide report channel, or nil when
// left at the zero value.
func (m ModerationConfig) DefaultChannel() *int64 {
	if m.DefaultModChannelID == 0 {
		return nil
	}
	v := m.DefaultModChannelID
	return &v
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	// Remove leading slash from path to get database name
	dbName := strings.TrimPrefix(u.Path, "/")

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   dbName,
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", false)
	v.SetDefault("classifier.provider", "mistral")
	v.SetDefault("classifier.timeout", "10s")
	v.SetDefault("classifier.workers", 16)
	v.SetDefault("mistral.model", "mistral-moderation-latest")
	v.SetDefault("openai.model", "omni-moderation-latest")
	v.SetDefault("bot.name", "GuardianBot")
	v.SetDefault("bot.version", "1.0.0")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for DATABASE_URL environment variable
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %v", err)
		}
		config.Database = dbConfig
	}

	// Get other environment variables
	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}

	if apiKey := v.GetString("MISTRAL_API_KEY"); apiKey != "" {
		config.Mistral.APIKey = apiKey
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	if roleID := v.GetInt64("MOD_ROLE_ID"); roleID != 0 {
		config.Moderation.DefaultModRoleID = roleID
	}

	if channelID := v.GetInt64("MOD_CHANNEL_ID"); channelID != 0 {
		config.Moderation.DefaultModChannelID = channelID
	}

	return &config, nil
}
