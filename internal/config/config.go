package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server Server `yaml:"server"`
	Slack  Slack  `yaml:"slack"`
	App    App    `yaml:"app"`
}

type Server struct {
	Port          int    `yaml:"port"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Slack struct {
	BotToken      string `yaml:"botToken"`
	SigningSecret string `yaml:"signingSecret"`
	ChannelID     string `yaml:"channelID"`
	ClientID      string `yaml:"clientID"`
	ClientSecret  string `yaml:"clientSecret"`
	BotScope      string `yaml:"botScope"`
	RedirectHost  string `yaml:"redirectHost"`
	APIBase       string `yaml:"apiBase"`
}

type App struct {
	LoadingMessagesPath string `yaml:"loadingMessagesPath"`
}

func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	// Secrets can be kept out of the file and supplied through the
	// environment (or a .env in development).
	if v := os.Getenv("SLACK_BOT_TOKEN"); v != "" {
		config.Slack.BotToken = v
	}
	if v := os.Getenv("SLACK_SIGNING_SECRET"); v != "" {
		config.Slack.SigningSecret = v
	}
	if v := os.Getenv("SLACK_CLIENT_SECRET"); v != "" {
		config.Slack.ClientSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.Server.RedisAddr = v
	}

	return config, nil
}
