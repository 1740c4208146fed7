package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var ErrEmptyOrigin = errors.New("error getting LW_ORIGIN: variable not specified or contains an empty string")

// Config is the process configuration, constructed once in main and passed
// explicitly into every component that needs it.
type Config struct {
	Env       string // Env is the current environment: local, dev, prod.
	Origin    string // Origin is the dealership site origin, e.g. "https://www.zeckford.com".
	StorePath string // StorePath is the path of the persisted inventory file.
	HTTP      HTTP
	Slack     Slack
	Tg        Telegram
	Options   Options
}

type HTTP struct {
	Timeout time.Duration // Timeout is the per-request timeout for page fetches.
	RPS     float64       // RPS limits outgoing requests per second.
}

type Slack struct {
	WebhookURL string // WebhookURL is the incoming-webhook endpoint; empty disables Slack.
}

type Telegram struct {
	Token  string // Token is an unique telegram bot token; empty disables Telegram.
	ChatID int64  // ChatID is the chat that receives new-vehicle alerts.
}

// Options is the query surface filled in from command-line flags.
type Options struct {
	Years     []string
	Makes     []string
	Models    []string
	Styles    []string
	PriceLow  int
	PriceHigh int
	Search    string
	DryRun    bool // DryRun computes and persists the diff but suppresses notifications.
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("LW")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("STORE_PATH", "vehicles.json")
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.SetDefault("FETCH_RPS", 2.0)

	if viper.GetString("ORIGIN") == "" {
		panic(ErrEmptyOrigin)
	}

	return &Config{
		Env:       viper.GetString("ENV"),
		Origin:    viper.GetString("ORIGIN"),
		StorePath: viper.GetString("STORE_PATH"),
		HTTP: HTTP{
			Timeout: viper.GetDuration("HTTP_TIMEOUT"),
			RPS:     viper.GetFloat64("FETCH_RPS"),
		},
		Slack: Slack{
			WebhookURL: viper.GetString("SLACK_WEBHOOK_URL"),
		},
		Tg: Telegram{
			Token:  viper.GetString("TELEGRAM_TOKEN"),
			ChatID: viper.GetInt64("TELEGRAM_CHAT_ID"),
		},
	}
}
