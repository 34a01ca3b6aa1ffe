package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa*/

const (
	DefaultPort              = "8000"
	DefaultSecretHeader      = "X-Webhook-Api-Key"
	DefaultBridgeAPIURL      = "http://localhost:8080/api"
	DefaultMessagesDBPath    = "../whatsapp-bridge/store/messages.db"
	DefaultDispatchWorkers   = 4
	DefaultDispatchQueueSize = 256
)

type Config struct {
	Port                        string `mapstructure:"PORT"`
	LogLevel                    string `mapstructure:"LOG_LEVEL"`
	WebhookAPIKey               string `mapstructure:"WEBHOOK_API_KEY"`
	OutgoingWebhookURL          string `mapstructure:"OUTGOING_WEBHOOK_URL"`
	OutgoingWebhookHeaders      string `mapstructure:"OUTGOING_WEBHOOK_HEADERS"`
	OutgoingWebhookSecretHeader string `mapstructure:"OUTGOING_WEBHOOK_SECRET_HEADER"`
	OutgoingWebhookSecret       string `mapstructure:"OUTGOING_WEBHOOK_SECRET"`
	BridgeAPIURL                string `mapstructure:"BRIDGE_API_URL"`
	MessagesDBPath              string `mapstructure:"MESSAGES_DB_PATH"`
	FFmpegPath                  string `mapstructure:"FFMPEG_PATH"`
	DispatchWorkers             int    `mapstructure:"DISPATCH_WORKERS"`
	DispatchQueueSize           int    `mapstructure:"DISPATCH_QUEUE_SIZE"`

	// outgoingSecretSet is true when OUTGOING_WEBHOOK_SECRET was given, even empty
	outgoingSecretSet bool
}

// HeaderPair is a single default header sent with every outgoing webhook.
type HeaderPair struct {
	Name  string
	Value string
}

var keys = []string{
	"PORT",
	"LOG_LEVEL",
	"WEBHOOK_API_KEY",
	"OUTGOING_WEBHOOK_URL",
	"OUTGOING_WEBHOOK_HEADERS",
	"OUTGOING_WEBHOOK_SECRET_HEADER",
	"OUTGOING_WEBHOOK_SECRET",
	"BRIDGE_API_URL",
	"MESSAGES_DB_PATH",
	"FFMPEG_PATH",
	"DISPATCH_WORKERS",
	"DISPATCH_QUEUE_SIZE",
}

// GetConfig reads .env from the working directory, if present, and lets the
// process environment override it.
func GetConfig() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BRIDGE_API_URL", DefaultBridgeAPIURL)
	v.SetDefault("MESSAGES_DB_PATH", DefaultMessagesDBPath)
	v.SetDefault("FFMPEG_PATH", "ffmpeg")
	v.SetDefault("DISPATCH_WORKERS", DefaultDispatchWorkers)
	v.SetDefault("DISPATCH_QUEUE_SIZE", DefaultDispatchQueueSize)
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s: %w", k, err)
		}
	}
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	_, inEnv := os.LookupEnv("OUTGOING_WEBHOOK_SECRET")
	config.outgoingSecretSet = inEnv || v.InConfig("OUTGOING_WEBHOOK_SECRET")
	return &config, nil
}

// GetOutgoingSecret falls back to the inbound API key when
// OUTGOING_WEBHOOK_SECRET is not configured. Set to an empty value it turns
// the outgoing secret header off.
func (c *Config) GetOutgoingSecret() string {
	if c.OutgoingWebhookSecret != "" || c.outgoingSecretSet {
		return c.OutgoingWebhookSecret
	}
	return c.WebhookAPIKey
}

func (c *Config) GetOutgoingSecretHeader() string {
	if c.OutgoingWebhookSecretHeader != "" {
		return c.OutgoingWebhookSecretHeader
	}
	return DefaultSecretHeader
}

// GetDefaultHeaders parses OUTGOING_WEBHOOK_HEADERS. Anything that is not a
// JSON object yields no headers; non-string values are skipped.
func (c *Config) GetDefaultHeaders() []HeaderPair {
	return ParseHeaders(c.OutgoingWebhookHeaders)
}

func (c *Config) GetDispatchWorkers() int {
	if c.DispatchWorkers <= 0 {
		return DefaultDispatchWorkers
	}
	return c.DispatchWorkers
}

func (c *Config) GetDispatchQueueSize() int {
	if c.DispatchQueueSize <= 0 {
		return DefaultDispatchQueueSize
	}
	return c.DispatchQueueSize
}

// ParseHeaders decodes a JSON object of header names to values.
func ParseHeaders(raw string) []HeaderPair {
	if raw == "" {
		return nil
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil
	}
	names := make([]string, 0, len(decoded))
	for name := range decoded {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]HeaderPair, 0, len(names))
	for _, name := range names {
		value, ok := decoded[name].(string)
		if !ok {
			continue
		}
		pairs = append(pairs, HeaderPair{Name: name, Value: value})
	}
	return pairs
}
