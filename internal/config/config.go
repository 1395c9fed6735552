// Package config loads the handful of startup inputs the core needs:
// listening ports, the chat-bot credential, the chat webhook base URL, the
// document-store path, the token-signing secret, the worker count, the
// card-image base URL, and the command-control switch. Nothing else is read
// from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds every startup input listed in the package doc. All fields are resolved once at process start and passed
// down by value; nothing here is read again after Load returns.
type Config struct {
	HTTPAddr              string
	TransportAddr         string
	DiscordToken          string
	DiscordWebhookBaseURL string
	DocStorePath          string
	TokenSecret           string
	WorkerCount           int
	CardImageBaseURL      string
	CommandControl        bool
}

const (
	envHTTPAddr              = "CARDFORGE_HTTP_ADDR"
	envTransportAddr         = "CARDFORGE_TRANSPORT_ADDR"
	envDiscordToken          = "CARDFORGE_DISCORD_TOKEN"
	envDiscordWebhookBaseURL = "CARDFORGE_DISCORD_WEBHOOK_BASE_URL"
	envDocStorePath          = "CARDFORGE_DOCSTORE_PATH"
	envTokenSecret           = "CARDFORGE_TOKEN_SECRET"
	envWorkerCount           = "CARDFORGE_WORKER_COUNT"
	envCardImageBaseURL      = "CARDFORGE_CARD_IMAGE_BASE_URL"
	envCommandControl        = "CARDFORGE_COMMAND_CONTROL"
)

// Load reads the process environment and applies defaults for anything not
// set explicitly (other than the token secret, which has no safe default).
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:              getenvDefault(envHTTPAddr, ":8080"),
		TransportAddr:         getenvDefault(envTransportAddr, ":9090"),
		DiscordToken:          os.Getenv(envDiscordToken),
		DiscordWebhookBaseURL: getenvDefault(envDiscordWebhookBaseURL, "https://discord.com/api/v10"),
		DocStorePath:          getenvDefault(envDocStorePath, "./cardforge.db"),
		TokenSecret:           os.Getenv(envTokenSecret),
		WorkerCount:           4,
		CardImageBaseURL:      getenvDefault(envCardImageBaseURL, "https://cdn.cardforge.example/cards/"),
		CommandControl:        getenvBoolDefault(envCommandControl, true),
	}

	if cfg.TokenSecret == "" {
		return Config{}, fmt.Errorf("config: %s must be set", envTokenSecret)
	}

	if raw := os.Getenv(envWorkerCount); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: %s must be a positive integer, got %q", envWorkerCount, raw)
		}
		cfg.WorkerCount = n
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBoolDefault(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}
