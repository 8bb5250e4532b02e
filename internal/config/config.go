package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend the dashboard talks to.
	APIBaseURL string
	SocketURL  string

	// SSH serving (each connection gets its own dashboard session).
	SSHPort  int
	KeysPath string

	// Local persistence: "sqlite" or "postgres".
	StoreDriver string
	StoreDSN    string
}

func Load() Config {
	// .env is optional, real env always wins.
	godotenv.Load()

	return Config{
		APIBaseURL:  getEnv("APPWATCH_API_URL", "http://localhost:3000"),
		SocketURL:   getEnv("APPWATCH_WS_URL", "ws://localhost:3000/ws"),
		SSHPort:     getEnvInt("APPWATCH_SSH_PORT", 23234),
		KeysPath:    getEnv("APPWATCH_AUTHORIZED_KEYS", "authorized_keys"),
		StoreDriver: getEnv("APPWATCH_STORE", "sqlite"),
		StoreDSN:    getEnv("APPWATCH_STORE_DSN", "appwatch.db"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
