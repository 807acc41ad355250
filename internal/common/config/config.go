package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMCPEndpoint - внешний MCP сервис данных о комнатах.
const DefaultMCPEndpoint = "https://app.getgram.ai/mcp/ai-labs-future_home"

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	// шлюз → designer
	DesignerURL string

	// шлюз → внешний MCP
	MCPEndpoint string
	MCPAPIKey   string

	// designer → прокси шлюза
	MCPProxyURL string
	MCPTimeout  int

	CORSOrigins  []string
	OTLPEndpoint string
}

// Load читает переменные окружения. Необязательный .env подгружается первым
// и не перекрывает уже заданные переменные. defaultPort у каждого сервиса свой.
func Load(defaultPort string) *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[CONFIG] .env not loaded: %v", err)
	}

	return &Config{
		Port:         getEnv("PORT", defaultPort),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		DesignerURL:  strings.TrimRight(getEnv("DESIGNER_URL", "http://localhost:3001"), "/"),
		MCPEndpoint:  getEnv("MCP_ENDPOINT", DefaultMCPEndpoint),
		MCPAPIKey:    os.Getenv("MCP_API_KEY"),
		MCPProxyURL:  getEnv("MCP_PROXY_URL", "http://localhost:3000/api/mcp"),
		MCPTimeout:   getEnvAsInt("MCP_TIMEOUT", 15),
		CORSOrigins:  getEnvAsList("CORS_ORIGINS", []string{"*"}),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

func (c *Config) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

func (c *Config) MCPTimeoutDuration() time.Duration {
	return time.Duration(c.MCPTimeout) * time.Second
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
