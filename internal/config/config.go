package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Session SessionConfig
	SMTP    SMTPConfig
	Admin   AdminConfig
	Ai      AIConfig
	Tracing TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	NatsEnabled        bool
	CVFilePath         string
}

type SessionConfig struct {
	Store         string // "memory" or "redis"
	TTLMinutes    int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	OwnerEmail string
}

type AdminConfig struct {
	Username     string
	PasswordHash string
	JWTSecret    string
	JWTExpMins   int
}

type AIConfig struct {
	LLMProvider          string // "gemini", "ollama", or "huggingface"
	GeminiAPIKey         string
	GeminiModel          string
	OllamaBaseURL        string
	OllamaModel          string
	HFApiKey             string
	HFBaseURL            string
	HFModel              string
	Temperature          float64
	MaxInputChars        int
	MaxConversationTurns int
	DailyChatLimit       int
	BurstChatLimit       int
	KnowledgeBasePath    string
}

type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			NatsEnabled:        getEnvAsBool("NATS_ENABLED", false),
			CVFilePath:         getEnv("CV_FILE_PATH", "static/files/demo_cv.pdf"),
		},
		Session: SessionConfig{
			Store:         getEnv("SESSION_STORE", "memory"),
			TTLMinutes:    getEnvAsInt("SESSION_TTL_MINUTES", 60),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Portfolio Terminal"),
			OwnerEmail: getEnv("OWNER_EMAIL", ""),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "ben"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET", ""),
			JWTExpMins:   getEnvAsInt("JWT_EXP_MINUTES", 60),
		},
		Ai: AIConfig{
			LLMProvider:          getEnv("LLM_PROVIDER", "gemini"),
			GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
			GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:          getEnv("OLLAMA_MODEL", "llama3"),
			HFApiKey:             getEnv("HF_API_KEY", ""),
			HFBaseURL:            getEnv("HF_BASE_URL", ""),
			HFModel:              getEnv("HF_MODEL", "meta-llama/Llama-3.1-8B-Instruct"),
			Temperature:          getEnvAsFloat("LLM_TEMPERATURE", 0.2),
			MaxInputChars:        getEnvAsInt("LLM_MAX_INPUT_CHARS", 500),
			MaxConversationTurns: getEnvAsInt("LLM_MAX_CONVERSATION_TURNS", 10),
			DailyChatLimit:       getEnvAsInt("CHAT_DAILY_LIMIT", 50),
			BurstChatLimit:       getEnvAsInt("CHAT_BURST_LIMIT", 10),
			KnowledgeBasePath:    getEnv("KNOWLEDGE_BASE_PATH", "static/files/knowledge_base.txt"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvAsBool("TRACING_ENABLED", false),
			OTLPEndpoint: getEnv("OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
