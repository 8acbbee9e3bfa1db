package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"alfredoptarigan/resume-screener/internal/services"
)

// Viper keys. AutomaticEnv maps each one to its upper-case environment variable.
const (
	KeyPort               = "port"
	KeyEnv                = "env"
	KeyCORSAllowOrigins   = "cors_allow_origins"
	KeyEmbeddingProvider  = "embedding_provider"
	KeyEmbeddingModel     = "embedding_model"
	KeyGeminiAPIKey       = "gemini_api_key"
	KeyOpenAIAPIKey       = "openai_api_key"
	KeyEmbeddingDimension = "embedding_dimensions"
	KeyUploadPath         = "upload_path"
	KeyMaxFileSize        = "max_file_size"
	KeyMaxRequestSize     = "max_request_size"
	KeyLogJSON            = "log_json"
	KeyLogDebug           = "log_debug"
)

type Config struct {
	Server    ServerConfig
	Embedding EmbeddingConfig
	Storage   StorageConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	AllowOrigins string
}

type EmbeddingConfig struct {
	Provider     string
	Model        string
	GeminiAPIKey string
	OpenAIAPIKey string
	Dimensions   int
}

type StorageConfig struct {
	UploadPath     string
	MaxFileSize    int64
	MaxRequestSize int64
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

// Load reads .env (when present) and the environment into the global viper instance.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	return FromViper(viper.GetViper())
}

// FromViper fills a Config from v, applying defaults for anything unset.
func FromViper(v *viper.Viper) *Config {
	SetDefaults(v)
	v.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port:         v.GetString(KeyPort),
			Env:          v.GetString(KeyEnv),
			AllowOrigins: v.GetString(KeyCORSAllowOrigins),
		},
		Embedding: EmbeddingConfig{
			Provider:     strings.ToLower(strings.TrimSpace(v.GetString(KeyEmbeddingProvider))),
			Model:        strings.TrimSpace(v.GetString(KeyEmbeddingModel)),
			GeminiAPIKey: v.GetString(KeyGeminiAPIKey),
			OpenAIAPIKey: v.GetString(KeyOpenAIAPIKey),
			Dimensions:   v.GetInt(KeyEmbeddingDimension),
		},
		Storage: StorageConfig{
			UploadPath:     v.GetString(KeyUploadPath),
			MaxFileSize:    v.GetInt64(KeyMaxFileSize),
			MaxRequestSize: v.GetInt64(KeyMaxRequestSize),
		},
		Log: LogConfig{
			JSON:  v.GetBool(KeyLogJSON),
			Debug: v.GetBool(KeyLogDebug),
		},
	}
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, "3000")
	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyCORSAllowOrigins, "*")
	v.SetDefault(KeyEmbeddingProvider, services.ProviderGemini)
	v.SetDefault(KeyEmbeddingModel, "")
	v.SetDefault(KeyGeminiAPIKey, "")
	v.SetDefault(KeyOpenAIAPIKey, "")
	v.SetDefault(KeyEmbeddingDimension, 384)
	v.SetDefault(KeyUploadPath, "./uploads")
	v.SetDefault(KeyMaxFileSize, 10<<20)
	v.SetDefault(KeyMaxRequestSize, 50<<20)
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyLogDebug, false)
}

func (c *Config) EmbedderConfig() services.EmbedderConfig {
	return services.EmbedderConfig{
		Provider:     c.Embedding.Provider,
		Model:        c.Embedding.Model,
		GeminiAPIKey: c.Embedding.GeminiAPIKey,
		OpenAIAPIKey: c.Embedding.OpenAIAPIKey,
		Dimensions:   c.Embedding.Dimensions,
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
