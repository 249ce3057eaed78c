package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Mongo   MongoConfig   `yaml:"mongo"`
	LLM     LLMConfig     `yaml:"llm"`
	Auth    AuthConfig    `yaml:"auth"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	// Addr is the listen address of the API server, e.g. ":8080".
	Addr string `yaml:"addr"`

	// AllowedOrigins lists the SPA origins permitted by CORS.
	// Empty means allow all origins (development default).
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type MongoConfig struct {
	URI    string `yaml:"uri"`
	DBName string `yaml:"db_name"`
}

// LLMConfig selects and configures the inference collaborator.
type LLMConfig struct {
	// Provider is "google" or "openai".
	Provider string `yaml:"provider"`

	// ModelName is the model identifier passed to the provider,
	// e.g. "gemini-flash-lite-latest" or "gpt-4o-mini".
	ModelName string `yaml:"model_name"`

	// BaseURL overrides the OpenAI-compatible endpoint. Ignored for google.
	BaseURL string `yaml:"base_url"`
}

type AuthConfig struct {
	// Issuer is the iss claim expected on access tokens.
	Issuer string `yaml:"issuer"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
