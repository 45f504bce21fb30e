package utils

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	StoreDriverFirestore = "firestore"
	StoreDriverPostgres  = "postgres"

	AIProviderHuggingFace = "huggingface"
	AIProviderGemini      = "gemini"
)

type Config struct {
	Port string `yaml:"PORT"`

	// Document store
	StoreDriver                  string `yaml:"STORE_DRIVER"`
	GoogleCloudProject           string `yaml:"GOOGLE_CLOUD_PROJECT"`
	GoogleApplicationCredentials string `yaml:"GOOGLE_APPLICATION_CREDENTIALS"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Caller identity for callable endpoints
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`

	// AI providers
	AIAnalysisProvider  string `yaml:"AI_ANALYSIS_PROVIDER"`
	AITimeoutSeconds    string `yaml:"AI_TIMEOUT_SECONDS"`
	HuggingFaceAPIKey   string `yaml:"HUGGING_FACE_API_KEY"`
	HuggingFaceModelURL string `yaml:"HUGGING_FACE_MODEL_URL"`
	OpenAIAPIKey        string `yaml:"OPENAI_API_KEY"`
	OpenAIModel         string `yaml:"OPENAI_MODEL"`
	OpenAIBaseURL       string `yaml:"OPENAI_BASE_URL"`
	GeminiAPIKey        string `yaml:"GEMINI_API_KEY"`
	GeminiModel         string `yaml:"GEMINI_MODEL"`

	// Mailing configuration
	SMTPHost       string `yaml:"SMTP_HOST"`
	SMTPPort       string `yaml:"SMTP_PORT"`
	SMTPUsername   string `yaml:"SMTP_USERNAME"`
	SendGridAPIKey string `yaml:"SENDGRID_API_KEY"`
	MailFromEmail  string `yaml:"MAIL_FROM_EMAIL"`
	MailFromName   string `yaml:"MAIL_FROM_NAME"`

	PublicBaseURL string `yaml:"PUBLIC_BASE_URL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Logging
	LogLevel      string `yaml:"LOG_LEVEL"`
	LogFormat     string `yaml:"LOG_FORMAT"`
	AccessLogPath string `yaml:"ACCESS_LOG_PATH"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:               "8080",
		StoreDriver:        StoreDriverFirestore,
		DBPort:             "5432",
		JWTIssuer:          "BILLORA",
		AIAnalysisProvider: AIProviderHuggingFace,
		AITimeoutSeconds:   "30",
		SMTPHost:           "smtp.sendgrid.net",
		SMTPPort:           "587",
		SMTPUsername:       "apikey",
		MailFromEmail:      "noreply@billora.com",
		MailFromName:       "Billora Invoice System",
		PublicBaseURL:      "https://billora.app",
		LogLevel:           "info",
		LogFormat:          "console",
	}
}

// LoadConfig layers config.yaml, .env and the process environment over the
// defaults, in that order. A missing config.yaml is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	_ = godotenv.Load()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv overrides every field whose yaml key is set in the environment.
func (c *Config) applyEnv() {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("yaml")
		if value, ok := os.LookupEnv(key); ok && value != "" {
			v.Field(i).SetString(value)
		}
	}
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverFirestore, StoreDriverPostgres:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverFirestore, StoreDriverPostgres, c.StoreDriver)
	}

	switch c.AIAnalysisProvider {
	case AIProviderHuggingFace, AIProviderGemini:
	default:
		return fmt.Errorf("AI_ANALYSIS_PROVIDER must be %q or %q, got %q", AIProviderHuggingFace, AIProviderGemini, c.AIAnalysisProvider)
	}

	if _, err := strconv.Atoi(c.SMTPPort); err != nil {
		return fmt.Errorf("SMTP_PORT: %w", err)
	}
	if seconds, err := strconv.Atoi(c.AITimeoutSeconds); err != nil || seconds <= 0 {
		return fmt.Errorf("AI_TIMEOUT_SECONDS must be a positive integer, got %q", c.AITimeoutSeconds)
	}
	return nil
}

func (c *Config) AITimeout() time.Duration {
	seconds, _ := strconv.Atoi(c.AITimeoutSeconds)
	return time.Duration(seconds) * time.Second
}

func (c *Config) SMTPPortNumber() int {
	port, _ := strconv.Atoi(c.SMTPPort)
	return port
}
