package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// publisher config. Values come from built-in defaults, then the optional
// YAML file, then the environment; command-line flags are applied last by
// the caller.
type Config struct {
	CredentialsFile      string `yaml:"credentials_file"`
	ProjectID            string `yaml:"project_id"`
	Bucket               string `yaml:"bucket"`
	QuestionsFile        string `yaml:"questions_file"`
	ImageDir             string `yaml:"image_dir"`
	Collection           string `yaml:"collection"`
	ContentSubcollection string `yaml:"content_subcollection"`
	ImagePrefix          string `yaml:"image_prefix"`
	PushgatewayURL       string `yaml:"pushgateway_url"`
	LogDevelopment       bool   `yaml:"log_development"`
	DryRun               bool   `yaml:"dry_run"`
	PruneStaleParts      bool   `yaml:"prune_stale_parts"`
}

// Default returns the settings the question bank has always been
// published with.
func Default() *Config {
	return &Config{
		CredentialsFile:      "firebase-credentials.json",
		Bucket:               "certchamps-a7527.firebasestorage.app",
		QuestionsFile:        "questions.json",
		ImageDir:             "./images",
		Collection:           "certchamps-questions",
		ContentSubcollection: "content",
		ImagePrefix:          "images",
	}
}

// loads configuration from the optional YAML file at path and the environment
func LoadConfig(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	config.CredentialsFile = getEnvOrDefault("FIREBASE_CREDENTIALS", config.CredentialsFile)
	config.ProjectID = getEnvOrDefault("FIREBASE_PROJECT_ID", config.ProjectID)
	config.Bucket = getEnvOrDefault("FIREBASE_STORAGE_BUCKET", config.Bucket)
	config.QuestionsFile = getEnvOrDefault("QUESTIONS_FILE", config.QuestionsFile)
	config.ImageDir = getEnvOrDefault("IMAGE_DIR", config.ImageDir)
	config.Collection = getEnvOrDefault("QUESTIONS_COLLECTION", config.Collection)
	config.ContentSubcollection = getEnvOrDefault("CONTENT_SUBCOLLECTION", config.ContentSubcollection)
	config.ImagePrefix = getEnvOrDefault("IMAGE_PREFIX", config.ImagePrefix)
	config.PushgatewayURL = getEnvOrDefault("PUSHGATEWAY_URL", config.PushgatewayURL)
	config.LogDevelopment = getEnvBool("LOG_DEVELOPMENT", config.LogDevelopment)

	return config, nil
}

// Validate reports settings the publisher cannot run with.
func (c *Config) Validate() error {
	if c.Collection == "" {
		return errors.New("collection name is required")
	}
	if c.ContentSubcollection == "" {
		return errors.New("content subcollection name is required")
	}
	if c.QuestionsFile == "" {
		return errors.New("questions file is required")
	}
	if c.DryRun {
		return nil
	}
	if c.Bucket == "" {
		return errors.New("storage bucket is required")
	}
	if c.CredentialsFile == "" {
		return errors.New("credentials file is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
