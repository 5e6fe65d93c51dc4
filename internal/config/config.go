package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables consumed by the database client
const (
	EnvPassword = "DB_READER_PASSWORD"
	EnvPort     = "DB_PORT"
	EnvName     = "DB_DEFAULT_NAME"
	EnvProfile  = "AWS_PROFILE"
	EnvURL      = "POSTGRES_URL"
	EnvLogLevel = "LOG_LEVEL"
)

// Built-in defaults
const (
	DefaultPort    = "5432"
	DefaultName    = "production_DB_v2"
	DefaultUser    = "jadereader"
	DefaultProfile = "default"
)

// Settings holds the database connection settings resolved from env files
// and the process environment. Build it once at program entry and pass it
// to the constructors that need it.
type Settings struct {
	Password string
	Port     string
	Name     string
	User     string
	Profile  string
	// URL is a full connection URL taken from POSTGRES_URL, if set
	URL      string
	LogLevel string

	// LoadedEnv reports whether env files and variables have been applied
	LoadedEnv bool
}

// Default returns the built-in settings without consulting the environment
func Default() *Settings {
	return &Settings{
		Port:     DefaultPort,
		Name:     DefaultName,
		User:     DefaultUser,
		Profile:  DefaultProfile,
		LogLevel: "info",
	}
}

// EnvFiles returns the env file candidates in load order. The repo-local
// file is only included when repoRoot is non-empty.
func EnvFiles(repoRoot string) []string {
	var paths []string
	if repoRoot != "" {
		paths = append(paths, filepath.Join(repoRoot, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths,
			filepath.Join(home, ".JADE.env"),
			filepath.Join(home, ".env"),
		)
	}
	return paths
}

// Load applies every existing env file and then reads the settings from the
// environment. Variables that are already set are never overridden, so the
// ambient environment wins over the first file, which wins over later files.
func Load(repoRoot string) (*Settings, error) {
	for _, path := range EnvFiles(repoRoot) {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat env file %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}

	s := Default()
	s.apply()
	return s, nil
}

// apply overlays environment variables onto s
func (s *Settings) apply() {
	s.Password = os.Getenv(EnvPassword)
	s.Name = getEnv(EnvName, s.Name)
	if port, ok := os.LookupEnv(EnvPort); ok {
		s.Port = port
	}
	if profile, ok := os.LookupEnv(EnvProfile); ok {
		s.Profile = profile
	}
	s.URL = os.Getenv(EnvURL)
	s.LogLevel = getEnv(EnvLogLevel, s.LogLevel)
	s.LoadedEnv = true
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
