package configs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Configs holds application configuration
type Configs struct {
	ListenAddr string        `yaml:"listen_addr"`
	ServerName string        `yaml:"server_name"`
	LogLevel   string        `yaml:"log_level"`
	Router     RouterConfigs `yaml:"router"`
}

// RouterConfigs holds the router policy flags. Pointers distinguish an
// omitted key (keep the default, which is true) from an explicit false.
type RouterConfigs struct {
	RedirectTrailingSlash  *bool `yaml:"redirect_trailing_slash"`
	RedirectFixedPath      *bool `yaml:"redirect_fixed_path"`
	HandleMethodNotAllowed *bool `yaml:"handle_method_not_allowed"`
	HandleOPTIONS          *bool `yaml:"handle_options"`
}

const (
	DefaultConfigFile = "configs/config.yaml"
	DefaultListenAddr = ":8080"
	DefaultLogLevel   = "info"
)

var (
	configs *Configs
)

// LoadConfigs loads the configuration once
func LoadConfigs() {
	// Get the current working directory
	workingDir, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	configPath := filepath.Join(workingDir, DefaultConfigFile)

	loaded, err := LoadConfigsFrom(configPath)
	if err != nil {
		log.Fatalf("failed to load configs: %v", err)
	}

	configs = loaded
}

// LoadConfigsFrom reads and validates the configuration at the given path.
func LoadConfigsFrom(path string) (*Configs, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	c := &Configs{}
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(c); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	return c, nil
}

// GetConfigs returns the loaded configuration
func GetConfigs() *Configs {
	if configs == nil {
		LoadConfigs()
	}
	return configs
}

// FlagOrDefault resolves an optional router flag, all of which default to
// true when left out of the config file.
func FlagOrDefault(flag *bool) bool {
	if flag == nil {
		return true
	}
	return *flag
}
