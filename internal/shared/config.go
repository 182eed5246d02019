package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file
// and overlaid with environment variables.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Groups      GroupsConfig      `toml:"groups"`
	Server      ServerConfig      `toml:"server"`
	API         APIConfig         `toml:"api"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Raindrop RaindropConfig `toml:"raindrop"`
}

// RaindropConfig contains the Raindrop.io OAuth application credentials.
type RaindropConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// GroupsConfig names the Raindrop collection groups surfaced on the page.
//
// Display is required by the bookmark endpoint; Autocomplete is optional.
type GroupsConfig struct {
	Display      string `toml:"display"`
	Autocomplete string `toml:"autocomplete"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// APIConfig contains the upstream Raindrop.io endpoints and the request
// rate cap applied to API calls.
type APIConfig struct {
	BaseURL   string  `toml:"base_url"`
	AuthURL   string  `toml:"auth_url"`
	TokenURL  string  `toml:"token_url"`
	RateLimit float64 `toml:"rate_limit"`
}

// envOverrides is the flat environment-variable surface. Any value set here
// takes precedence over the TOML file.
type envOverrides struct {
	ClientID              string `envconfig:"CLIENT_ID"`
	ClientSecret          string `envconfig:"CLIENT_SECRET"`
	RedirectURI           string `envconfig:"REDIRECT_URI"`
	GroupName             string `envconfig:"GROUP_NAME"`
	AutocompleteGroupName string `envconfig:"AUTOCOMPLETE_GROUP_NAME"`
	Host                  string `envconfig:"HOST"`
	Port                  int    `envconfig:"PORT"`
}

// LoadConfig reads and parses a TOML configuration file from the specified
// path, then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overlays environment variables onto the configuration. Unset
// variables leave the existing values untouched.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if env.ClientID != "" {
		c.Credentials.Raindrop.ClientID = env.ClientID
	}
	if env.ClientSecret != "" {
		c.Credentials.Raindrop.ClientSecret = env.ClientSecret
	}
	if env.RedirectURI != "" {
		c.Credentials.Raindrop.RedirectURI = env.RedirectURI
	}
	if env.GroupName != "" {
		c.Groups.Display = env.GroupName
	}
	if env.AutocompleteGroupName != "" {
		c.Groups.Autocomplete = env.AutocompleteGroupName
	}
	if env.Host != "" {
		c.Server.Host = env.Host
	}
	if env.Port != 0 {
		c.Server.Port = env.Port
	}

	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidConfig)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
