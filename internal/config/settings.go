package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultSettingsFile = "ghtree.toml"
	DefaultConnection   = "app"
	DefaultBaseURL      = "https://api.github.com"
	DefaultTimeout      = 30 * time.Second
)

// Settings represents the ghtree.toml file. Each connection names a set of
// credentials and an API endpoint.
type Settings struct {
	DefaultConnection string                `toml:"default_connection,omitempty"`
	Connections       map[string]Connection `toml:"connections,omitempty"`
}

// Connection describes how to reach and authenticate against one API host.
type Connection struct {
	// TokenEnv names the environment variable holding the access token.
	TokenEnv  string   `toml:"token_env,omitempty"`
	BaseURL   string   `toml:"base_url,omitempty"`
	Timeout   Duration `toml:"timeout,omitempty"`
	Anonymous bool     `toml:"anonymous,omitempty"`
}

// Duration is a time.Duration written as "30s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// NewSettings returns settings holding only the default connection.
func NewSettings() *Settings {
	return &Settings{
		DefaultConnection: DefaultConnection,
		Connections: map[string]Connection{
			DefaultConnection: {},
		},
	}
}

// LoadSettings reads and parses a ghtree.toml file from the given path.
// If the file does not exist it returns the defaults (no error).
func LoadSettings(path string) (*Settings, error) {
	s := NewSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}

	if s.DefaultConnection == "" {
		s.DefaultConnection = DefaultConnection
	}
	if s.Connections == nil {
		s.Connections = make(map[string]Connection)
	}
	if _, ok := s.Connections[s.DefaultConnection]; !ok {
		s.Connections[s.DefaultConnection] = Connection{}
	}

	return s, nil
}

// Save writes the settings back to the given path.
func (s *Settings) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	return nil
}

// Connection returns the named connection with defaults filled in.
// An empty name selects the default connection.
func (s *Settings) Connection(name string) (Connection, error) {
	if name == "" {
		name = s.DefaultConnection
	}
	c, ok := s.Connections[name]
	if !ok {
		return Connection{}, fmt.Errorf("unknown connection %q (known: %v)", name, s.ConnectionNames())
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout.Duration == 0 {
		c.Timeout.Duration = DefaultTimeout
	}
	return c, nil
}

// ConnectionNames returns the configured connection names in sorted order.
func (s *Settings) ConnectionNames() []string {
	names := make([]string, 0, len(s.Connections))
	for name := range s.Connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
