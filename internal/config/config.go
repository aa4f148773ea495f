// Package config reads the optional pgcsv.yaml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vvka-141/pgcsv/pkg/pgcsv"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	SSLCert        string `yaml:"sslcert,omitempty"`
	SSLKey         string `yaml:"sslkey,omitempty"`
	SSLRootCert    string `yaml:"sslrootcert,omitempty"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// ImportSection holds the pipeline options. Pointer fields distinguish
// "not set" from an explicit false.
type ImportSection struct {
	Source           string   `yaml:"source"`
	Separator        string   `yaml:"separator"`
	BatchSize        int      `yaml:"batch_size"`
	Table            string   `yaml:"table"`
	StrictTyping     *bool    `yaml:"strict_typing"`
	StrictRows       *bool    `yaml:"strict_rows"`
	TimestampColumns []string `yaml:"timestamp_columns"`
	TimestampLayout  string   `yaml:"timestamp_layout"`
	ConfirmReplace   *bool    `yaml:"confirm_replace"`
}

type ProjectConfig struct {
	ConnectionString string           `yaml:"connection_string"`
	Connection       ConnectionConfig `yaml:"connection"`
	Import           ImportSection    `yaml:"import"`
	Timeout          string           `yaml:"timeout"`
	ConnectRetries   *int             `yaml:"connect_retries"`
}

const ConfigFileName = "pgcsv.yaml"

// Load reads ConfigFileName from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the config file at path. Unknown keys are rejected.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w: %w", path, pgcsv.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// TimeoutDuration parses Timeout. An empty value means no timeout.
func (c *ProjectConfig) TimeoutDuration() (time.Duration, error) {
	if c == nil || c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, pgcsv.ErrInvalidConfig)
	}
	return d, nil
}

// ParseSeparator converts a separator setting to a rune.
// "tab" and the escape "\t" are accepted for the tab character.
func ParseSeparator(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q: %w", s, pgcsv.ErrInvalidConfig)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
