// Package config provides types for handling configuration parameters.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	defaultServerAddress  = ":8080"
	defaultBackendURL     = "http://localhost:8081"
	defaultBackendTimeout = 5 * time.Second
	defaultPageLimit      = 20
	maxPageLimit          = 100
	dotEnvFile            = ".env"
)

// Config handles server-related constants and parameters.
type Config struct {
	ServerAddress     string        `env:"SERVER_ADDRESS" json:"server_address" yaml:"server_address"`
	BaseURL           string        `env:"BASE_URL" json:"base_url" yaml:"base_url"`
	BackendURL        string        `env:"BACKEND_URL" json:"backend_url" yaml:"backend_url"`
	BackendToken      string        `env:"BACKEND_TOKEN" json:"backend_token" yaml:"backend_token"`
	BackendTimeout    time.Duration `env:"BACKEND_TIMEOUT" json:"-" yaml:"backend_timeout"`
	PageLimit         int           `env:"PAGE_LIMIT" json:"page_limit" yaml:"page_limit"`
	FileStoragePath   string        `env:"FILE_STORAGE_PATH" json:"file_storage_path" yaml:"file_storage_path"`
	DatabaseDSN       string        `env:"DATABASE_DSN" json:"database_dsn" yaml:"database_dsn"`
	SessionKey        string        `env:"SESSION_KEY" json:"session_key" yaml:"session_key"`
	AdminUser         string        `env:"ADMIN_USER" json:"admin_user" yaml:"admin_user"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH" json:"admin_password_hash" yaml:"admin_password_hash"`
	TrustedSubnet     string        `env:"TRUSTED_SUBNET" json:"trusted_subnet" yaml:"trusted_subnet"`
	LogLevel          string        `env:"LOG_LEVEL" json:"log_level" yaml:"log_level"`
}

// NewDefaultConfiguration sets up a configuration holding default values only.
func NewDefaultConfiguration() *Config {
	return &Config{
		ServerAddress:  defaultServerAddress,
		BackendURL:     defaultBackendURL,
		BackendTimeout: defaultBackendTimeout,
		PageLimit:      defaultPageLimit,
		AdminUser:      "admin",
		LogLevel:       "info",
	}
}

// Parse fills the configuration in order of increasing priority: defaults, config file, .env file and
// environment variables, command line arguments.
func (c *Config) Parse(args []string) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &LoadError{Source: dotEnvFile, Err: err}
	}
	fset := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	flags := c.defineFlags(fset)
	if err := fset.Parse(args); err != nil {
		return err
	}
	path := flags.config
	if path == "" {
		path = os.Getenv("CONFIG")
	}
	if err := c.read(path); err != nil {
		return err
	}
	fset.Visit(func(f *flag.Flag) {
		flags.assign(c, f.Name)
	})
	return c.Validate()
}

func (c *Config) read(path string) error {
	if path == "" {
		if err := cleanenv.ReadEnv(c); err != nil {
			return &LoadError{Source: "environment", Err: err}
		}
		return nil
	}
	if err := cleanenv.ReadConfig(path, c); err != nil {
		return &LoadError{Source: path, Err: err}
	}
	return nil
}

// Validate checks parameter consistency and normalizes values.
func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return &InvalidParameterError{Name: "SERVER_ADDRESS", Msg: "must not be empty"}
	}
	u, err := url.ParseRequestURI(c.BackendURL)
	if err != nil || u.Host == "" {
		return &InvalidParameterError{Name: "BACKEND_URL", Msg: fmt.Sprintf("%q is not an absolute URL", c.BackendURL)}
	}
	if c.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
			return &InvalidParameterError{Name: "BASE_URL", Msg: err.Error()}
		}
	}
	if c.TrustedSubnet != "" {
		if _, _, err := net.ParseCIDR(c.TrustedSubnet); err != nil {
			return &InvalidParameterError{Name: "TRUSTED_SUBNET", Msg: err.Error()}
		}
	}
	if c.BackendTimeout <= 0 {
		c.BackendTimeout = defaultBackendTimeout
	}
	switch {
	case c.PageLimit <= 0:
		c.PageLimit = defaultPageLimit
	case c.PageLimit > maxPageLimit:
		c.PageLimit = maxPageLimit
	}
	return nil
}

type flagValues struct {
	config        string
	serverAddress string
	baseURL       string
	backendURL    string
	pageLimit     int
	fileStorage   string
	databaseDSN   string
	trustedSubnet string
}

func (c *Config) defineFlags(fset *flag.FlagSet) *flagValues {
	v := &flagValues{}
	fset.StringVar(&v.config, "c", "", "Configuration file path (yaml or json)")
	fset.StringVar(&v.serverAddress, "a", c.ServerAddress, "Server address")
	fset.StringVar(&v.baseURL, "b", c.BaseURL, "Base url of short links")
	fset.StringVar(&v.backendURL, "u", c.BackendURL, "Backend API url")
	fset.IntVar(&v.pageLimit, "l", c.PageLimit, "Links per page")
	fset.StringVar(&v.fileStorage, "f", c.FileStoragePath, "Audit journal file path")
	fset.StringVar(&v.databaseDSN, "d", c.DatabaseDSN, "Audit journal database DSN")
	fset.StringVar(&v.trustedSubnet, "t", c.TrustedSubnet, "Trusted subnet in CIDR notation")
	return v
}

func (v *flagValues) assign(c *Config, name string) {
	switch name {
	case "a":
		c.ServerAddress = v.serverAddress
	case "b":
		c.BaseURL = v.baseURL
	case "u":
		c.BackendURL = v.backendURL
	case "l":
		c.PageLimit = v.pageLimit
	case "f":
		c.FileStoragePath = v.fileStorage
	case "d":
		c.DatabaseDSN = v.databaseDSN
	case "t":
		c.TrustedSubnet = v.trustedSubnet
	}
}
