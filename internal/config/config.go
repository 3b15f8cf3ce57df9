package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Session SessionConfig `mapstructure:"session"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	OIDC    OIDCConfig    `mapstructure:"oidc"`
	Media   MediaConfig   `mapstructure:"media"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port    string    `mapstructure:"port"`
	BaseURL string    `mapstructure:"base_url"`
	TLS     TLSConfig `mapstructure:"tls"`
}

// TLSConfig holds TLS-specific configuration.
type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// DBConfig holds database-specific configuration.
type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

// CacheConfig holds the SQLite cache configuration.
type CacheConfig struct {
	FilePath string `mapstructure:"file_path"`
}

// SessionConfig holds session cookie configuration. Sessions live server-side
// in the database, so there is no signing key to configure.
type SessionConfig struct {
	Lifetime int `mapstructure:"lifetime"` // hours
}

// SMTPConfig holds the outbound mail configuration. Leaving Host empty
// disables all outbound email (welcome and notification messages).
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Sender   string `mapstructure:"sender"`
	ReplyTo  string `mapstructure:"reply_to"`
}

// OIDCConfig holds OIDC client configuration. Leaving IssuerURL empty
// disables the OIDC sign-in routes; password sign-in always works.
type OIDCConfig struct {
	IssuerURL    string `mapstructure:"issuer_url"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// MediaConfig holds the uploaded-file store configuration.
type MediaConfig struct {
	Dir        string `mapstructure:"dir"`
	PublicPath string `mapstructure:"public_path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("db.dsn", "unstablenet:unstablenet@tcp(localhost:3306)/unstablenet?parseTime=true")
	viper.SetDefault("cache.file_path", "cache.db")
	viper.SetDefault("session.lifetime", 24)
	viper.SetDefault("media.dir", "media")
	viper.SetDefault("media.public_path", "/media")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	// Set up viper to read from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/unstablenet/")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	viper.SetEnvPrefix("UNSTABLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal the config into the Config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
