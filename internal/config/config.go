// Package config собирает настройки клиента из флагов, переменных окружения и TOML файла.
//
// Приоритет (от высшего к низшему):
//  1. флаги командной строки
//  2. переменные окружения HOMEBLOCKS_*
//  3. TOML файл (--config или HOMEBLOCKS_CONFIG)
//  4. значения по умолчанию
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Переменные окружения
const (
	EnvConfig    = "HOMEBLOCKS_CONFIG"
	EnvServer    = "HOMEBLOCKS_SERVER"
	EnvToken     = "HOMEBLOCKS_TOKEN"
	EnvDB        = "HOMEBLOCKS_DB"
	EnvLogFile   = "HOMEBLOCKS_LOG_FILE"
	EnvLogLevel  = "HOMEBLOCKS_LOG_LEVEL"
	EnvPageSize  = "HOMEBLOCKS_PAGE_SIZE"
	EnvRetries   = "HOMEBLOCKS_RETRIES"
	EnvTimeout   = "HOMEBLOCKS_TIMEOUT"
	DefaultFile  = "config.toml"
	defaultDir   = ".homeblocks"
	maxPageSize  = 100
	defaultRetry = 3
)

// ErrInvalidConfig is returned when a setting cannot be parsed or is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Config настройки клиента
type Config struct {
	ServerURL   string
	Token       string
	TokenFile   string
	DBPath      string
	LogFile     string
	LogLevel    string
	ConfigPath  string
	Timeout     time.Duration
	PageSize    int
	Retries     int
	ShowVersion bool
}

// fileConfig структура TOML файла
type fileConfig struct {
	Server   string `toml:"server"`
	Token    string `toml:"token"`
	DB       string `toml:"db"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
	Timeout  string `toml:"timeout"`
	PageSize int    `toml:"page_size"`
	Retries  int    `toml:"retries"`
}

// Defaults возвращает настройки по умолчанию
func Defaults() Config {
	return Config{
		ServerURL: "http://localhost:8080",
		DBPath:    filepath.Join(homeDir(), "client.db"),
		LogLevel:  "info",
		Timeout:   30 * time.Second,
		PageSize:  maxPageSize,
		Retries:   defaultRetry,
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return defaultDir
	}
	return filepath.Join(home, defaultDir)
}

// Parse разбирает глобальные флаги args и применяет приоритеты.
// Возвращает настройки и оставшиеся аргументы (команду и её аргументы).
// getenv обычно os.Getenv.
func Parse(args []string, getenv func(string) string, usage func()) (*Config, []string, error) {
	fs := flag.NewFlagSet("homeblocks", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if usage != nil {
		fs.Usage = usage
	}

	var flags Config
	var timeout string
	fs.BoolVar(&flags.ShowVersion, "version", false, "Show version information")
	fs.StringVar(&flags.ConfigPath, "config", "", "Path to TOML config file")
	fs.StringVar(&flags.ServerURL, "server", "", "Document store URL")
	fs.StringVar(&flags.Token, "token", "", "Integration token (not recommended, use env var or file)")
	fs.StringVar(&flags.TokenFile, "token-file", "", "Path to file containing integration token")
	fs.StringVar(&flags.DBPath, "db", "", "Path to local database")
	fs.StringVar(&flags.LogFile, "log-file", "", "Write logs to a rotating file")
	fs.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&timeout, "timeout", "", "HTTP request timeout")
	fs.IntVar(&flags.PageSize, "page-size", 0, "Page size for reading children (1-100)")
	fs.IntVar(&flags.Retries, "retries", -1, "Retries for rate limited requests")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg := Defaults()

	// Priority 3: TOML file
	path := flags.ConfigPath
	if path == "" {
		path = getenv(EnvConfig)
	}
	explicit := path != ""
	if path == "" {
		path = filepath.Join(homeDir(), DefaultFile)
	}
	if err := cfg.applyFile(path, explicit); err != nil {
		return nil, nil, err
	}

	// Priority 2: environment
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, nil, err
	}

	// Priority 1: flags set explicitly
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "version":
			cfg.ShowVersion = flags.ShowVersion
		case "config":
			cfg.ConfigPath = flags.ConfigPath
		case "server":
			cfg.ServerURL = flags.ServerURL
		case "token":
			cfg.Token = flags.Token
		case "token-file":
			cfg.TokenFile = flags.TokenFile
		case "db":
			cfg.DBPath = flags.DBPath
		case "log-file":
			cfg.LogFile = flags.LogFile
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "page-size":
			cfg.PageSize = flags.PageSize
		case "retries":
			cfg.Retries = flags.Retries
		case "timeout":
			d, err := time.ParseDuration(timeout)
			if err != nil {
				flagErr = fmt.Errorf("%w: --timeout: %v", ErrInvalidConfig, err)
				return
			}
			cfg.Timeout = d
		}
	})
	if flagErr != nil {
		return nil, nil, flagErr
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, fs.Args(), nil
}

// applyFile накладывает значения из TOML файла.
// Отсутствие файла по умолчанию не ошибка; отсутствие явно указанного файла - ошибка.
func (c *Config) applyFile(path string, explicit bool) error {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	c.ConfigPath = path

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}

	if md.IsDefined("server") {
		c.ServerURL = fc.Server
	}
	if md.IsDefined("token") {
		c.Token = fc.Token
	}
	if md.IsDefined("db") {
		c.DBPath = fc.DB
	}
	if md.IsDefined("log_file") {
		c.LogFile = fc.LogFile
	}
	if md.IsDefined("log_level") {
		c.LogLevel = fc.LogLevel
	}
	if md.IsDefined("page_size") {
		c.PageSize = fc.PageSize
	}
	if md.IsDefined("retries") {
		c.Retries = fc.Retries
	}
	if md.IsDefined("timeout") {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout in %s: %v", ErrInvalidConfig, path, err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setString(EnvServer, &c.ServerURL)
	setString(EnvToken, &c.Token)
	setString(EnvDB, &c.DBPath)
	setString(EnvLogFile, &c.LogFile)
	setString(EnvLogLevel, &c.LogLevel)

	for key, dst := range map[string]*int{EnvPageSize: &c.PageSize, EnvRetries: &c.Retries} {
		v := getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
		*dst = n
	}

	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate проверяет диапазоны значений
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("%w: server URL is empty", ErrInvalidConfig)
	}
	if c.PageSize < 1 || c.PageSize > maxPageSize {
		return fmt.Errorf("%w: page size must be between 1 and %d", ErrInvalidConfig, maxPageSize)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must not be negative", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel разбирает LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}
