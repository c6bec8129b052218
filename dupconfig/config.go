// Package dupconfig holds the finddupes settings.
//
// Settings come from three layers: built-in defaults, an optional YAML file,
// and command-line flags that were set explicitly.
package dupconfig

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	"gitlab.com/slon/finddupes/pairinput"
	"gitlab.com/slon/finddupes/symtable"
)

// Config представляет настройки finddupes
type Config struct {
	Order        string `yaml:"order"`
	MaxLineBytes int    `yaml:"max_line_bytes"`
	Log          Log    `yaml:"log"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	flagConfig       = "config"
	flagOrder        = "order"
	flagMaxLineBytes = "max-line-bytes"
	flagLogLevel     = "log-level"
	flagLogFormat    = "log-format"
)

func Default() Config {
	return Config{
		Order:        symtable.OrderFirstSeen.String(),
		MaxLineBytes: pairinput.DefaultMaxLineBytes,
		Log: Log{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads a YAML file on top of Default. Fields missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	// Пустой файл означает настройки по умолчанию
	if len(data) == 0 {
		return config, nil
	}

	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return config, nil
}

// Validate checks that every field holds a value the rest of the program accepts.
func (c Config) Validate() error {
	if _, err := c.SortOrder(); err != nil {
		return err
	}
	if c.MaxLineBytes <= 0 {
		return fmt.Errorf("max_line_bytes must be positive, got %d", c.MaxLineBytes)
	}
	if _, err := c.Log.ZapLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q, want console or json", c.Log.Format)
	}
	return nil
}

func (c Config) SortOrder() (symtable.Order, error) {
	return symtable.ParseOrder(c.Order)
}

func (l Log) ZapLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// BindFlags registers the finddupes flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringP(flagConfig, "c", "", "path to a YAML config file")
	fs.String(flagOrder, d.Order, "report key order: first-seen or sorted")
	fs.Int(flagMaxLineBytes, d.MaxLineBytes, "longest accepted input line in bytes; a longer line aborts the run")
	fs.String(flagLogLevel, d.Log.Level, "log level: debug, info, warn or error")
	fs.String(flagLogFormat, d.Log.Format, "log format: console or json")
}

// FromFlags builds the config from the file named by --config, if any, and
// then applies every flag the user set explicitly.
func FromFlags(fs *pflag.FlagSet) (Config, error) {
	config := Default()

	path, err := fs.GetString(flagConfig)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		if config, err = Load(path); err != nil {
			return Config{}, err
		}
	}

	var flagErr error
	fs.Visit(func(f *pflag.Flag) {
		if flagErr != nil {
			return
		}
		switch f.Name {
		case flagOrder:
			config.Order, flagErr = fs.GetString(flagOrder)
		case flagMaxLineBytes:
			config.MaxLineBytes, flagErr = fs.GetInt(flagMaxLineBytes)
		case flagLogLevel:
			config.Log.Level, flagErr = fs.GetString(flagLogLevel)
		case flagLogFormat:
			config.Log.Format, flagErr = fs.GetString(flagLogFormat)
		}
	})
	if flagErr != nil {
		return Config{}, flagErr
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
