package exifmeta

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "exifmeta.yml"

type Config struct {
	ExiftoolPath string   `yaml:"exiftool" toml:"exiftool"`
	InitArgs     []string `yaml:"init_args" toml:"init_args"`
	LogPath      string   `yaml:"log_path" toml:"log_path"`
	LogLevel     string   `yaml:"log_level" toml:"log_level"`
	Verbose      bool     `yaml:"verbose" toml:"verbose"`
	Strict       bool     `yaml:"strict" toml:"strict"`
	Defaults     Fields   `yaml:"defaults" toml:"defaults"`

	logFile *os.File
}

// NewConfig reads the config at configPath. YAML is assumed unless the file
// ends in .toml. A missing file yields an empty config unless mustExist is set.
func NewConfig(configPath string, mustExist bool) (*Config, error) {
	config := new(Config)

	f, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return config, nil
		}
		return nil, errors.Wrapf(err, "[Config] Error opening config [%s]", configPath)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".toml":
		_, err = toml.NewDecoder(f).Decode(config)
	default:
		err = yaml.NewDecoder(f).Decode(config)
		if err == io.EOF {
			// empty document
			err = nil
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[Config] Error reading config [%s]", configPath)
	}

	seen := make(Fields, 0, len(config.Defaults))
	for _, field := range config.Defaults {
		if field.Key == "" {
			return nil, errors.Errorf("[Config] Empty key in defaults of [%s]", configPath)
		}
		if _, dup := seen.Get(field.Key); dup {
			return nil, errors.Errorf("[Config] Duplicate key [%s] in defaults of [%s]", field.Key, configPath)
		}
		seen = append(seen, field)
	}
	return config, nil
}

// DefaultFields returns the configured default field set, falling back to the
// built-in one.
func (c *Config) DefaultFields() Fields {
	if len(c.Defaults) == 0 {
		return DefaultFields()
	}
	return c.Defaults.Clone()
}

func (c *Config) Binary() string {
	if c.ExiftoolPath == "" {
		return DefaultBinary
	}
	return c.ExiftoolPath
}

// ConfigureLogging sets up the global logger. Output goes to w unless a log
// path is configured.
func (c *Config) ConfigureLogging(w io.Writer) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(w)

	level := log.WarnLevel
	if c.LogLevel != "" {
		if parsed, err := log.ParseLevel(c.LogLevel); err == nil {
			level = parsed
		} else {
			log.Warnf("invalid log level %s, defaulting to %s", c.LogLevel, level)
		}
	}
	if c.Verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	if c.LogPath != "" {
		if f, err := os.OpenFile(c.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666); err == nil {
			c.logFile = f
			log.SetOutput(f)
		} else {
			log.WithError(err).Warnf("unable to open log path %s, logging to stderr", c.LogPath)
		}
	}
}

// Close releases the log file opened by ConfigureLogging, if any.
func (c *Config) Close() error {
	if c.logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := c.logFile.Close()
	c.logFile = nil
	return err
}
