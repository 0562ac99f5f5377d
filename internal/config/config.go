package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/yuzeguitarist/loveqr/internal/app"
	"github.com/yuzeguitarist/loveqr/internal/heart"
	"github.com/yuzeguitarist/loveqr/internal/qr"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Listen      string       `yaml:"listen" mapstructure:"listen"`
	DefaultText string       `yaml:"default_text" mapstructure:"default_text"`
	DefaultSize int          `yaml:"default_size" mapstructure:"default_size"`
	MaxSize     int          `yaml:"max_size" mapstructure:"max_size"` // 0 disables the limit
	QR          QRConfig     `yaml:"qr" mapstructure:"qr"`
	Log         LogConfig    `yaml:"log" mapstructure:"log"`
	Layout      LayoutConfig `yaml:"layout" mapstructure:"layout"`
}

type QRConfig struct {
	Level   string `yaml:"level" mapstructure:"level"`     // L, M, Q or H
	Encoder string `yaml:"encoder" mapstructure:"encoder"` // skip2 or rsc
	Dark    string `yaml:"dark" mapstructure:"dark"`
	Light   string `yaml:"light" mapstructure:"light"`
}

type LogConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
}

type LayoutConfig struct {
	Slices       heart.Slices `yaml:"slices" mapstructure:"slices"`
	Background   string       `yaml:"background" mapstructure:"background"`
	Accent       string       `yaml:"accent" mapstructure:"accent"`
	Disc         string       `yaml:"disc" mapstructure:"disc"`
	StrokeWidth  float64      `yaml:"stroke_width" mapstructure:"stroke_width"`
	EscapeOffset float64      `yaml:"escape_offset" mapstructure:"escape_offset"`
}

func Default() *Config {
	l := heart.DefaultLayout
	return &Config{
		Listen:      app.DefaultListen,
		DefaultText: app.DefaultText,
		DefaultSize: app.DefaultSize,
		MaxSize:     4096,
		QR: QRConfig{
			Level:   "M",
			Encoder: "skip2",
			Dark:    qr.DefaultColors.Dark,
			Light:   qr.DefaultColors.Light,
		},
		Log: LogConfig{Level: "info"},
		Layout: LayoutConfig{
			Slices:       l.Slices,
			Background:   l.Background,
			Accent:       l.Accent,
			Disc:         l.Disc,
			StrokeWidth:  l.StrokeWidth,
			EscapeOffset: l.EscapeOffset,
		},
	}
}

// Load layers defaults, the optional YAML file at path and LOVEQR_* environment
// variables, in increasing priority.
func Load(path string) (*Config, error) {
	base, err := Default().YAML()
	if err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(base)); err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	v.SetEnvPrefix(app.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ValidateYAML rejects unknown keys, then checks the decoded values.
func ValidateYAML(y []byte) error {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(y))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("%w: listen required", ErrInvalid)
	}
	if c.DefaultSize <= 0 {
		return fmt.Errorf("%w: default_size must be positive", ErrInvalid)
	}
	if c.MaxSize < 0 || (c.MaxSize > 0 && c.DefaultSize > c.MaxSize) {
		return fmt.Errorf("%w: max_size must be 0 or at least default_size", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Encoder(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) Level() (qr.Level, error) { return qr.ParseLevel(c.QR.Level) }

func (c *Config) Encoder() (qr.Encoder, error) {
	return qr.NewEncoder(c.QR.Encoder, qr.Colors{Dark: c.QR.Dark, Light: c.QR.Light})
}

func (c *Config) Compositor() *heart.Compositor {
	return heart.New(heart.Layout{
		Slices:       c.Layout.Slices,
		Background:   c.Layout.Background,
		Accent:       c.Layout.Accent,
		Disc:         c.Layout.Disc,
		StrokeWidth:  c.Layout.StrokeWidth,
		EscapeOffset: c.Layout.EscapeOffset,
	}, c.MaxSize)
}

func (c LogConfig) Build() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
