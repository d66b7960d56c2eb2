package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"vcpass/internal/keystream"
	"vcpass/internal/params"
	"vcpass/internal/render"
)

type Config struct {
	LogLevel   string          `yaml:"loglevel"`
	LedgerDB   string          `yaml:"ledger_db"`
	Grid       Size            `yaml:"grid"`
	Display    Size            `yaml:"display"`
	PixelRatio Size            `yaml:"pixel_ratio"`
	Vocabulary VocabConfig     `yaml:"vocabulary"`
	Keystream  KeystreamConfig `yaml:"keystream"`
	Render     RenderConfig    `yaml:"render"`
	Challenge  ChallengeConfig `yaml:"challenge"`
}

type Size struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type VocabConfig struct {
	Size          int `yaml:"size"`
	Distinguished int `yaml:"distinguished"`
}

type KeystreamConfig struct {
	KDF        string       `yaml:"kdf"`    // pkcs12, pbkdf2 or argon2id
	Cipher     string       `yaml:"cipher"` // aes-cfb8 or chacha20
	Iterations int          `yaml:"iterations"`
	Salt       string       `yaml:"salt"` // hex
	Argon2     Argon2Config `yaml:"argon2"`
}

type Argon2Config struct {
	Time        uint32 `yaml:"time"`
	MemoryKB    uint32 `yaml:"memory_kb"`
	Parallelism uint8  `yaml:"parallelism"`
}

type RenderConfig struct {
	Black     string `yaml:"black"`
	White     string `yaml:"white"`
	GridColor string `yaml:"grid_color"`
	Scale     int    `yaml:"scale"`
}

type ChallengeConfig struct {
	MinDistinguished int `yaml:"min_distinguished"` // redraw plaintexts with fewer directions
}

// Defaults returns a Config populated with all default values.
func Defaults() *Config {
	return defaults()
}

func defaults() *Config {
	p := params.Default()
	pol := keystream.DefaultPolicy()
	return &Config{
		LogLevel:   "warn",
		LedgerDB:   defaultDir("ledger.db"),
		Grid:       Size{X: p.GridX, Y: p.GridY},
		Display:    Size{X: p.DispX, Y: p.DispY},
		PixelRatio: Size{X: p.PRX, Y: p.PRY},
		Vocabulary: VocabConfig{Size: p.VocSize, Distinguished: p.Distinguished},
		Keystream: KeystreamConfig{
			KDF:        pol.KDF,
			Cipher:     pol.Cipher,
			Iterations: pol.Iterations,
			Salt:       fmt.Sprintf("%x", pol.Salt),
			Argon2: Argon2Config{
				Time:        pol.ArgonTime,
				MemoryKB:    pol.ArgonMemKB,
				Parallelism: pol.ArgonPar,
			},
		},
		Render: RenderConfig{
			Black:     "#000000",
			White:     "#ffffff",
			GridColor: "#ffff00",
			Scale:     1,
		},
		Challenge: ChallengeConfig{MinDistinguished: 1},
	}
}

// DefaultPath is ~/.vcpass/config.yaml.
func DefaultPath() string {
	return defaultDir("config.yaml")
}

func defaultDir(name string) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vcpass", name)
}

func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path in YAML format, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Params converts the geometry and vocabulary sections, validating them.
func (c *Config) Params() (params.Params, error) {
	return params.New(params.Params{
		GridX:         c.Grid.X,
		GridY:         c.Grid.Y,
		PRX:           c.PixelRatio.X,
		PRY:           c.PixelRatio.Y,
		DispX:         c.Display.X,
		DispY:         c.Display.Y,
		VocSize:       c.Vocabulary.Size,
		Distinguished: c.Vocabulary.Distinguished,
	})
}

// Policy converts the keystream section.
func (c *Config) Policy() (keystream.Policy, error) {
	salt, err := keystream.ParseSalt(c.Keystream.Salt)
	if err != nil {
		return keystream.Policy{}, fmt.Errorf("keystream.salt: %w", err)
	}
	return keystream.Policy{
		KDF:        c.Keystream.KDF,
		Cipher:     c.Keystream.Cipher,
		Salt:       salt,
		Iterations: c.Keystream.Iterations,
		ArgonTime:  c.Keystream.Argon2.Time,
		ArgonMemKB: c.Keystream.Argon2.MemoryKB,
		ArgonPar:   c.Keystream.Argon2.Parallelism,
	}, nil
}

// Palette converts the render colors.
func (c *Config) Palette() (render.Palette, error) {
	return render.ParsePalette(c.Render.Black, c.Render.White, c.Render.GridColor)
}

// Level maps loglevel to a slog level; unknown values mean warn.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
