package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/jadxdctl/jadxd"
)

type ClientConfig struct {
	BaseURL        string         `toml:"base_url"`
	TimeoutSeconds int            `toml:"timeout_seconds"`
	Settings       SettingsConfig `toml:"settings"`
}

// SettingsConfig mirrors the daemon's decompile settings for the load call.
type SettingsConfig struct {
	Deobfuscation        bool `toml:"deobfuscation"`
	InlineMethods        bool `toml:"inline_methods"`
	ShowInconsistentCode bool `toml:"show_inconsistent_code"`
}

type MockConfig struct {
	Addr        string       `toml:"addr"`
	CorsOrigins []string     `toml:"cors_origins"`
	Fixtures    []FixtureRef `toml:"fixtures"`
}

// FixtureRef binds one loadable artifact path to a fixture graph file.
type FixtureRef struct {
	Path string `toml:"path"`
	File string `toml:"file"`
}

func LoadClientConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig
	if err := loadToml(path, &cfg); err != nil {
		return ClientConfig{}, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = jadxd.DefaultBaseURL
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = int(jadxd.DefaultTimeout / time.Second)
	}
	if err := ValidateClientConfig(cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func LoadMockConfig(path string) (MockConfig, error) {
	var cfg MockConfig
	if err := loadToml(path, &cfg); err != nil {
		return MockConfig{}, err
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8085"
	}
	if err := ValidateMockConfig(cfg); err != nil {
		return MockConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateClientConfig(cfg ClientConfig) error {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return fmt.Errorf("client config missing base_url")
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("client config base_url invalid: %s", base)
	}
	if cfg.TimeoutSeconds < 0 {
		return fmt.Errorf("client config timeout_seconds must not be negative")
	}
	return nil
}

func ValidateMockConfig(cfg MockConfig) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("mock config missing addr")
	}
	for i, ref := range cfg.Fixtures {
		if err := ValidateFixtureRef(ref); err != nil {
			return fmt.Errorf("fixture[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func ValidateFixtureRef(ref FixtureRef) error {
	if strings.TrimSpace(ref.Path) == "" {
		return fmt.Errorf("path is required")
	}
	if strings.TrimSpace(ref.File) == "" {
		return fmt.Errorf("file is required")
	}
	return nil
}

// ClientSettings converts the toml section into the wire settings object.
func (c ClientConfig) ClientSettings() jadxd.DecompileSettings {
	return jadxd.DecompileSettings{
		Deobfuscation:        c.Settings.Deobfuscation,
		InlineMethods:        c.Settings.InlineMethods,
		ShowInconsistentCode: c.Settings.ShowInconsistentCode,
	}
}

// Timeout converts the configured seconds into the client timeout.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
