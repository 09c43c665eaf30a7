package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/gndm/ytTranscript/internal/fetch"
	"github.com/gndm/ytTranscript/internal/render"
	"github.com/gndm/ytTranscript/internal/transcript"
)

// Config holds command-line and server settings.
type Config struct {
	Port              string  `toml:"port"`
	Lang              string  `toml:"lang"`
	Format            string  `toml:"format"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	YtDlpBinary       string  `toml:"ytdlp_binary"`
	Dev               bool    `toml:"dev"`
	Proxy             Proxy   `toml:"proxy"`
}

// Proxy describes an optional outbound proxy.
type Proxy struct {
	Host     string `toml:"host"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:              "8080",
		Format:            render.FormatText,
		RequestsPerSecond: 1,
		YtDlpBinary:       "yt-dlp",
	}
}

// Load applies, in order, the defaults, the TOML file at path (when path is
// not empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("YTT_LANG"); v != "" {
		c.Lang = v
	}
	if v := os.Getenv("YTT_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv("YTT_PROXY"); v != "" {
		c.Proxy.Host = v
	}
	if v := os.Getenv("YTT_PROXY_USER"); v != "" {
		c.Proxy.Username = v
	}
	if v := os.Getenv("YTT_PROXY_PASS"); v != "" {
		c.Proxy.Password = v
	}
	if v := os.Getenv("YTDLP_BIN"); v != "" {
		c.YtDlpBinary = v
	}
	if v := os.Getenv("YTT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("YTT_RPS: %w", err)
		}
		c.RequestsPerSecond = rps
	}
	if os.Getenv("DEV") == "1" {
		c.Dev = true
	}
	return nil
}

// Validate reports settings that can never work.
func (c Config) Validate() error {
	if !lo.Contains(render.Formats, c.Format) {
		return fmt.Errorf("unknown format %q (want one of %s)", c.Format, strings.Join(render.Formats, ", "))
	}
	if c.RequestsPerSecond < 0 {
		return errors.New("requests_per_second must not be negative")
	}
	if c.Proxy.Host == "" && (c.Proxy.Username != "" || c.Proxy.Password != "") {
		return errors.New("proxy credentials given without a proxy host")
	}
	if c.Proxy.Host != "" {
		if _, err := c.proxy().URL(); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) proxy() fetch.Proxy {
	p := fetch.Proxy{Host: c.Proxy.Host}
	if c.Proxy.Username != "" || c.Proxy.Password != "" {
		p.Auth = &fetch.ProxyAuth{Username: c.Proxy.Username, Password: c.Proxy.Password}
	}
	return p
}

// Override returns the transport override the settings describe.
func (c Config) Override() fetch.Override {
	if c.Proxy.Host == "" {
		return fetch.NoOverride{}
	}
	return c.proxy()
}

// Transcript returns the per-call fetch configuration.
func (c Config) Transcript() transcript.Config {
	return transcript.Config{
		Lang:      c.Lang,
		Transport: c.Override(),
	}
}
