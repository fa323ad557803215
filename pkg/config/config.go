// Package config loads brooklin's settings.
//
// Settings come from three layers, later layers winning:
//
//  1. built-in defaults
//  2. a TOML file, brooklin.toml in the working directory or
//     $XDG_CONFIG_HOME/brooklin/brooklin.toml
//  3. environment variables, after a .env file in the working directory
//     has been loaded into the environment
//
// Recognised variables: BROOKLIN_CYCLES_DIR, BROOKLIN_API_URL,
// BROOKLIN_CACHE, BROOKLIN_REDIS_ADDR, BROOKLIN_REDIS_PASSWORD,
// BROOKLIN_ADDR.
//
// Example file:
//
//	[cycles]
//	dir = "dist/assets"
//	ext = ".js"
//
//	[placement]
//	padding = 36
//	path = "M0,300 C150,120 300,120 450,300"
//
//	[specials]
//	api_url = "https://api.brooklinpub.com"
//	ttl = "5m"
//	cache = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/brooklinpub/brooklin/pkg/curve"
	bkerrors "github.com/brooklinpub/brooklin/pkg/errors"
	"github.com/brooklinpub/brooklin/pkg/placement"
)

// FileName is the config file looked up by [Load].
const FileName = "brooklin.toml"

// Defaults.
const (
	DefaultCyclesDir   = "dist/assets"
	DefaultAPIURL      = "http://localhost:8080"
	DefaultSpecialsTTL = 5 * time.Minute
	DefaultCacheSize   = 256
	DefaultAddr        = ":8090"
)

// Cache backends accepted by SpecialsConfig.Cache.
const (
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config is the merged configuration.
type Config struct {
	Cycles    CyclesConfig    `toml:"cycles"`
	Placement PlacementConfig `toml:"placement"`
	Specials  SpecialsConfig  `toml:"specials"`
	Server    ServerConfig    `toml:"server"`

	// Source is the file the config was read from, empty when none was found.
	Source string `toml:"-"`
}

// CyclesConfig configures the post-build import cycle check.
type CyclesConfig struct {
	Dir string `toml:"dir"`
	Ext string `toml:"ext"`
}

// PlacementConfig configures hotspot placement. Path is SVG path data for
// the curve; it is stretched onto the viewport.
type PlacementConfig struct {
	placement.Options
	Path string `toml:"path"`
}

// SpecialsConfig configures the specials API client and its cache.
type SpecialsConfig struct {
	APIURL        string        `toml:"api_url"`
	TTL           time.Duration `toml:"ttl"`
	Cache         string        `toml:"cache"`
	CacheDir      string        `toml:"cache_dir"`
	CacheSize     int           `toml:"cache_size"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	PollInterval  time.Duration `toml:"poll_interval"`
}

// ServerConfig configures `brooklin serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config file at path, or searches the default locations
// when path is empty. A missing file is not an error unless path was given
// explicitly. Unknown keys are rejected so typos don't go unnoticed.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, bkerrors.Wrap(bkerrors.ErrCodeInvalidConfig, err, "load .env")
	}

	cfg := &Config{}
	if path == "" {
		path = find()
	} else if _, err := os.Stat(path); err != nil {
		return nil, bkerrors.Wrap(bkerrors.ErrCodeInvalidConfig, err, "config file %s", path)
	}

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, bkerrors.Wrap(bkerrors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, bkerrors.New(bkerrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
		cfg.Source = path
	}

	cfg.applyEnv(os.Getenv)
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// find returns the first existing config file, or "".
func find() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "brooklin", FileName))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.Cycles.Dir, "BROOKLIN_CYCLES_DIR")
	set(&c.Specials.APIURL, "BROOKLIN_API_URL")
	set(&c.Specials.Cache, "BROOKLIN_CACHE")
	set(&c.Specials.RedisAddr, "BROOKLIN_REDIS_ADDR")
	set(&c.Specials.RedisPassword, "BROOKLIN_REDIS_PASSWORD")
	set(&c.Server.Addr, "BROOKLIN_ADDR")
}

func (c *Config) applyDefaults() {
	str := func(dst *string, d string) {
		if *dst == "" {
			*dst = d
		}
	}
	str(&c.Cycles.Dir, DefaultCyclesDir)
	str(&c.Cycles.Ext, ".js")
	str(&c.Placement.Path, curve.DefaultPath)
	c.Placement.Options = c.Placement.Options.WithDefaults()
	str(&c.Specials.APIURL, DefaultAPIURL)
	str(&c.Specials.Cache, CacheFile)
	str(&c.Server.Addr, DefaultAddr)
	if c.Specials.TTL <= 0 {
		c.Specials.TTL = DefaultSpecialsTTL
	}
	if c.Specials.CacheSize <= 0 {
		c.Specials.CacheSize = DefaultCacheSize
	}
	if c.Specials.PollInterval <= 0 {
		c.Specials.PollInterval = time.Minute
	}
	if c.Specials.Cache == CacheRedis {
		str(&c.Specials.RedisAddr, "localhost:6379")
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if err := bkerrors.ValidateDir(c.Cycles.Dir); err != nil {
		return err
	}
	if err := bkerrors.ValidateModuleExt(c.Cycles.Ext); err != nil {
		return err
	}
	if err := bkerrors.ValidateURL(c.Specials.APIURL); err != nil {
		return err
	}
	if _, err := curve.ParsePath(c.Placement.Path); err != nil {
		return fmt.Errorf("placement.path: %w", err)
	}
	switch c.Specials.Cache {
	case CacheMemory, CacheFile, CacheRedis, CacheNone:
	default:
		return bkerrors.New(bkerrors.ErrCodeInvalidConfig, "specials.cache must be one of memory, file, redis, none (got %q)", c.Specials.Cache)
	}
	return nil
}
