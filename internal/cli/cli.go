package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/brooklinpub/brooklin/pkg/buildinfo"
	"github.com/brooklinpub/brooklin/pkg/cache"
	"github.com/brooklinpub/brooklin/pkg/config"
	"github.com/brooklinpub/brooklin/pkg/httputil"
	"github.com/brooklinpub/brooklin/pkg/observability"
	"github.com/brooklinpub/brooklin/pkg/specials"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "brooklin"

	// redisPrefix namespaces brooklin keys in a shared Redis.
	redisPrefix = "brooklin:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Brooklin site tooling: import cycle checks and hotspot placement",
		Long: `Brooklin bundles the build and layout tooling of the Brooklin Pub website:
a post-build check for circular imports between emitted chunks, the hotspot
placement engine behind the menu curve, and a small API serving placements.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./brooklin.toml, then $XDG_CONFIG_HOME/brooklin/brooklin.toml)")

	root.AddCommand(c.cyclesCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.specialsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, registers logging hooks and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}

	c.registerHooks()
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

func (c *CLI) registerHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetCheckHooks(h)
	observability.SetPlacementHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

// =============================================================================
// Factories
// =============================================================================

// newCache opens the specials cache backend selected by the config. The
// result reports to the cache hooks.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Specials
	if noCache {
		return cache.NewNullCache(), nil
	}

	var (
		backend cache.Cache
		err     error
	)
	switch cfg.Cache {
	case config.CacheNone:
		backend = cache.NewNullCache()
	case config.CacheMemory:
		backend, err = cache.NewMemoryCache(cfg.CacheSize)
	case config.CacheRedis:
		backend, err = cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   redisPrefix,
		})
	default:
		var dir string
		if dir, err = c.cacheDir(); err == nil {
			backend, err = cache.NewFileCache(dir)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Cache, err)
	}
	return cache.Instrument(backend), nil
}

// newSpecialsClient builds a specials client over the configured cache.
// The returned close function releases the cache.
func (c *CLI) newSpecialsClient(ctx context.Context, noCache bool) (*specials.Client, func() error, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	client, err := c.specialsClient(backend)
	if err != nil {
		_ = backend.Close()
		return nil, nil, err
	}
	return client, backend.Close, nil
}

// specialsClient builds a specials client over an open cache backend.
func (c *CLI) specialsClient(backend cache.Cache) (*specials.Client, error) {
	return specials.NewClient(c.Config.Specials.APIURL, httputil.NewCache(backend, c.Config.Specials.TTL))
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: the configured one, or the
// user cache directory (~/.cache/brooklin/ on Linux).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.Config.Specials.CacheDir; dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}
