package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/toposcope/toposcope/pkg/buildinfo"
	"github.com/toposcope/toposcope/pkg/cache"
	"github.com/toposcope/toposcope/pkg/pipeline"
)

// rootOpts holds the persistent flags shared by all commands.
type rootOpts struct {
	verbose  bool   // enable debug logging
	noCache  bool   // disable transform memoization entirely
	cacheDir string // file cache directory (defaults to the user cache dir)
	redis    string // Redis address; when set, replaces the file cache
}

// Execute runs the toposcope CLI and returns an error if any command fails.
//
// The root command wires the --verbose flag into a context logger so every
// subcommand retrieves it with loggerFromContext, and exposes the cache
// backend selection (--no-cache, --cache-dir, --redis) shared by the
// transform commands and the server.
func Execute(ctx context.Context) error {
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:          "toposcope",
		Short:        "Toposcope normalizes and queries directed acyclic graphs",
		Long: `Toposcope topologically indexes dependency graphs and derives
closures, reductions, transposes, path lengths, and path enumerations
from the normalized form. Cyclic inputs are rejected with a witness walk.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	root.PersistentFlags().StringVar(&opts.cacheDir, "cache-dir", "", "cache directory (default: user cache dir)")
	root.PersistentFlags().StringVar(&opts.redis, "redis", "", "Redis address for shared caching (host:port)")

	root.AddCommand(newSortCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newTransformCmd(opts, pipeline.TransformClosure, "Compute the transitive closure of a graph"))
	root.AddCommand(newTransformCmd(opts, pipeline.TransformReduction, "Compute the transitive reduction of a graph", "reduce"))
	root.AddCommand(newTransformCmd(opts, pipeline.TransformTranspose, "Reverse every edge of a graph"))
	root.AddCommand(newLengthsCmd(opts))
	root.AddCommand(newPathsCmd(opts))
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newStoreCmd())
	root.AddCommand(newServeCmd(opts))

	return root.ExecuteContext(ctx)
}

// runner builds a pipeline Runner with the configured cache backend. The
// returned cleanup closes the cache and must be called when the command is
// done.
func (o *rootOpts) runner(ctx context.Context) (*pipeline.Runner, func(), error) {
	logger := loggerFromContext(ctx)

	c, err := o.openCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := c.Close(); err != nil {
			logger.Warnf("close cache: %v", err)
		}
	}
	return pipeline.NewRunner(c, logger), cleanup, nil
}

// openCache selects the cache backend: Redis when --redis is set, a file
// cache otherwise, or a null cache with --no-cache.
func (o *rootOpts) openCache(ctx context.Context) (cache.Cache, error) {
	if o.noCache {
		return cache.NewNullCache(), nil
	}
	if o.redis != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: o.redis})
	}

	dir := o.cacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			// No resolvable cache dir: run uncached rather than fail.
			loggerFromContext(ctx).Warnf("user cache dir unavailable, caching disabled: %v", err)
			return cache.NewNullCache(), nil
		}
		dir = filepath.Join(base, "toposcope")
	}
	return cache.NewFileCache(dir)
}
