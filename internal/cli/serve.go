package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/toposcope/toposcope/internal/server"
	"github.com/toposcope/toposcope/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// termination signal.
const shutdownTimeout = 10 * time.Second

// serveOpts holds the flags for the serve command.
type serveOpts struct {
	addr     string
	mongoURI string
	database string
}

// newServeCmd creates the serve command, running the HTTP API with the same
// cache backend the CLI commands use. The /v1/graphs endpoints are enabled
// only when --mongo-uri is set.
func newServeCmd(root *rootOpts) *cobra.Command {
	opts := serveOpts{addr: ":8080", database: "toposcope"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph operations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), root, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI enabling the /v1/graphs endpoints")
	cmd.Flags().StringVar(&opts.database, "db", opts.database, "MongoDB database name")
	return cmd
}

func runServe(ctx context.Context, root *rootOpts, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	runner, cleanup, err := root.runner(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	var st *store.Store
	if opts.mongoURI != "" {
		st, err = store.New(ctx, opts.mongoURI, opts.database)
		if err != nil {
			return err
		}
		defer st.Close(context.Background())
		logger.Infof("Graph store enabled (%s)", opts.database)
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(runner, st, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", opts.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
