package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toposcope/toposcope/pkg/pipeline"
	"github.com/toposcope/toposcope/pkg/store"
)

// storeOpts holds the MongoDB connection flags shared by the store
// subcommands.
type storeOpts struct {
	uri      string
	database string
}

// open connects to the configured MongoDB instance.
func (o *storeOpts) open(ctx context.Context) (*store.Store, error) {
	return store.New(ctx, o.uri, o.database)
}

// newStoreCmd creates the store command with save/load/list/delete
// subcommands for named graph persistence.
func newStoreCmd() *cobra.Command {
	opts := storeOpts{
		uri:      "mongodb://localhost:27017",
		database: "toposcope",
	}

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Persist named graphs in MongoDB",
		Long: `Store saves graphs under a name so later runs can fetch a normalized,
closed, or reduced form instead of recomputing it.

Examples:
  toposcope store save deps deps.json
  toposcope store load deps -o deps.json
  toposcope store list
  toposcope store delete deps`,
	}

	cmd.PersistentFlags().StringVar(&opts.uri, "mongo-uri", opts.uri, "MongoDB connection URI")
	cmd.PersistentFlags().StringVar(&opts.database, "db", opts.database, "MongoDB database name")

	cmd.AddCommand(newStoreSaveCmd(&opts))
	cmd.AddCommand(newStoreLoadCmd(&opts))
	cmd.AddCommand(newStoreListCmd(&opts))
	cmd.AddCommand(newStoreDeleteCmd(&opts))
	return cmd
}

func newStoreSaveCmd(opts *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <file>",
		Short: "Save a graph under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Accepts the same inputs as the pipeline: JSON or TOML manifest.
			g, err := pipeline.NewRunner(nil, loggerFromContext(ctx)).Load(args[1])
			if err != nil {
				return err
			}

			st, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Save(ctx, args[0], g); err != nil {
				return err
			}
			printSuccess("saved %s", args[0])
			printStats(len(g.Nodes), len(g.Edges))
			return nil
		},
	}
}

func newStoreLoadCmd(opts *storeOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Load a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			st, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			g, err := st.Load(ctx, args[0])
			if err != nil {
				return err
			}
			return writeGraph(g, output, logger)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func newStoreListCmd(opts *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graph names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			names, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("no stored graphs")
				return nil
			}
			for _, name := range names {
				fmt.Println(StyleValue.Render(name))
			}
			return nil
		},
	}
}

func newStoreDeleteCmd(opts *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("deleted %s", args[0])
			return nil
		},
	}
}
