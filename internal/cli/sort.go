package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toposcope/toposcope/pkg/errors"
	"github.com/toposcope/toposcope/pkg/topo"
)

// newSortCmd creates the sort command. It normalizes a graph file into
// canonical topological form and writes the result as JSON.
func newSortCmd(root *rootOpts) *cobra.Command {
	var output string
	var showOrder bool

	cmd := &cobra.Command{
		Use:   "sort <file>",
		Short: "Topologically order a graph",
		Long: `Sort reads a graph (JSON wire format or TOML manifest), assigns each
vertex a dense topological index, and writes the normalized graph with
vertices and edges in index order. Cyclic inputs fail with a witness walk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			r, cleanup, err := root.runner(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := r.Load(args[0])
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			out, order, err := r.Normalize(g)
			if err != nil {
				return cycleFriendly(err)
			}
			prog.done(fmt.Sprintf("Sorted %d vertices", len(order)))

			if showOrder {
				for i, v := range order {
					fmt.Printf("%s %s\n", StyleNumber.Render(fmt.Sprintf("%3d", i)), StyleValue.Render(v))
				}
				return nil
			}
			return writeGraph(out, output, logger)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&showOrder, "order", false, "print the vertex order instead of the graph")
	return cmd
}

// newCheckCmd creates the check command. It reports whether a graph is
// acyclic, printing the witness walk when it is not.
func newCheckCmd(root *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check whether a graph is acyclic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, cleanup, err := root.runner(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			g, err := r.Load(args[0])
			if err != nil {
				return err
			}

			_, order, err := r.Normalize(g)
			var cyc *topo.CycleError[string]
			if stderrors.As(err, &cyc) {
				printError("graph contains a cycle")
				fmt.Println("  " + formatWalk(cyc.Walk))
				return errors.Wrap(errors.ErrCodeGraphCycle, err, "check failed")
			}
			if err != nil {
				return err
			}

			printSuccess("graph is acyclic")
			printStats(len(order), len(g.Edges))
			return nil
		},
	}
	return cmd
}

// cycleFriendly prints the witness walk for cycle errors before returning
// them, so the diagnostic is visible even with default logging.
func cycleFriendly(err error) error {
	var cyc *topo.CycleError[string]
	if stderrors.As(err, &cyc) {
		printError("graph contains a cycle")
		fmt.Println("  " + formatWalk(cyc.Walk))
	}
	return err
}
