package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newTransformCmd creates one of the derived-graph commands (closure,
// reduction, transpose). They share flags and flow and differ only in the
// transform applied by the pipeline.
func newTransformCmd(root *rootOpts, name, short string, aliases ...string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s <file>", name),
		Aliases: aliases,
		Short:   short,
		Args:    cobra.ExactArgs(1),
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
			out, err := r.Transform(ctx, g, name)
			if err != nil {
				return cycleFriendly(err)
			}
			prog.done(fmt.Sprintf("Computed %s: %d edges in, %d edges out", name, len(g.Edges), len(out.Edges)))

			return writeGraph(out, output, logger)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
