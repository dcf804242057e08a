package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newLengthsCmd creates the lengths command, printing shortest or longest
// path lengths from a source vertex in index order.
func newLengthsCmd(root *rootOpts) *cobra.Command {
	var longest bool

	cmd := &cobra.Command{
		Use:   "lengths <file> <source>",
		Short: "Path lengths from a source vertex",
		Long: `Lengths computes the shortest (default) or longest path length from the
source vertex to every vertex, reported in topological order. A length of 0
means the vertex is the source itself or unreachable from it.`,
		Args: cobra.ExactArgs(2),
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

			lengths, err := r.Lengths(g, args[1], longest)
			if err != nil {
				return cycleFriendly(err)
			}

			for _, vl := range lengths {
				fmt.Printf("%s %s\n",
					StyleNumber.Render(fmt.Sprintf("%3d", vl.Length)),
					StyleValue.Render(vl.Vertex))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&longest, "longest", false, "longest path lengths instead of shortest")
	return cmd
}

// newPathsCmd creates the paths command, enumerating every simple path
// between two vertices.
func newPathsCmd(root *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths <file> <from> <to>",
		Short: "Enumerate all simple paths between two vertices",
		Args:  cobra.ExactArgs(3),
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

			paths, err := r.Paths(g, args[1], args[2])
			if err != nil {
				return cycleFriendly(err)
			}
			if len(paths) == 0 {
				printInfo("no path from %s to %s", args[1], args[2])
				return nil
			}

			for _, p := range paths {
				fmt.Println(formatWalk(p))
			}
			printStats(len(g.Nodes), len(g.Edges))
			printInfo("%d path(s)", len(paths))
			return nil
		},
	}
	return cmd
}
