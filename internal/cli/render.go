package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toposcope/toposcope/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path (stdout if empty)
	format    string // output format: "dot" or "svg"
	transform string // optional transform applied before rendering
}

// newRenderCmd creates the render command for emitting Graphviz output.
// The graph is normalized first so the drawing reflects canonical order, and
// an optional transform (closure, reduction, transpose) can be applied
// before rendering.
func newRenderCmd(root *rootOpts) *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a graph to Graphviz DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatDOT && opts.format != formatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return runRender(cmd, root, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().StringVarP(&opts.transform, "transform", "t", "", "apply a transform first: closure, reduction, transpose")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOpts, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	r, cleanup, err := root.runner(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	g, err := r.Load(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d nodes, %d edges", len(g.Nodes), len(g.Edges))

	if opts.transform != "" {
		g, err = r.Transform(ctx, g, opts.transform)
	} else {
		g, _, err = r.Normalize(g)
	}
	if err != nil {
		return cycleFriendly(err)
	}

	dot := render.DOT(g)

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		logger.Debug("Rendering SVG via graphviz")
		data, err = render.SVG(ctx, dot)
		if err != nil {
			return err
		}
	}

	path := opts.output
	if path == "" && opts.format == formatSVG {
		// SVG bytes on a terminal are useless noise; derive a file name.
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := writeBytes(data, path, logger); err != nil {
		return err
	}
	if path != "" {
		printFile(path)
	}
	return nil
}
