package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/layout"
	"github.com/matzehuels/stackview/pkg/viewport"
)

// Output formats of the layout command.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// layoutOptions holds the flags of the layout command.
type layoutOptions struct {
	Count       int
	Width       float64
	Height      float64
	NoLookahead bool
	Animating   bool
	Policy      string
	Format      string
}

// layoutReport is the JSON output of the layout command.
type layoutReport struct {
	Count         int                `json:"count"`
	ContainerSize geom.Vector2       `json:"container_size"`
	MaxVisible    int                `json:"max_visible"`
	Layouts       []layout.Layout    `json:"layouts"`
	Viewport      viewport.Transform `json:"viewport"`
}

// layoutCommand creates the layout command for computing panel layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOptions{Count: 3, Width: 1200, Height: 800, Format: formatTable}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the panel layouts for a container",
		Long: `Print the panel layouts for a container.

The layout command computes the rectangle of every panel of a hierarchy view
with --count levels inside a --width x --height container, plus the trailing
lookahead rectangle where the next level would appear, and the viewport offset
that keeps the last level on screen.

The width policy and minimum panel width come from the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", opts.Count, "number of panels")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "container width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "container height")
	cmd.Flags().BoolVar(&opts.NoLookahead, "no-lookahead", false, "omit the lookahead rectangle")
	cmd.Flags().BoolVar(&opts.Animating, "animating", false, "include the viewport transition")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "width policy: default, equal (default: from config)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", opts.Format, "output format: table, json")

	return cmd
}

// runLayout validates the options, computes the layouts and prints them.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, opts layoutOptions) error {
	if err := errors.ValidateElementCount(opts.Count); err != nil {
		return err
	}
	if err := errors.ValidateContainerSize(opts.Width, opts.Height); err != nil {
		return err
	}
	if opts.Format != formatTable && opts.Format != formatJSON {
		return errors.New(errors.ErrCodeUnsupported, "unknown format %q (use table or json)", opts.Format)
	}

	params := c.Config.LayoutParams()
	if opts.Policy != "" {
		fn, ok := layout.WidthPolicies[opts.Policy]
		if !ok {
			return errors.New(errors.ErrCodeInvalidPolicy, "unknown width policy %q", opts.Policy)
		}
		params.WidthFunc = fn
	}
	params.ElementCount = opts.Count
	params.ContainerSize = geom.Vec(opts.Width, opts.Height)
	params.NoLookahead = opts.NoLookahead

	layouts := layout.Compute(params)
	offset := viewport.Offset(layouts, opts.Count-1, params.ContainerSize)
	report := layoutReport{
		Count:         opts.Count,
		ContainerSize: params.ContainerSize,
		MaxVisible:    layout.MaxVisible(opts.Width, params.MinWidthFunc),
		Layouts:       layouts,
		Viewport:      viewport.Render(offset, opts.Animating, c.Config.Animation.Duration.Std()),
	}
	loggerFromContext(ctx).Debug("computed layouts", "count", opts.Count, "rects", len(layouts), "max_visible", report.MaxVisible)

	if opts.Format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if opts.NoLookahead && report.MaxVisible == 1 {
		printWarning(w, "--no-lookahead has no effect when only one panel fits")
	}
	printLayoutTable(w, report)
	return nil
}

// printLayoutTable renders one row per rectangle followed by the viewport.
func printLayoutTable(w io.Writer, r layoutReport) {
	rows := make([][]string, len(r.Layouts))
	for i, l := range r.Layouts {
		index := strconv.Itoa(i)
		if i >= r.Count {
			index = "+"
		}
		rows[i] = []string{
			index,
			num(l.Offset.X),
			num(l.Size.X),
			num(l.Size.Y),
			strconv.FormatBool(l.Visible),
			num(l.Style.Opacity),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "x", "width", "height", "visible", "opacity").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row < 0 || row >= len(r.Layouts) {
				return lipgloss.NewStyle()
			}
			if r.Layouts[row].Visible {
				if col >= 1 && col <= 3 {
					return StyleNumber
				}
				return styleVisible
			}
			return styleHidden
		})

	fmt.Fprintln(w, t.Render())
	printKeyValue(w, "max visible", strconv.Itoa(r.MaxVisible))
	printKeyValue(w, "viewport", r.Viewport.Offset.String())
	for _, key := range []string{"transform", "transition"} {
		if v, ok := r.Viewport.Declarations()[key]; ok {
			printKeyValue(w, key, v)
		}
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
