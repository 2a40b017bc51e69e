package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/internal/tui"
	"github.com/matzehuels/stackview/pkg/errors"
)

// browseOptions holds the flags of the browse command.
type browseOptions struct {
	All     bool
	LogFile string
}

// browseCommand creates the interactive directory browser command.
func (c *CLI) browseCommand() *cobra.Command {
	var opts browseOptions

	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Browse a directory tree one panel per level",
		Long: `Browse a directory tree one panel per level.

Each directory you open slides in as a new panel on the right; going back
slides it out again. As many levels stay on screen as the terminal width
allows.

Keys:
  j/k, up/down      move the cursor
  enter, l, right   open the selected directory
  backspace, h      go back one level
  g/G               jump to the first/last entry
  q, esc            quit and print the current directory`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runBrowse(cmd.Context(), cmd.OutOrStdout(), dir, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "show hidden entries")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file while the browser runs")

	return cmd
}

// runBrowse runs the browser until the user quits and prints the directory
// that was active at that point.
func (c *CLI) runBrowse(ctx context.Context, w io.Writer, dir string, opts browseOptions) error {
	// The browser owns the terminal, so logs go to a file or nowhere.
	logger := log.New(io.Discard)
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "open log file %s", opts.LogFile)
		}
		defer f.Close()
		logger = newLogger(f, c.Logger.GetLevel())
	}

	cfg := c.Config.Browse
	model, err := tui.New(dir, tui.Options{
		ShowHidden:        cfg.ShowHidden || opts.All,
		MinPanelWidth:     cfg.MinPanelWidth,
		WidthFunc:         c.Config.WidthFunc(),
		AnimationDuration: cfg.Duration.Std(),
		FrameRate:         cfg.FrameRate,
		Logger:            logger,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	loggerFromContext(ctx).Debug("starting browser", "dir", model.Path())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "browser")
	}

	fmt.Fprintln(w, model.Path())
	return nil
}
