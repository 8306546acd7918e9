// Package app wires CSV loading, formatting and output: either printing the
// table or handing it to the pager.
package app

import (
	"context"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/kk-code-lab/pcsv/internal/config"
	fsutil "github.com/kk-code-lab/pcsv/internal/fs"
	"github.com/kk-code-lab/pcsv/internal/infer"
	"github.com/kk-code-lab/pcsv/internal/logging"
	"github.com/kk-code-lab/pcsv/internal/table"
	pagerui "github.com/kk-code-lab/pcsv/internal/ui/pager"
	renderui "github.com/kk-code-lab/pcsv/internal/ui/render"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const fallbackTermWidth = 80

// ErrNotTerminal is returned when the pager is requested without a terminal.
var ErrNotTerminal = errors.New("pager requires a terminal")

// Options are the user's choices for one run.
type Options struct {
	Path string
	// MaxRows limits printed rows; 0 prints all. The pager shows every row
	// unless RowsSet is true.
	MaxRows    int
	RowsSet    bool
	RowNumbers bool
	Width      int
	Delimiter  string
	NoHeader   bool
	// ConfigPath names the config file; empty means config.DefaultPath.
	ConfigPath string
	Pager      bool
}

// Option adjusts an Application, mostly for tests.
type Option func(*Application)

// WithOutput prints tables to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(app *Application) { app.out = w }
}

// WithTermWidth replaces the terminal width query.
func WithTermWidth(width func() int) Option {
	return func(app *Application) { app.termWidth = width }
}

// WithTerminalCheck replaces the check that stdout is a terminal.
func WithTerminalCheck(isTerminal func() bool) Option {
	return func(app *Application) { app.isTerminal = isTerminal }
}

// WithPagerOptions passes extra options to the pager.
func WithPagerOptions(opts ...pagerui.Option) Option {
	return func(app *Application) { app.pagerOpts = append(app.pagerOpts, opts...) }
}

// Application represents one pcsv invocation.
type Application struct {
	opts   Options
	scheme config.ColorScheme
	logger logging.Logger

	out        io.Writer
	termWidth  func() int
	isTerminal func() bool
	pagerOpts  []pagerui.Option
}

// NewApplication resolves the color scheme. An explicit config path must
// load; the default path may be missing or broken, in which case the
// built-in scheme is used.
func NewApplication(ctx context.Context, opts Options, logger logging.Logger, options ...Option) (*Application, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	app := &Application{
		opts:       opts,
		logger:     logger,
		out:        os.Stdout,
		termWidth:  stdoutWidth,
		isTerminal: stdoutIsTerminal,
	}
	for _, opt := range options {
		opt(app)
	}

	scheme, err := app.loadScheme(ctx)
	if err != nil {
		return nil, err
	}
	app.scheme = scheme
	return app, nil
}

func (app *Application) loadScheme(ctx context.Context) (config.ColorScheme, error) {
	if app.opts.ConfigPath != "" {
		scheme, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return scheme, err
		}
		app.logger.Info(ctx, "config loaded", "path", app.opts.ConfigPath)
		return scheme, nil
	}

	for _, path := range config.SearchPaths {
		scheme, err := config.Load(path)
		switch {
		case err == nil:
			app.logger.Info(ctx, "config loaded", "path", path)
			return scheme, nil
		case errors.Is(err, os.ErrNotExist):
			continue
		default:
			app.logger.Error(ctx, "ignoring default config", err, "path", path)
			return config.Default(), nil
		}
	}
	return config.Default(), nil
}

// Scheme is the color scheme in effect.
func (app *Application) Scheme() config.ColorScheme {
	return app.scheme
}

// Run reads the file and prints or pages it.
func (app *Application) Run(ctx context.Context) error {
	delim, err := fsutil.ParseDelimiter(app.opts.Delimiter)
	if err != nil {
		return err
	}

	if app.opts.Pager && !app.isTerminal() {
		return ErrNotTerminal
	}

	records, err := fsutil.ReadCSV(app.opts.Path, fsutil.ReadOptions{
		Delimiter: delim,
		HasHeader: !app.opts.NoHeader,
	})
	if err != nil {
		return err
	}
	app.logger.Info(ctx, "csv loaded", "path", app.opts.Path, "rows", len(records.Rows), "columns", records.Columns())

	maxRows := app.opts.MaxRows
	if app.opts.Pager && !app.opts.RowsSet {
		maxRows = 0
	}
	formatter := table.NewFormatter(app.scheme, infer.DefaultPatterns(), table.Options{
		MaxRows:    maxRows,
		RowNumbers: app.opts.RowNumbers,
		Width:      app.opts.Width,
	}, app.termWidth())
	rendered := formatter.Render(records)

	if app.opts.Pager {
		return app.page(ctx, records, rendered)
	}
	return app.print(formatter, records, rendered, table.ShownRows(maxRows, len(records.Rows)))
}

func (app *Application) print(formatter *table.Formatter, records *fsutil.Records, rendered string, shown int) error {
	if _, err := lipgloss.Fprintln(app.out, formatter.Info(app.opts.Path, records)); err != nil {
		return errors.Wrap(err, "failed to write info")
	}
	if _, err := lipgloss.Fprintln(app.out, rendered); err != nil {
		return errors.Wrap(err, "failed to write table")
	}
	if footer := table.Footer(shown, len(records.Rows)); footer != "" {
		if _, err := lipgloss.Fprintln(app.out, "\n"+footer); err != nil {
			return errors.Wrap(err, "failed to write footer")
		}
	}
	return nil
}

func (app *Application) page(ctx context.Context, records *fsutil.Records, rendered string) error {
	lines := strings.Split(rendered, "\n")

	opts := append([]pagerui.Option{
		pagerui.WithLogger(app.logger),
		pagerui.WithTheme(renderui.ThemeFromScheme(app.scheme)),
	}, app.pagerOpts...)

	p, err := pagerui.New(lines, table.Summary(app.opts.Path, records), true, len(lines), app.scheme.Pager, opts...)
	if err != nil {
		return err
	}
	return p.Run(ctx)
}

func stdoutWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallbackTermWidth
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
