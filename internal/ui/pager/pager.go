// Package pager implements the full-screen table viewer: a tcell screen, an
// input reader goroutine and a single-goroutine event loop.
package pager

import (
	"context"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/pcsv/internal/config"
	"github.com/kk-code-lab/pcsv/internal/logging"
	statepkg "github.com/kk-code-lab/pcsv/internal/state"
	"github.com/kk-code-lab/pcsv/internal/ui/input"
	renderui "github.com/kk-code-lab/pcsv/internal/ui/render"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const (
	pollInterval      = 100 * time.Millisecond
	eventQueueSize    = 64
	readerJoinTimeout = 500 * time.Millisecond
)

var (
	// ErrInputClosed is returned by Run when the input reader stopped
	// delivering events before the user quit.
	ErrInputClosed = errors.New("terminal input closed")
	// ErrTotalRows is returned by New when the row count disagrees with the content.
	ErrTotalRows = errors.New("total rows does not match content length")
)

// Sizer reports the terminal width and height.
type Sizer func() (int, int, error)

// Option configures a Pager.
type Option func(*Pager)

// WithScreen draws on screen instead of the controlling terminal.
func WithScreen(screen tcell.Screen) Option {
	return func(p *Pager) { p.screen = screen }
}

// WithSizer replaces the terminal size query used at construction.
func WithSizer(sizer Sizer) Option {
	return func(p *Pager) { p.sizer = sizer }
}

// WithLogger sets the session logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Pager) { p.logger = logger }
}

// WithTheme sets the header and content colors.
func WithTheme(theme renderui.ColorTheme) Option {
	return func(p *Pager) { p.theme = theme }
}

// Pager shows fixed content one screen at a time.
type Pager struct {
	content   []string
	header    string
	hasHeader bool
	cfg       config.PagerConfig

	state    *statepkg.PagerState
	keys     *input.KeyMap
	screen   tcell.Screen
	renderer *renderui.Renderer
	theme    renderui.ColorTheme
	sizer    Sizer
	logger   logging.Logger
}

// New builds a pager over content. header is pinned above the scrolling
// area when hasHeader is set.
func New(content []string, header string, hasHeader bool, totalRows int, cfg config.PagerConfig, opts ...Option) (*Pager, error) {
	if totalRows != len(content) {
		return nil, errors.Wrapf(ErrTotalRows, "total rows %d, content %d", totalRows, len(content))
	}

	p := &Pager{
		content:   content,
		header:    header,
		hasHeader: hasHeader,
		cfg:       cfg.Normalize(),
		keys:      input.DefaultKeyMap(),
		theme:     renderui.GetColorTheme(),
		sizer:     terminalSize,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	w, h, err := p.sizer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get terminal size")
	}

	if p.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create screen")
		}
		p.screen = screen
	}

	p.state = statepkg.NewPagerState(totalRows, w, h)
	p.renderer = renderui.NewRenderer(p.screen, p.theme)
	return p, nil
}

// State exposes the navigation state, mainly for callers that report the
// final position.
func (p *Pager) State() *statepkg.PagerState {
	return p.state
}

// Run takes over the terminal and processes input until the user quits,
// ctx is cancelled or input stops. The terminal is restored before Run
// returns.
func (p *Pager) Run(ctx context.Context) error {
	if err := p.screen.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize terminal")
	}

	events := make(chan tcell.Event, eventQueueSize)
	done := make(chan struct{})
	reader := startInputReader(p.screen, events, done)

	defer func() {
		close(done)
		// Fini unblocks PollEvent, which lets the reader exit.
		p.screen.Fini()
		if !reader.wait(readerJoinTimeout) {
			p.logger.Info(ctx, "input reader still running", "timeout", readerJoinTimeout.String())
		}
		p.logger.Info(ctx, "pager stopped", "row", p.state.CurrentRow(), "page", p.state.CurrentPage())
	}()

	w, h := p.screen.Size()
	p.state.Resize(w, h)
	p.logger.Info(ctx, "pager started", "rows", p.state.TotalRows(), "width", w, "height", h)

	err := p.loop(ctx, events)
	if err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error(ctx, "pager loop failed", err)
	}
	return err
}

func (p *Pager) loop(ctx context.Context, events <-chan tcell.Event) error {
	p.render()

	timer := time.NewTimer(pollInterval)
	defer timer.Stop()

	for {
		timer.Reset(pollInterval)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ErrInputClosed
			}
			quit, redraw := p.handleEvent(ctx, ev)
			if quit {
				return nil
			}
			if redraw {
				p.render()
			}
		case <-timer.C:
		}
	}
}

func (p *Pager) handleEvent(ctx context.Context, ev tcell.Event) (quit, redraw bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return p.handleKey(ctx, ev), true
	case *tcell.EventResize:
		w, h := ev.Size()
		p.state.Resize(w, h)
		p.screen.Sync()
		p.logger.Info(ctx, "terminal resized", "width", w, "height", h, "row", p.state.CurrentRow())
		return false, true
	default:
		return false, false
	}
}

func (p *Pager) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	rpp := p.state.RowsPerPage()

	switch p.keys.Lookup(ev) {
	case input.CommandQuit:
		return true
	case input.CommandPageDown:
		p.state.ScrollDown(rpp)
	case input.CommandPageUp:
		p.state.ScrollUp(rpp)
	case input.CommandLineDown:
		p.state.ScrollDown(p.cfg.ScrollSingleLine)
	case input.CommandLineUp:
		p.state.ScrollUp(p.cfg.ScrollSingleLine)
	case input.CommandLinesDown:
		p.state.ScrollDown(p.cfg.ScrollMultiLine)
	case input.CommandLinesUp:
		p.state.ScrollUp(p.cfg.ScrollMultiLine)
	case input.CommandHalfPageDown:
		p.state.ScrollDown(rpp / 2)
	case input.CommandHalfPageUp:
		p.state.ScrollUp(rpp / 2)
	case input.CommandFirst:
		p.state.GoToFirst()
	case input.CommandLast:
		p.state.GoToLast()
	case input.CommandSuspend:
		p.suspendToShell(ctx)
	case input.CommandRedraw:
		p.screen.Sync()
	}
	return false
}

func (p *Pager) render() {
	p.renderer.RenderPager(renderui.PagerView{
		Header:    p.header,
		HasHeader: p.hasHeader,
		Lines:     p.content,
		Start:     p.state.ViewportStart(),
		End:       p.state.ViewportEnd(),
	})
}

// terminalSize queries stdout, falling back to stdin when stdout is redirected.
func terminalSize() (int, int, error) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err == nil {
		return w, h, nil
	}
	if w, h, inErr := term.GetSize(int(os.Stdin.Fd())); inErr == nil {
		return w, h, nil
	}
	return 0, 0, err
}
