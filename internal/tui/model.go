// Package tui implements the interactive directory browser behind
// "stackview browse".
//
// Every directory level is a panel of a hierarchy view. Opening a directory
// pushes a panel, going back pops one; the hierarchy controller decides
// which panels share the terminal and the model eases the viewport and the
// panel spans between the frames it produces.
package tui

import (
	"io"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/hierarchy"
	"github.com/matzehuels/stackview/pkg/layout"
)

// chromeRows are the header and footer lines around the panel area.
const chromeRows = 2

// Options configures the browser. Zero values fall back to defaults.
type Options struct {
	ShowHidden bool

	// MinPanelWidth is the narrowest panel in columns.
	MinPanelWidth float64
	WidthFunc     layout.WidthFunc

	// AnimationDuration is both the controller's animation duration and the
	// length of the on-screen ease.
	AnimationDuration time.Duration
	FrameRate         int

	Scheduler hierarchy.Scheduler
	Logger    *log.Logger
	Now       func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MinPanelWidth <= 0 {
		o.MinPanelWidth = 24
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = 400 * time.Millisecond
	}
	if o.FrameRate <= 0 {
		o.FrameRate = 30
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type (
	// changedMsg reports a controller state change.
	changedMsg struct{}

	// frameMsg advances the ease by one frame.
	frameMsg time.Time
)

// Model is the bubbletea model of the browser.
type Model struct {
	opts    Options
	logger  *log.Logger
	ctrl    *hierarchy.Controller[*Panel]
	term    *terminal
	changes chan struct{}
	panels  []*Panel

	width, height int
	target        hierarchy.Frame[*Panel]
	tween         *tween
	ticking       bool
	quitting      bool
}

// New opens root as the first panel and mounts the controller.
func New(root string, opts Options) (*Model, error) {
	if err := errors.ValidateDirectory(root); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", root)
	}

	opts = opts.withDefaults()
	m := &Model{
		opts:    opts,
		logger:  opts.Logger,
		term:    newTerminal(),
		changes: make(chan struct{}, 1),
		panels:  []*Panel{loadPanel(abs, opts.ShowHidden)},
	}
	m.ctrl = hierarchy.New[*Panel](m.term, hierarchy.Options{
		AnimationDuration: opts.AnimationDuration,
		WidthFunc:         opts.WidthFunc,
		MinWidthFunc:      layout.MinWidthAtLeast(opts.MinPanelWidth),
		Resize:            m.term,
		Scheduler:         opts.Scheduler,
		OnChange:          m.notify,
		Logger:            opts.Logger,
	})
	m.ctrl.SetChildren(m.panels)
	m.ctrl.Mount()
	return m, nil
}

// notify runs on controller callbacks, possibly off the program goroutine.
// A pending notification already covers this one.
func (m *Model) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return changedMsg{}
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.term.resize(msg.Width, max(0, msg.Height-chromeRows))
	case tea.KeyMsg:
		return m.handleKey(msg)
	case changedMsg:
		return m, tea.Batch(m.refresh(), m.waitForChange())
	case frameMsg:
		if m.tween != nil && !m.tween.done(m.opts.Now()) {
			return m, m.tick()
		}
		m.ticking = false
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.Close()
		return m, tea.Quit
	case "down", "j":
		m.active().Move(1)
	case "up", "k":
		m.active().Move(-1)
	case "home", "g":
		m.active().Move(-len(m.active().Entries))
	case "end", "G":
		m.active().Move(len(m.active().Entries))
	case "enter", "l", "right":
		m.push()
	case "backspace", "h", "left":
		m.pop()
	}
	return m, nil
}

func (m *Model) active() *Panel {
	return m.panels[len(m.panels)-1]
}

func (m *Model) push() {
	parent := m.active()
	e, ok := parent.Selected()
	if !ok || !e.IsDir {
		return
	}
	next := loadPanel(filepath.Join(parent.Dir, e.Name), m.opts.ShowHidden)
	m.panels = append(m.panels, next)
	m.logger.Debug("push", "dir", next.Dir, "depth", len(m.panels))
	m.ctrl.SetChildren(m.panels)
}

func (m *Model) pop() {
	if len(m.panels) <= 1 {
		return
	}
	m.panels = m.panels[:len(m.panels)-1]
	m.logger.Debug("pop", "depth", len(m.panels))
	m.ctrl.SetChildren(m.panels)
}

// refresh takes a new frame from the controller. While the controller
// animates, the screen eases from wherever it currently is to the new frame;
// otherwise it snaps.
func (m *Model) refresh() tea.Cmd {
	f := m.ctrl.Render()
	now := m.opts.Now()

	if f.Phase == hierarchy.Animating && f.Measured && m.target.Measured {
		m.tween = &tween{
			from:     m.scene(now),
			to:       sceneOf(f),
			start:    now,
			duration: m.opts.AnimationDuration,
		}
		m.target = f
		if m.ticking {
			return nil
		}
		m.ticking = true
		return m.tick()
	}
	m.tween = nil
	m.target = f
	return nil
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FrameRate), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// scene returns what should be on screen at now.
func (m *Model) scene(now time.Time) scene {
	if m.tween != nil {
		return m.tween.at(now)
	}
	return sceneOf(m.target)
}

// Close unmounts the controller. The model must not be used afterwards.
func (m *Model) Close() {
	m.quitting = true
	m.ctrl.Unmount()
}

// Path returns the directory of the active panel.
func (m *Model) Path() string {
	return m.active().Dir
}
