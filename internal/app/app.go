// Package app is the terminal editor built on the text engine. It wires
// configuration, logging, the document and its history, the renderer and
// the keymap together and runs the event loop.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/textcore/internal/config"
	"github.com/dshills/textcore/internal/logging"
	"github.com/dshills/textcore/internal/renderer/backend"
	"github.com/dshills/textcore/internal/renderer/core"
	"github.com/dshills/textcore/internal/renderer/gutter"
	"github.com/dshills/textcore/internal/renderer/view"
	"github.com/dshills/textcore/internal/script"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses the
	// defaults.
	ConfigPath string

	// File is the file to edit. Empty opens a scratch document.
	File string

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogOutput receives log output. When nil, logs go to the configured
	// log file, or nowhere.
	LogOutput io.Writer

	// ReadOnly refuses edits and saves.
	ReadOnly bool

	// Keymap replaces the default bindings.
	Keymap *Keymap
}

// Application is the editor: one document shown in one view.
type Application struct {
	mu sync.RWMutex

	cfg     *config.Config
	logger  *logging.Logger
	logFile *os.File

	doc     *Document
	keymap  *Keymap
	backend backend.Backend
	view    *view.View
	metrics *Metrics

	width, height int
	status        string
	quitArmed     bool

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once

	opts Options
}

// New loads the configuration and the document. A configuration that
// fails to load is reported in the status line and replaced by the
// defaults.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		keymap:  opts.Keymap,
		done:    make(chan struct{}),
		metrics: NewMetrics(),
	}
	if app.keymap == nil {
		app.keymap = DefaultKeymap()
	}

	cfg, cfgErr := app.loadConfig()
	app.cfg = cfg

	if err := app.initLogger(); err != nil {
		return nil, err
	}
	if cfgErr != nil {
		app.logger.Warn("config %s: %v; using defaults", opts.ConfigPath, cfgErr)
		app.status = "config: " + cfgErr.Error()
	}

	if opts.File != "" {
		doc, err := OpenDocument(opts.File, cfg, app.logger)
		if err != nil {
			app.Close()
			return nil, &InitError{Component: "document", Err: err}
		}
		app.doc = doc
	} else {
		app.doc = NewScratchDocument(cfg, app.logger)
	}
	app.doc.ReadOnly = opts.ReadOnly

	app.view = view.New(app.doc.Engine, 0, 0, 80, 23,
		view.WithTabWidth(cfg.Editor.TabWidth),
		view.WithGutter(newGutter(cfg)),
		view.WithTheme(themeFor(cfg)),
	)
	app.logger.Info("opened %s (%d rows)", app.doc.Name, app.doc.Engine.NumRows())
	return app, nil
}

func (app *Application) loadConfig() (*config.Config, error) {
	if app.opts.ConfigPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return config.Default(), err
	}
	return cfg, nil
}

func (app *Application) initLogger() error {
	level := app.cfg.LogLevel()
	if app.opts.LogLevel != "" {
		l, err := logging.ParseLevel(app.opts.LogLevel)
		if err != nil {
			return &InitError{Component: "logger", Err: err}
		}
		level = l
	}

	out := app.opts.LogOutput
	if out == nil && app.cfg.Log.File != "" {
		f, err := os.OpenFile(app.cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return &InitError{Component: "logger", Err: err}
		}
		app.logFile = f
		out = f
	}
	if out == nil {
		out = io.Discard
	}

	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Output = out
	app.logger = logging.New(lc)
	return nil
}

func newGutter(cfg *config.Config) *gutter.Formatter {
	if !cfg.Gutter.Enabled {
		return nil
	}
	return gutter.New(gutter.Options{
		MinWidth:  cfg.Gutter.MinWidth,
		Relative:  cfg.Gutter.Relative,
		CacheSize: cfg.Gutter.CacheSize,
	})
}

// themeFor converts the configured palette into view styles, falling back
// to the terminal's colors when the palette is invalid.
func themeFor(cfg *config.Config) view.Theme {
	p, err := cfg.Theme.Palette()
	if err != nil {
		return view.DefaultTheme()
	}
	fg := core.ColorFrom(p.Foreground)
	bg := core.ColorFrom(p.Background)
	return view.Theme{
		Text:      core.Style{Foreground: fg, Background: bg},
		Selection: core.Style{Foreground: fg, Background: core.ColorFrom(p.Selection)},
		Gutter:    core.Style{Foreground: core.ColorFrom(p.Gutter), Background: bg},
		Caret:     core.Style{Foreground: bg, Background: core.ColorFrom(p.Caret)},
	}
}

// SetBackend sets the terminal backend.
// Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run starts the event loop and blocks until the user quits, ctx is done
// or Shutdown is called.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer func() { app.logger.Debug("session: %s", app.metrics.Snapshot()) }()

	if app.backend == nil {
		return ErrNoBackend
	}
	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reloads := make(chan reload, 1)
	if app.opts.ConfigPath != "" {
		err := config.Watch(ctx, app.opts.ConfigPath, config.DefaultDebounce, func(cfg *config.Config, err error) {
			select {
			case reloads <- reload{cfg: cfg, err: err}:
			default:
			}
		})
		if err != nil {
			app.logger.Warn("config watch: %v", err)
		}
	}

	app.resize(app.backend.Size())
	app.render()
	events := app.startInputPolling(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case r := <-reloads:
			app.reload(r.cfg, r.err)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			timer := StartTimer()
			err := app.handleBackendEvent(ev)
			app.metrics.RecordEvent(timer.Elapsed(), err != nil && !errors.Is(err, ErrQuit))
			if err != nil {
				if errors.Is(err, ErrQuit) {
					app.logger.Info("quit")
					return nil
				}
				app.logger.Debug("%v", err)
				app.setStatus(err.Error())
			}
		}
		app.render()
	}
}

// startInputPolling forwards backend events until ctx is done. Shutting
// the backend down unblocks PollEvent.
func (app *Application) startInputPolling(ctx context.Context) <-chan backend.Event {
	events := make(chan backend.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := app.backend.PollEvent()
			if ctx.Err() != nil {
				return
			}
			if ev.Type == backend.EventNone {
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events
}

type reload struct {
	cfg *config.Config
	err error
}

func (app *Application) reload(cfg *config.Config, err error) {
	if err != nil {
		app.logger.Warn("config reload failed: %v", err)
		app.setStatus("config: " + err.Error())
		return
	}
	app.applyConfig(cfg)
	app.logger.Info("config reloaded from %s", app.opts.ConfigPath)
	app.setStatus("config reloaded")
}

// applyConfig installs cfg. The undo coalescing window only applies to
// documents opened afterwards.
func (app *Application) applyConfig(cfg *config.Config) {
	app.mu.Lock()
	app.cfg = cfg
	app.mu.Unlock()

	cfg.ApplyTo(app.doc.Engine)
	app.doc.History.SetMaxEntries(cfg.Editor.UndoLimit)
	if app.opts.LogLevel == "" {
		app.logger.SetLevel(cfg.LogLevel())
	}
	app.view.SetTabWidth(cfg.Editor.TabWidth)
	app.view.SetGutter(newGutter(cfg))
	app.view.SetTheme(themeFor(cfg))
}

// RunScript runs the Lua script at path against the document.
func (app *Application) RunScript(ctx context.Context, path string) error {
	s := script.New(app.doc.History, script.WithLogger(app.logger))
	defer s.Close()

	before := app.doc.Content()
	err := s.DoFile(ctx, path)
	if app.doc.Content() != before {
		app.doc.Touch()
	}
	return err
}

// RunBatch runs a script without a terminal and saves the result.
func (app *Application) RunBatch(ctx context.Context, path string) error {
	if err := app.RunScript(ctx, path); err != nil {
		return err
	}
	if !app.doc.IsModified() {
		return nil
	}
	return app.doc.Save()
}

// Shutdown stops a running event loop.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() { close(app.done) })
}

// Close releases the log file.
func (app *Application) Close() {
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// IsRunning returns true if the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Document returns the open document.
func (app *Application) Document() *Document {
	return app.doc
}

// View returns the document view.
func (app *Application) View() *view.View {
	return app.view
}

// Metrics returns the event loop timings.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Status returns the status line message.
func (app *Application) Status() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.status
}

func (app *Application) setStatus(msg string) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.status = msg
}
