// Package app wires configuration, logging, the event bus, the command
// dispatcher and the table editing commands around one open document.
package app

import (
	"io"
	"os"
	"sync"

	"github.com/dshills/eztable/internal/config"
	"github.com/dshills/eztable/internal/dispatcher"
	"github.com/dshills/eztable/internal/dispatcher/handler"
	"github.com/dshills/eztable/internal/editor"
	"github.com/dshills/eztable/internal/event"
	"github.com/dshills/eztable/internal/input/key"
	"github.com/dshills/eztable/internal/input/keymap"
	"github.com/dshills/eztable/internal/table"
	"github.com/dshills/eztable/internal/tableedit"
)

// Application is the central coordinator for the eztable components.
type Application struct {
	mu sync.RWMutex

	config     *config.Config
	logger     *Logger
	logFile    io.Closer
	bus        *event.Bus
	dispatcher *dispatcher.Dispatcher
	keymaps    *keymap.Registry
	commands   *tableedit.Commands

	doc     *editor.Document
	tracker *tableedit.Tracker
	detach  func()

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file. Empty uses config.DefaultPath.
	ConfigPath string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// LogOutput overrides the configured log destination when set.
	LogOutput io.Writer

	// Environ replaces os.Environ for configuration.
	Environ func() []string

	// Overrides are applied as command-line settings, keyed by dotted path.
	Overrides map[string]any
}

// New creates an Application with no document open.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Config returns the configuration.
func (app *Application) Config() *config.Config { return app.config }

// Logger returns the application's logger.
func (app *Application) Logger() *Logger { return app.logger }

// Bus returns the event bus shared by every document.
func (app *Application) Bus() *event.Bus { return app.bus }

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher { return app.dispatcher }

// Keymaps returns the keymap registry.
func (app *Application) Keymaps() *keymap.Registry { return app.keymaps }

// TableOptions returns the configured render options.
func (app *Application) TableOptions() []table.Option {
	return app.config.Table().Options()
}

// Document returns the open document or nil.
func (app *Application) Document() *editor.Document {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.doc
}

// Tracker returns the table state tracker of the open document or nil.
func (app *Application) Tracker() *tableedit.Tracker {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.tracker
}

// Open reads path and makes it the open document.
func (app *Application) Open(path string) (*editor.Document, error) {
	doc, err := editor.OpenDocument(path, editor.WithBus(app.bus))
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	if err := app.SetDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// OpenString makes a document holding text the open document.
func (app *Application) OpenString(text string) (*editor.Document, error) {
	doc := editor.NewDocumentFromString(text, editor.WithBus(app.bus))
	if err := app.SetDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetDocument replaces the open document. The document must publish on
// the application bus.
func (app *Application) SetDocument(doc *editor.Document) error {
	tracker, err := tableedit.NewTracker(doc, app.keymaps, app.bus,
		tableedit.WithTrackerLogger(app.logger.WithComponent("tracker")))
	if err != nil {
		return &InitError{Component: "table tracker", Err: err}
	}

	app.mu.Lock()
	if app.detach != nil {
		app.detach()
	}
	app.doc = doc
	app.tracker = tracker
	app.detach = nil
	app.mu.Unlock()

	app.keymaps.Deactivate(tableedit.KeymapName)
	app.dispatcher.SetHost(doc)

	detach, err := tracker.Attach(doc)
	if err != nil {
		return &InitError{Component: "table tracker", Err: err}
	}
	app.mu.Lock()
	app.detach = detach
	app.mu.Unlock()

	app.logger.Debug("document opened", "path", doc.Path(), "lines", doc.LineCount())
	return nil
}

// Execute runs a command by name against the open document.
func (app *Application) Execute(name string) handler.Result {
	if app.Document() == nil {
		return handler.Error(ErrNoDocument)
	}
	return app.dispatcher.DispatchTo(handler.Action{Name: name, Source: "app"}, app.Document())
}

// HandleKey looks ev up in the active keymaps and dispatches the bound
// action. It reports false when no binding matched.
func (app *Application) HandleKey(ev key.Event) (handler.Result, bool) {
	m, ok := app.keymaps.Lookup(ev)
	if !ok {
		return handler.Result{}, false
	}
	doc := app.Document()
	if doc == nil {
		return handler.Error(ErrNoDocument), true
	}
	return app.dispatcher.DispatchTo(handler.Action{
		Name:   m.Action,
		Args:   m.Args,
		Source: "keymap:" + m.Keymap,
	}, doc), true
}

// FormatAll formats every table in the open document.
func (app *Application) FormatAll() (bool, error) {
	doc := app.Document()
	if doc == nil {
		return false, ErrNoDocument
	}
	return doc.FormatAll(app.TableOptions()...)
}

// Save writes the open document to its path.
func (app *Application) Save() error {
	doc := app.Document()
	if doc == nil {
		return ErrNoDocument
	}
	if err := doc.Save(); err != nil {
		return NewOperationError("save", doc.Path(), err)
	}
	app.logger.Info("saved", "path", doc.Path())
	return nil
}

// Close detaches the document and releases the log file.
func (app *Application) Close() {
	app.mu.Lock()
	if app.detach != nil {
		app.detach()
		app.detach = nil
	}
	closer := app.logFile
	app.logFile = nil
	app.mu.Unlock()

	if closer != nil {
		_ = closer.Close()
	}
}

func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
