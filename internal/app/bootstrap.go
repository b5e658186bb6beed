package app

import (
	"io"
	"os"

	"github.com/dshills/eztable/internal/config"
	"github.com/dshills/eztable/internal/dispatcher"
	"github.com/dshills/eztable/internal/event"
	"github.com/dshills/eztable/internal/input/keymap"
	"github.com/dshills/eztable/internal/tableedit"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config. Load errors are reported once the logger exists and the
	// defaults stay in effect.
	loadErr := app.initConfig()

	// 2. Logger
	if err := app.initLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	if loadErr != nil {
		app.logger.Warn("config not loaded, using defaults", "path", app.config.Path(), "error", loadErr)
	}
	if err := app.config.Validate(); err != nil {
		app.logger.Warn("invalid settings replaced by defaults", "error", err)
	}

	// 3. Event bus
	app.bus = event.NewBus()

	// 4. Dispatcher with logging and event hooks
	app.dispatcher = dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	app.dispatcher.RegisterPostHook(dispatcher.NewLoggingHook(app.logger.WithComponent("dispatcher")))
	app.dispatcher.RegisterPostHook(newEventHook(app.bus))

	// 5. Table commands
	tc := app.config.Table()
	app.commands = tableedit.New(
		tableedit.WithTableOptions(tc.Options()...),
		tableedit.WithLineBreak(tc.LineBreak),
	)
	if err := tableedit.Register(app.dispatcher, app.commands, app.config.Keymap().Accelerators); err != nil {
		return &InitError{Component: "table commands", Err: err}
	}

	// 6. Keymaps: command accelerators stay active; the table keymap is
	// toggled by the tracker.
	app.keymaps = keymap.NewRegistry()
	if err := app.keymaps.Register(tableedit.GlobalKeymap(app.dispatcher)); err != nil {
		return &InitError{Component: "keymaps", Err: err}
	}
	if err := app.keymaps.Activate(tableedit.GlobalKeymapName); err != nil {
		return &InitError{Component: "keymaps", Err: err}
	}

	// 7. Subscriptions
	if err := app.subscribe(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}
	return nil
}

func (app *Application) initConfig() error {
	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	opts := []config.Option{config.WithFile(path)}
	if app.opts.Environ != nil {
		opts = append(opts, config.WithEnviron(app.opts.Environ))
	}
	app.config = config.New(opts...)

	for p, v := range app.opts.Overrides {
		if err := app.config.SetArg(p, v); err != nil {
			return err
		}
	}
	if app.opts.LogLevel != "" {
		if err := app.config.SetArg("logging.level", app.opts.LogLevel); err != nil {
			return err
		}
	}
	return app.config.Load()
}

func (app *Application) initLogger() error {
	lc := app.config.Logging()

	var out io.Writer = os.Stderr
	switch {
	case app.opts.LogOutput != nil:
		out = app.opts.LogOutput
	case lc.File != "":
		f, err := openLogFile(lc.File)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(lc.Level)
	cfg.Output = out
	app.logger = NewLogger(cfg)
	return nil
}
