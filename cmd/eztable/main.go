// Package main is the entry point for eztable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/eztable/internal/app"
	"github.com/dshills/eztable/internal/editor"
	"github.com/dshills/eztable/internal/plugin/lua"
	"github.com/dshills/eztable/internal/report"
	"github.com/dshills/eztable/internal/ui"
	"github.com/dshills/eztable/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath string
	logLevel   string
	align      string
	write      bool
	inspect    bool
	query      string
	pretty     bool
	watch      bool
	script     string
	edit       bool
	version    bool
	file       string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("eztable", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&o.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&o.align, "align", "", "Cell alignment: markers or legacy")
	fs.BoolVar(&o.write, "w", false, "Write the result back to the file")
	fs.BoolVar(&o.inspect, "inspect", false, "Print a JSON report of every table")
	fs.StringVar(&o.query, "query", "", "With -inspect, print only this gjson path")
	fs.BoolVar(&o.pretty, "pretty", false, "With -inspect, indent the report")
	fs.BoolVar(&o.watch, "watch", false, "Reformat the file whenever it changes")
	fs.StringVar(&o.script, "script", "", "Run a Lua script against the document")
	fs.BoolVar(&o.edit, "edit", false, "Open the interactive terminal editor")
	fs.BoolVar(&o.version, "version", false, "Show version information")
	fs.BoolVar(&o.version, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "eztable - format and edit Markdown tables\n\n")
		fmt.Fprintf(stderr, "Usage: eztable [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  eztable README.md              Print README.md with tables formatted\n")
		fmt.Fprintf(stderr, "  eztable -w README.md           Format tables in place\n")
		fmt.Fprintf(stderr, "  cat doc.md | eztable           Format standard input\n")
		fmt.Fprintf(stderr, "  eztable -inspect -query tables.#.widths doc.md\n")
		fmt.Fprintf(stderr, "  eztable -watch notes.md        Reformat on every save\n")
		fmt.Fprintf(stderr, "  eztable -edit notes.md         Edit interactively\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		o.file = fs.Arg(0)
	default:
		return nil, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}

	modes := 0
	for _, on := range []bool{o.inspect, o.watch, o.script != "", o.edit} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return nil, errors.New("-inspect, -watch, -script and -edit are exclusive")
	}
	if (o.write || o.watch || o.edit) && o.file == "" && !o.version {
		return nil, errors.New("a file argument is required with -w, -watch and -edit")
	}
	return &o, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if o.version {
		fmt.Fprintf(stdout, "eztable %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	if o.file == "" && isTerminal(stdin) {
		fmt.Fprintln(stderr, "Error: no file given and standard input is a terminal")
		return exitUsage
	}

	appOpts := app.Options{ConfigPath: o.configPath, LogLevel: o.logLevel, Overrides: map[string]any{}}
	if o.align != "" {
		appOpts.Overrides["table.align"] = o.align
	}
	application, err := app.New(appOpts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return exitError
	}
	defer application.Close()

	switch {
	case o.watch:
		err = runWatch(ctx, application, o.file)
	case o.edit:
		err = runEdit(ctx, application, o.file)
	default:
		err = runBatch(application, o, stdin, stdout, stderr)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

// runBatch covers the one-shot modes: format, inspect and script.
func runBatch(a *app.Application, o *options, stdin io.Reader, stdout, stderr io.Writer) error {
	doc, err := openInput(a, o.file, stdin)
	if err != nil {
		return err
	}

	switch {
	case o.inspect:
		return inspect(a, doc, o, stdout)
	case o.script != "":
		if err := runScript(a, doc, o.script, stderr); err != nil {
			return err
		}
	default:
		if _, err := a.FormatAll(); err != nil {
			return err
		}
	}

	if o.write {
		return a.Save()
	}
	_, err = io.WriteString(stdout, doc.Text())
	return err
}

func openInput(a *app.Application, path string, stdin io.Reader) (*editor.Document, error) {
	if path != "" {
		return a.Open(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read standard input: %w", err)
	}
	return a.OpenString(string(data))
}

func inspect(a *app.Application, doc *editor.Document, o *options, stdout io.Writer) error {
	data, err := report.Build(doc.Path(), doc.Text(), a.TableOptions()...)
	if err != nil {
		return err
	}
	if o.query != "" {
		_, err = fmt.Fprintln(stdout, report.Query(data, o.query))
		return err
	}
	if o.pretty || isTerminal(stdout) {
		data = report.Pretty(data)
	} else {
		data = append(data, '\n')
	}
	_, err = stdout.Write(data)
	return err
}

// runScript runs a Lua file against doc. Script output goes to stderr so
// stdout carries only the document.
func runScript(a *app.Application, doc *editor.Document, path string, stderr io.Writer) error {
	state := lua.NewState(lua.WithOutput(stderr))
	defer state.Close()

	lua.NewModule(lua.Env{
		Doc:        doc,
		Dispatcher: a.Dispatcher(),
		Options:    a.TableOptions(),
	}).Register(state)

	if err := state.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

func runWatch(ctx context.Context, a *app.Application, path string) error {
	fsw, err := watcher.NewFSNotifyWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w := watcher.NewDebouncer(fsw, watcher.DefaultDebounceDelay)
	defer w.Close()

	log := a.Logger().WithComponent("watcher")
	r := watcher.NewRunner(w,
		watcher.WithLogger(log),
		watcher.WithTableOptions(a.TableOptions()...),
	)
	log.Info("watching", "path", path)
	return r.Run(ctx, path)
}

func runEdit(ctx context.Context, a *app.Application, path string) error {
	if a.Config().Logging().File == "" {
		a.Logger().SetOutput(io.Discard)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		doc := editor.NewDocumentFromString("", editor.WithPath(path), editor.WithBus(a.Bus()))
		if err := a.SetDocument(doc); err != nil {
			return err
		}
	} else if _, err := a.Open(path); err != nil {
		return err
	}

	ed, err := ui.New(a, nil)
	if err != nil {
		return err
	}
	return ed.Run(ctx)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
