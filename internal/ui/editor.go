package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/eztable/internal/app"
	"github.com/dshills/eztable/internal/dispatcher/handler"
	"github.com/dshills/eztable/internal/editor"
	"github.com/dshills/eztable/internal/input/key"
	"github.com/dshills/eztable/internal/tableedit"
)

// FunctionKeys binds function keys to commands, since most terminals
// cannot report the Ctrl+Shift accelerators.
var FunctionKeys = map[key.Key]string{
	key.KeyF2: tableedit.CmdInsertTable,
	key.KeyF3: tableedit.CmdFormatTable,
	key.KeyF4: tableedit.CmdInsertNewRow,
	key.KeyF5: tableedit.CmdInsertNewCol,
	key.KeyF6: tableedit.CmdDeleteCol,
}

// Editor is an interactive terminal host for the open document.
type Editor struct {
	app    *app.Application
	screen tcell.Screen

	base      tcell.Style
	highlight tcell.Style
	status    tcell.Style
	tabWidth  int

	top     int
	left    int
	message string
	quit    bool
	palette palette
}

// New creates an editor on screen. A nil screen opens the terminal.
func New(a *app.Application, screen tcell.Screen) (*Editor, error) {
	if a.Document() == nil {
		return nil, app.ErrNoDocument
	}
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
		screen = s
	}

	ui := a.Config().UI()
	e := &Editor{
		app:       a,
		screen:    screen,
		base:      tcell.StyleDefault,
		highlight: highlightStyle(ui.Highlight),
		status:    tcell.StyleDefault.Reverse(true),
		tabWidth:  ui.TabWidth,
		message:   "^S save  ^Q quit  ^Z undo  F1 commands  F7 format all",
	}
	if e.tabWidth < 1 {
		e.tabWidth = 1
	}
	return e, nil
}

// highlightStyle picks a foreground that stays readable on c.
func highlightStyle(c colorful.Color) tcell.Style {
	r, g, b := c.Clamped().RGB255()
	fg := tcell.ColorWhite
	if _, _, l := c.Hcl(); l > 0.6 {
		fg = tcell.ColorBlack
	}
	return tcell.StyleDefault.
		Background(tcell.NewRGBColor(int32(r), int32(g), int32(b))).
		Foreground(fg)
}

// Screen returns the screen the editor draws on.
func (e *Editor) Screen() tcell.Screen { return e.screen }

// Message returns the status message.
func (e *Editor) Message() string { return e.message }

// Run initializes the screen and processes events until the user quits
// or ctx is cancelled.
func (e *Editor) Run(ctx context.Context) error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer e.screen.Fini()

	stop := context.AfterFunc(ctx, func() {
		_ = e.screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
	})
	defer stop()

	for !e.quit {
		e.Draw()
		ev := e.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if intr, ok := ev.(*tcell.EventInterrupt); ok {
			if err, ok := intr.Data().(error); ok && err != nil {
				return err
			}
		}
		e.HandleEvent(ev)
	}
	return nil
}

// HandleEvent applies one screen event.
func (e *Editor) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if kev, ok := ConvertKey(ev); ok {
			e.HandleKey(kev)
		}
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventInterrupt:
		e.quit = true
	}
}

// HandleKey applies one key press. An open palette takes every key.
// Otherwise editor keys come first, then the function key commands,
// then the application keymaps, then plain editing.
func (e *Editor) HandleKey(ev key.Event) {
	doc := e.app.Document()

	if e.palette.open {
		if name, ok := e.palette.handleKey(ev); ok {
			e.result(name, e.app.Execute(name))
		}
		return
	}

	if ev.Key == key.KeyRune && ev.Modifiers == key.ModCtrl {
		switch ev.Rune {
		case 'q':
			e.quit = true
			return
		case 's':
			if err := e.app.Save(); err != nil {
				e.message = err.Error()
			} else {
				e.message = "saved " + doc.Path()
			}
			return
		case 'z':
			e.report("undo", doc.Undo())
			return
		case 'y':
			e.report("redo", doc.Redo())
			return
		}
	}

	if ev.Modifiers == key.ModNone {
		if ev.Key == key.KeyF1 {
			e.palette.show(e.app.Dispatcher().Commands())
			return
		}
		if name, ok := FunctionKeys[ev.Key]; ok {
			e.result(name, e.app.Execute(name))
			return
		}
		if ev.Key == key.KeyF7 {
			changed, err := e.app.FormatAll()
			switch {
			case err != nil:
				e.message = err.Error()
			case changed:
				e.message = "formatted all tables"
			default:
				e.message = "tables already formatted"
			}
			return
		}
	}

	if res, ok := e.app.HandleKey(ev); ok {
		e.result(ev.String(), res)
		return
	}

	e.edit(doc, ev)
}

func (e *Editor) edit(doc *editor.Document, ev key.Event) {
	var err error
	switch ev.Key {
	case key.KeyRune:
		if ev.IsChar() {
			err = doc.InsertText(string(ev.Rune))
		}
	case key.KeyEnter:
		err = doc.InsertText("\n")
	case key.KeyTab:
		err = doc.InsertText("\t")
	case key.KeyBackspace:
		err = doc.Backspace()
	case key.KeyLeft:
		doc.Move(editor.MotionLeft)
	case key.KeyRight:
		doc.Move(editor.MotionRight)
	case key.KeyUp:
		doc.Move(editor.MotionUp)
	case key.KeyDown:
		doc.Move(editor.MotionDown)
	case key.KeyHome:
		doc.Move(editor.MotionLineStart)
	case key.KeyEnd:
		doc.Move(editor.MotionLineEnd)
	case key.KeyEscape:
		e.message = ""
	}
	if err != nil {
		e.message = err.Error()
	}
}

func (e *Editor) result(name string, res handler.Result) {
	switch {
	case res.Status == handler.StatusError && res.Error != nil:
		e.message = fmt.Sprintf("%s: %v", name, res.Error)
	case res.Message != "":
		e.message = fmt.Sprintf("%s: %s", name, res.Message)
	default:
		e.message = fmt.Sprintf("%s: %s", name, res.Status)
	}
}

func (e *Editor) report(what string, err error) {
	if err != nil {
		e.message = fmt.Sprintf("%s: %v", what, err)
		return
	}
	e.message = what
}
