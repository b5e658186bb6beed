package tableedit

import (
	"fmt"

	"github.com/dshills/eztable/internal/dispatcher"
	"github.com/dshills/eztable/internal/dispatcher/handler"
	"github.com/dshills/eztable/internal/editor"
	"github.com/dshills/eztable/internal/input/keymap"
)

// Menu identifiers.
const (
	MenuID    = "EzTableMenu"
	MenuLabel = "EzTable"
)

// GlobalKeymapName holds the command accelerators.
const GlobalKeymapName = "eztable"

// Spec describes one registered command.
type Spec struct {
	Name        string
	Label       string
	Accelerator string
	Run         func(c *Commands, h editor.Host) handler.Result
}

// Specs lists the commands in menu order with their default accelerators.
var Specs = []Spec{
	{CmdInsertTable, "Ez Insert Table", "CmdOrCtrl+Shift+I", (*Commands).InsertTable},
	{CmdFormatTable, "Ez Format Table", "CmdOrCtrl+Shift+F", (*Commands).FormatTable},
	{CmdInsertNewRow, "Ez Insert New Row", "CmdOrCtrl+Enter", (*Commands).InsertNewRow},
	{CmdInsertNewCol, "Ez Insert New Column", "CmdOrCtrl+Tab", (*Commands).InsertNewCol},
	{CmdDeleteCol, "Ez Delete Column", "", (*Commands).DeleteCol},
}

// contextMenu lists the commands offered in the editor context menu.
var contextMenu = []string{CmdFormatTable, CmdDeleteCol}

// Register adds the table commands, menus and in-table actions to d.
// accelerators overrides default accelerators by command name; an empty
// value removes the binding.
func Register(d *dispatcher.Dispatcher, c *Commands, accelerators map[string]string) error {
	names := make([]string, 0, len(Specs))
	for _, s := range Specs {
		accel := s.Accelerator
		if v, ok := accelerators[s.Name]; ok {
			accel = v
		}
		err := d.RegisterCommand(dispatcher.Command{
			Name:        s.Name,
			Label:       s.Label,
			Accelerator: accel,
			Handler:     commandHandler(c, s.Run),
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", s.Name, err)
		}
		names = append(names, s.Name)
	}

	d.RegisterMenu(dispatcher.Menu{ID: MenuID, Label: MenuLabel, Location: dispatcher.MenuTools, Commands: names})
	d.RegisterMenu(dispatcher.Menu{ID: MenuID + "Context", Label: MenuLabel, Location: dispatcher.MenuEditorContext, Commands: contextMenu})

	ns := handler.NewBaseNamespaceHandler("table")
	ns.Register(ActionNewline, func(_ handler.Action, h editor.Host) handler.Result {
		return runCommand(h, func() handler.Result { return c.Newline(h) })
	})
	ns.Register(ActionNextCell, func(_ handler.Action, h editor.Host) handler.Result {
		return runCommand(h, func() handler.Result { return c.NextCell(h) })
	})
	d.RegisterNamespace("table", ns)
	return nil
}

// GlobalKeymap builds a keymap from the accelerators of the registered
// table commands. Commands without an accelerator are skipped.
func GlobalKeymap(d *dispatcher.Dispatcher) *keymap.Keymap {
	km := keymap.NewKeymap(GlobalKeymapName).WithSource("default")
	for _, s := range Specs {
		cmd, ok := d.Command(s.Name)
		if !ok || cmd.Accelerator == "" {
			continue
		}
		km.AddBinding(keymap.NewBinding(cmd.Accelerator, cmd.Name).WithDescription(cmd.Label))
	}
	return km
}

func commandHandler(c *Commands, run func(*Commands, editor.Host) handler.Result) handler.Handler {
	return handler.NewHandlerFunc(func(_ handler.Action, h editor.Host) handler.Result {
		return runCommand(h, func() handler.Result { return run(c, h) })
	})
}

// runCommand runs fn inside the host's command scope when it has one.
func runCommand(h editor.Host, fn func() handler.Result) handler.Result {
	r, ok := h.(editor.CommandRunner)
	if !ok {
		return fn()
	}
	var res handler.Result
	r.RunCommand(func() { res = fn() })
	return res
}
