package dispatcher

import (
	"fmt"

	"github.com/dshills/eztable/internal/dispatcher/handler"
)

// Command is a user-visible operation with a label and an optional
// accelerator.
type Command struct {
	// Name identifies the command, e.g. "ezFormatTable".
	Name string

	// Label is the text shown in menus.
	Label string

	// Accelerator is the default key binding, e.g. "CmdOrCtrl+Shift+F".
	// Empty means no binding.
	Accelerator string

	// Handler runs the command.
	Handler handler.Handler
}

// Validate checks the command definition.
func (c Command) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCommand)
	}
	if c.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidCommand, c.Name)
	}
	return nil
}

// MenuLocation says where a menu is attached.
type MenuLocation string

// Menu locations.
const (
	MenuTools         MenuLocation = "tools"
	MenuEditorContext MenuLocation = "editorContextMenu"
)

// Menu groups commands under a label at a location.
type Menu struct {
	ID       string
	Label    string
	Location MenuLocation

	// Commands lists command names in display order.
	Commands []string
}

// MenuItem is a resolved menu entry.
type MenuItem struct {
	Command     string
	Label       string
	Accelerator string
}
