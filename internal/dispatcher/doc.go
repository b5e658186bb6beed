// Package dispatcher routes commands to handlers and owns the failure
// boundary between table logic and the host.
//
// Commands are registered with a name, a menu label and an optional
// accelerator. Dispatch looks the handler up by exact name first, then by
// namespace prefix ("table.newline" goes to the "table" namespace), runs
// it with panic recovery and always returns a handler.Result. Errors and
// panics are turned into StatusError results and logged by hooks; they
// are never propagated to the host.
//
// Basic setup:
//
//	d := dispatcher.New(dispatcher.DefaultConfig())
//	d.SetHost(doc)
//	_ = d.RegisterCommand(dispatcher.Command{
//	    Name:        "ezFormatTable",
//	    Label:       "Ez Format Table",
//	    Accelerator: "CmdOrCtrl+Shift+F",
//	    Handler:     handler.NewHandlerFunc(formatTable),
//	})
//	d.RegisterMenu(dispatcher.Menu{ID: "EzTableMenu", Location: dispatcher.MenuTools, ...})
//
//	result := d.Execute("ezFormatTable")
package dispatcher
