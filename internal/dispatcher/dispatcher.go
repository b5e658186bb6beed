package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/eztable/internal/dispatcher/handler"
	"github.com/dshills/eztable/internal/editor"
)

// Dispatcher routes commands to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	router   *Router

	host editor.Host

	// commands holds command metadata in registration order.
	commands []Command
	byName   map[string]int
	menus    []Menu

	config  Config
	metrics *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		byName:   make(map[string]int),
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetHost sets the host commands run against by default.
func (d *Dispatcher) SetHost(host editor.Host) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.host = host
}

// Host returns the default host.
func (d *Dispatcher) Host() editor.Host {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.host
}

// RegisterCommand registers a command and its handler.
func (d *Dispatcher) RegisterCommand(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byName[cmd.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.Name)
	}
	d.byName[cmd.Name] = len(d.commands)
	d.commands = append(d.commands, cmd)
	d.registry.Register(cmd.Name, cmd.Handler)
	return nil
}

// SetAccelerator changes the accelerator of a registered command.
func (d *Dispatcher) SetAccelerator(name, accel string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, ok := d.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	d.commands[i].Accelerator = accel
	return nil
}

// Command returns a registered command by name.
func (d *Dispatcher) Command(name string) (Command, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.byName[name]
	if !ok {
		return Command{}, false
	}
	return d.commands[i], true
}

// Commands returns all registered commands in registration order.
func (d *Dispatcher) Commands() []Command {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Command, len(d.commands))
	copy(out, d.commands)
	return out
}

// RegisterMenu registers a menu. Unknown command names are kept and
// skipped when the menu is resolved.
func (d *Dispatcher) RegisterMenu(menu Menu) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.menus = append(d.menus, menu)
}

// Menus returns the registered menus at a location.
func (d *Dispatcher) Menus(loc MenuLocation) []Menu {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Menu
	for _, m := range d.menus {
		if m.Location == loc {
			out = append(out, m)
		}
	}
	return out
}

// MenuItems resolves a menu's command names to labels and accelerators.
func (d *Dispatcher) MenuItems(menu Menu) []MenuItem {
	d.mu.RLock()
	defer d.mu.RUnlock()
	items := make([]MenuItem, 0, len(menu.Commands))
	for _, name := range menu.Commands {
		i, ok := d.byName[name]
		if !ok {
			continue
		}
		c := d.commands[i]
		items = append(items, MenuItem{Command: c.Name, Label: c.Label, Accelerator: c.Accelerator})
	}
	return items
}

// RegisterHandler registers a handler for an exact action name without
// command metadata.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.RegisterNamespace(namespace, h)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// CanDispatch reports whether a handler exists for the action name.
func (d *Dispatcher) CanDispatch(name string) bool {
	return d.registry.Has(name) || d.router.CanRoute(name)
}

// Execute dispatches a command by name against the default host.
func (d *Dispatcher) Execute(name string) handler.Result {
	return d.Dispatch(handler.Action{Name: name})
}

// Dispatch executes an action against the default host.
func (d *Dispatcher) Dispatch(action handler.Action) handler.Result {
	return d.DispatchTo(action, d.Host())
}

// DispatchTo executes an action against host. It never panics.
func (d *Dispatcher) DispatchTo(action handler.Action, host editor.Host) handler.Result {
	start := time.Now()

	d.mu.RLock()
	pre := append([]PreDispatchHook(nil), d.preHooks...)
	post := append([]PostDispatchHook(nil), d.postHooks...)
	d.mu.RUnlock()

	var result handler.Result
	switch {
	case host == nil:
		result = handler.Error(fmt.Errorf("%w: %s", ErrNoHost, action.Name))
	case !runPreHooks(pre, &action, host):
		result = handler.CancelledWithMessage("cancelled by hook")
	default:
		h := d.registry.Get(action.Name)
		if h == nil {
			h = d.router.Route(action.Name)
		}
		if h == nil {
			result = handler.Error(fmt.Errorf("%w: %s", ErrUnknownCommand, action.Name))
		} else if d.config.RecoverFromPanic {
			result = d.executeWithRecovery(h, action, host)
		} else {
			result = h.Handle(action, host)
		}
	}

	for _, h := range post {
		h.PostDispatch(&action, host, &result)
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(start), result.Status)
	}
	return result
}

func runPreHooks(hooks []PreDispatchHook, action *handler.Action, host editor.Host) bool {
	for _, h := range hooks {
		if !h.PreDispatch(action, host) {
			return false
		}
	}
	return true
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action handler.Action, host editor.Host) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			result = handler.Error(fmt.Errorf("%w: %s: %v\n%s", ErrPanic, action.Name, r, stack[:n]))
			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()
	return h.Handle(action, host)
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Router returns the namespace router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector (nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
