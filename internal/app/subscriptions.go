package app

import (
	"context"

	"github.com/dshills/eztable/internal/dispatcher/handler"
	"github.com/dshills/eztable/internal/editor"
	"github.com/dshills/eztable/internal/event"
)

// eventHook publishes command.executed after every dispatch.
type eventHook struct {
	bus *event.Bus
}

func newEventHook(bus *event.Bus) *eventHook {
	return &eventHook{bus: bus}
}

// PostDispatch implements dispatcher.PostDispatchHook.
func (h *eventHook) PostDispatch(action *handler.Action, _ editor.Host, result *handler.Result) {
	_ = h.bus.Publish(context.Background(), event.NewEvent(event.TopicCommandExecuted, event.CommandExecuted{
		Name:   action.Name,
		Status: result.Status.String(),
	}, "dispatcher"))
}

// subscribe logs table state transitions.
func (app *Application) subscribe() error {
	log := app.logger.WithComponent("tableedit")
	_, err := app.bus.SubscribeFunc(event.TopicTableStateChanged, func(_ context.Context, ev any) error {
		e, ok := ev.(event.Event[event.TableStateChanged])
		if !ok {
			return nil
		}
		if e.Payload.InTable {
			log.Debug("entered table", "start", e.Payload.StartLine, "end", e.Payload.EndLine)
		} else {
			log.Debug("left table")
		}
		return nil
	})
	return err
}
