package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/eztable/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics per command.
type Metrics struct {
	mu sync.RWMutex

	commands map[string]*CommandMetrics

	totalDispatches uint64
	totalErrors     uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// CommandMetrics holds metrics for one command.
type CommandMetrics struct {
	Name          string
	DispatchCount uint64
	NoOpCount     uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commands: make(map[string]*CommandMetrics),
	}
}

// RecordDispatch records one dispatch.
func (m *Metrics) RecordDispatch(name string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	cm := m.commands[name]
	if cm == nil {
		cm = &CommandMetrics{Name: name}
		m.commands[name] = cm
	}
	cm.DispatchCount++
	cm.TotalDuration += duration
	cm.LastStatus = status
	cm.LastDispatch = time.Now()
	if duration > cm.MaxDuration {
		cm.MaxDuration = duration
	}

	switch status {
	case handler.StatusError:
		m.totalErrors++
		cm.ErrorCount++
	case handler.StatusNoOp:
		cm.NoOpCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalDispatches returns the total number of dispatches.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalErrors returns the total number of error results.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// Command returns a copy of the metrics for one command, or nil.
func (m *Metrics) Command(name string) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.commands[name]
	if cm == nil {
		return nil
	}
	c := *cm
	return &c
}

// TopCommands returns the n most dispatched commands.
func (m *Metrics) TopCommands(n int) []CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]CommandMetrics, 0, len(m.commands))
	for _, cm := range m.commands {
		out = append(out, *cm)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DispatchCount != out[j].DispatchCount {
			return out[i].DispatchCount > out[j].DispatchCount
		}
		return out[i].Name < out[j].Name
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// AverageDuration returns the mean dispatch time of the command.
func (cm CommandMetrics) AverageDuration() time.Duration {
	if cm.DispatchCount == 0 {
		return 0
	}
	return cm.TotalDuration / time.Duration(cm.DispatchCount)
}
