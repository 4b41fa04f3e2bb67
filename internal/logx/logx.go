// Package logx wraps log/slog with a component-gating layer: each
// log line names a subsystem (bus, cpu, dma, gpu), and only the
// subsystems enabled on the command line are written at debug level.
package logx

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// LevelTrace sits one step below slog's Debug, for the --verbosity
// trace option.
const LevelTrace = slog.Level(-8)

// Component names a subsystem whose debug output can be independently
// enabled.
type Component string

const (
	ComponentNone Component = "none"
	ComponentBus  Component = "bus"
	ComponentCPU  Component = "cpu"
	ComponentDMA  Component = "dma"
	ComponentGPU  Component = "gpu"
)

// Handler is an slog.Handler that only emits debug-level records for
// components explicitly enabled via SetDebug. Debug-level records
// that carry no component attribute are not filtered.
type Handler struct {
	out     io.Writer
	h       slog.Handler
	mu      *sync.Mutex
	enabled map[Component]bool
}

func NewHandler(w io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &Handler{
		out:     w,
		h:       slog.NewTextHandler(w, opts),
		mu:      &sync.Mutex{},
		enabled: make(map[Component]bool),
	}
}

// SetDebug enables debug-level logging for the given components; an
// unlisted component's debug records are dropped.
func (h *Handler) SetDebug(components ...Component) {
	for _, c := range components {
		h.enabled[c] = true
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithAttrs(attrs), mu: h.mu, enabled: h.enabled}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithGroup(name), mu: h.mu, enabled: h.enabled}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level <= slog.LevelDebug {
		comp := componentOf(r)
		if comp != "" && !h.enabled[comp] {
			return nil
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.h.Handle(ctx, r)
}

// componentOf finds the "component" attribute passed with the record
// itself (logger.Debug(msg, "component", ...)), if any. Attributes
// attached through Logger.With are not inspected.
func componentOf(r slog.Record) Component {
	var comp Component
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			comp = Component(strings.ToLower(a.Value.String()))
			return false
		}
		return true
	})
	return comp
}

// ParseComponent maps a CLI --debug value to a Component, defaulting
// to ComponentNone on an unrecognized string.
func ParseComponent(s string) Component {
	switch Component(strings.ToLower(s)) {
	case ComponentBus, ComponentCPU, ComponentDMA, ComponentGPU:
		return Component(strings.ToLower(s))
	default:
		return ComponentNone
	}
}

// ParseLevel maps a CLI --verbosity value to an slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}
