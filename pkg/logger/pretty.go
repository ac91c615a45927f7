package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// PrettyHandler prints one colored line per record with attributes as JSON.
// Meant for local development only.
type PrettyHandler struct {
	opts  *slog.HandlerOptions
	out   io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
	group string
}

func NewPrettyHandler(out io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{opts: opts, out: out, mu: &sync.Mutex{}}
}

func SetupPrettySlog() *slog.Logger {
	return slog.New(NewPrettyHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}
	return level >= min
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		if err, ok := a.Value.Any().(error); ok {
			fields[key] = err.Error()
		} else {
			fields[key] = a.Value.Any()
		}
		return true
	})

	var attrs []byte
	if len(fields) > 0 {
		b, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
		attrs = b
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := fmt.Fprintf(h.out, "%s[%s]%s %s%s%s %s %s\n",
		colorGray, r.Time.Format("15:04:05.000"), colorReset,
		levelColor(r.Level), r.Level.String(), colorReset,
		r.Message, attrs,
	)
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	next := *h
	if next.group != "" {
		name = next.group + "." + name
	}
	next.group = name
	return &next
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return colorRed
	case l >= slog.LevelWarn:
		return colorYellow
	case l >= slog.LevelInfo:
		return colorBlue
	default:
		return colorGray
	}
}
