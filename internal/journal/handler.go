package journal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
)

// exportJSONHandler is a custom slog handler that outputs records in JSON
// format with time in "2006-01-02 15:04:05" format and without the log level
// field. All attributes are written at the top level of the object, one
// record per line (JSONL format).
type exportJSONHandler struct {
	opts slog.HandlerOptions // handler options (not actively used, but stored)
	out  io.Writer           // target writer for JSON record output
}

// NewExportJSONHandler creates a new instance of exportJSONHandler.
// Parameters:
// - out: writer where JSON lines will be written (e.g., rotating file)
// - opts: slog.HandlerOptions (can be nil)
//
// Returns a ready-to-use handler.
func NewExportJSONHandler(out io.Writer, opts *slog.HandlerOptions) *exportJSONHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	return &exportJSONHandler{
		opts: *opts,
		out:  out,
	}
}

// Handle implements the slog.Handler interface: serializes a record to JSON
// with the required time format and without the log level.
func (h *exportJSONHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]interface{})

	attrs["time"] = r.Time.Format("2006-01-02 15:04:05")

	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "" && a.Value.Any() != nil {
			attrs[a.Key] = a.Value.Any()
		}

		return true
	})

	data, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	_, err = h.out.Write(append(data, '\n'))
	return err
}

// WithAttrs is not supported
func (h *exportJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	panic("WithAttrs is not supported by exportJSONHandler")
}

// WithGroup is not supported
func (h *exportJSONHandler) WithGroup(name string) slog.Handler {
	panic("WithGroup is not supported by exportJSONHandler")
}

// Enabled determines whether the handler should process a record of the given level.
// Always returns true — all levels are allowed.
func (h *exportJSONHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}
