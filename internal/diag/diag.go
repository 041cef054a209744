// Package diag collects non-fatal pipeline diagnostics. Warnings are logged
// through slog and recorded so callers (and tests) can inspect what the
// pipeline decided to skip, rename, or ignore.
package diag

import (
	"fmt"
	"log/slog"
)

// Diagnostic is one recorded warning, scoped to the target type that was
// being processed when it was raised.
type Diagnostic struct {
	Target  string
	Message string
}

// Reporter accumulates diagnostics for one processing round.
type Reporter struct {
	log     *slog.Logger
	entries []Diagnostic
}

// NewReporter returns a Reporter logging through l. A nil l falls back to
// slog.Default.
func NewReporter(l *slog.Logger) *Reporter {
	if l == nil {
		l = slog.Default()
	}
	return &Reporter{log: l}
}

// Warnf records a diagnostic against target and logs it.
func (r *Reporter) Warnf(target, format string, args ...any) {
	d := Diagnostic{Target: target, Message: fmt.Sprintf(format, args...)}
	r.entries = append(r.entries, d)
	r.log.Warn(d.Message, "type", target)
}

// Diagnostics returns all recorded entries in order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.entries
}

// ForTarget returns the diagnostics recorded against one target type.
func (r *Reporter) ForTarget(target string) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.entries {
		if d.Target == target {
			out = append(out, d)
		}
	}
	return out
}
