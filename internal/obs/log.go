// Package obs wires up ambient process logging: session start/stop,
// configuration errors, and sink I/O failures. This is distinct from the
// spec-defined strobe/log sinks in pkg/simon — those are a business
// interface the sequencer writes waveform and register data through; this
// package is plain operational logging about the process itself, the way
// the teacher's cmd/z80opt reports progress with fmt.Printf, upgraded to
// structured logging with a file fan-out when requested.
package obs

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// New builds the process logger: a text handler to stderr, plus a JSON
// handler writing to logFile when one is supplied. cmd/simontool passes
// nil, so its process log goes to stderr only.
// Closing logFile, if non-nil, is the caller's responsibility.
func New(logFile io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	stderrHandler := slog.NewTextHandler(os.Stderr, opts)

	if logFile == nil {
		return slog.New(stderrHandler)
	}

	fileHandler := slog.NewJSONHandler(logFile, opts)
	return slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
}
