package gnuplot

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/harun/plotpipe/internal/observability"
	"github.com/rs/zerolog"
)

// Dispatcher writes command lines to the engine. Every line is flushed
// immediately; no acknowledgment is read back.
type Dispatcher struct {
	w      *bufio.Writer
	logger zerolog.Logger
	sent   int
}

// NewDispatcher wraps the engine's input stream
func NewDispatcher(w io.Writer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		w:      bufio.NewWriter(w),
		logger: logger,
	}
}

// Send writes line plus a newline and flushes
func (d *Dispatcher) Send(line string) error {
	if _, err := d.w.WriteString(line); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	if err := d.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}
	if err := d.w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}

	d.sent++
	observability.RecordEngineCommand(commandKeyword(line))

	d.logger.Debug().
		Str("command", line).
		Msg("Engine command sent")

	return nil
}

// Sendf formats like fmt.Sprintf and sends the result. Without args the
// format is sent verbatim so that a literal % survives.
func (d *Dispatcher) Sendf(format string, args ...any) error {
	if len(args) == 0 {
		return d.Send(format)
	}
	return d.Send(fmt.Sprintf(format, args...))
}

// Sent returns the number of lines written
func (d *Dispatcher) Sent() int {
	return d.sent
}

// commandKeyword returns the first word of a command, used as a metric label
func commandKeyword(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "empty"
	}
	switch fields[0] {
	case "plot", "replot", "set", "unset", "reset":
		return fields[0]
	}
	return "other"
}
