package jpeg

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Control gates which categories of decode tracing get logged, the same
// way the earlier Control{Warn,Markers,Mcu,Du} toggles gated Fprintf
// tracing: here each toggle just decides whether the corresponding
// zap.Logger call is made.
type Control struct {
	Warn    bool // recoverable-anomaly toggle; no decode path consults it
	Markers bool // log every marker as it is parsed
	Mcu     bool // log per-MCU decode progress
	Du      bool // log per-data-unit (block) decode progress
}

// DefaultControl enables only warnings, the quietest useful setting.
func DefaultControl() *Control { return &Control{Warn: true} }

func nopLogger() *zap.Logger { return zap.NewNop() }

// newLogger builds a development-style console logger writing to w at
// the given level.
func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core)
}

// cumulativeWriter wraps an io.Writer, accumulating the total byte count
// written and the first error encountered across many Write calls, so a
// caller assembling an output file from dozens of small writes (a PPM
// header, then one pixel at a time) can check a single error at the end.
type cumulativeWriter struct {
	w     io.Writer
	total int64
	err   error
}

func (cw *cumulativeWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.total += int64(n)
	if err != nil {
		cw.err = err
	}
	return n, err
}
