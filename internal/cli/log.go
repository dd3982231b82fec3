package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes timestamped lines ("14:32:01.45") to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step, such as a replay or a drawing session,
// and logs it once when it finishes.
type progress struct {
	logger *log.Logger
	op     string
	start  time.Time
}

func newProgress(l *log.Logger, op string) *progress {
	return &progress{logger: l, op: op, start: time.Now()}
}

// done logs op at info level with keyvals and the elapsed time, e.g.
//
//	14:32:01.45 INFO replayed script steps=12 shapes=3 elapsed=8ms
func (p *progress) done(keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(p.op, keyvals...)
}

type ctxKey struct{}

// withLogger attaches l to ctx for the command's RunE.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(contextOrBackground(ctx), ctxKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default when the
// command ran without the root's PersistentPreRunE.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}
