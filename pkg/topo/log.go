package topo

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Operators run single-threaded per body,
// but bodies on different goroutines share this hook.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger configures the logger used by the Euler operators.
// By default the kernel produces no log output. Pass nil to restore that.
//
// Every operator logs one debug entry on success with the names of the
// entities it created or removed.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the current kernel logger.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}
