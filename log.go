package tracelet

import (
	"github.com/tracelet/go-tracer/logger"
)

// LeveledLogger is an interface of a generic logger that support different message levels.
// By default tracelet uses logger.Logger with log.Logger as an output, however this interface
// is also implemented by such popular logging libraries as github.com/sirupsen/logrus.Logger
// and go.uber.org/zap.SugaredLogger
type LeveledLogger interface {
	Debug(v ...interface{})
	Info(v ...interface{})
	Warn(v ...interface{})
	Error(v ...interface{})
}

var defaultLogger LeveledLogger = logger.New(nil)

// SetLogger configures the tracer-wide logger used to report tracer
// failures that are absorbed and never reach the caller.
func SetLogger(l LeveledLogger) {
	defaultLogger = l
}
