package bloom

import (
	"log"

	"github.com/sirupsen/logrus"
)

// Logger receives the operational messages a filter emits. Currently that is
// only the warning about a filter filled beyond its capacity.
type Logger func(v ...interface{})

func StdLogger(logger *log.Logger) Logger {
	if logger == nil {
		logger = log.Default()
	}
	return func(v ...interface{}) {
		logger.Println(v...)
	}
}

// LogrusLogger reports through logger. Every message goes out at warning
// level, since the filter logs nothing routine.
func LogrusLogger(logger logrus.FieldLogger) Logger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	entry := logger.WithField("component", "bloom")
	return func(v ...interface{}) {
		entry.Warnln(v...)
	}
}

func NoOpLogger() Logger {
	return func(...interface{}) {}
}
