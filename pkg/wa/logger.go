package wa

import (
	"github.com/sirupsen/logrus"
	waLog "go.mau.fi/whatsmeow/util/log"
)

// Logger adapts logrus to the whatsmeow logger interface
type Logger struct {
	l      *logrus.Logger
	module string
}

func createLogger(l *logrus.Logger) *Logger {
	return &Logger{l: l}
}

func (l Logger) entry() *logrus.Entry {
	if l.module == "" {
		return logrus.NewEntry(l.l)
	}
	return l.l.WithField("module", l.module)
}

func (l Logger) Warnf(msg string, args ...interface{}) {
	l.entry().Warnf(msg, args...)
}

func (l Logger) Errorf(msg string, args ...interface{}) {
	l.entry().Errorf(msg, args...)
}

func (l Logger) Infof(msg string, args ...interface{}) {
	l.entry().Infof(msg, args...)
}

func (l Logger) Debugf(msg string, args ...interface{}) {
	l.entry().Debugf(msg, args...)
}

func (l Logger) Sub(module string) waLog.Logger {
	if l.module != "" {
		module = l.module + "/" + module
	}
	return Logger{l: l.l, module: module}
}
