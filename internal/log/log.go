// SPDX-License-Identifier: Unlicense OR MIT

// Package log holds the logger shared by the recognizer packages.
// It discards everything until a host installs a logger.
package log

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type holder struct {
	l logrus.FieldLogger
}

var current atomic.Pointer[holder]

func init() {
	Set(nil)
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Set installs l. A nil logger restores the silent default.
func Set(l logrus.FieldLogger) {
	if l == nil {
		l = discard()
	}
	current.Store(&holder{l: l})
}

// Logger returns the installed logger.
func Logger() logrus.FieldLogger {
	return current.Load().l
}
