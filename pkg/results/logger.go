// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package results

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

// badgerLogger forwards badger logs to a logr.Logger
type badgerLogger struct {
	logger logr.Logger
}

func trimMsg(format string, args ...interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(nil, trimMsg(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Info(trimMsg(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.V(1).Info(trimMsg(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.V(2).Info(trimMsg(format, args...))
}
