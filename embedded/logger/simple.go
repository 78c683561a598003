/*
Copyright 2022 CodeNotary, Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logger

import (
	"io"
	"log"
)

var textPrefixes = map[LogLevel]string{
	LogDebug: "DEBUG: ",
	LogInfo:  "INFO: ",
	LogWarn:  "WARNING: ",
	LogError: "ERROR: ",
}

// SimpleLogger writes plain text lines prefixed by the logger name, a
// timestamp and the level
type SimpleLogger struct {
	Logger   *log.Logger
	LogLevel LogLevel

	closer io.Closer
}

func NewSimpleLogger(name string, out io.Writer) Logger {
	return NewSimpleLoggerWithLevel(name, out, LogLevelFromEnvironment())
}

func NewSimpleLoggerWithLevel(name string, out io.Writer, level LogLevel) Logger {
	return &SimpleLogger{
		Logger:   log.New(out, name+" ", log.LstdFlags),
		LogLevel: level,
	}
}

func (l *SimpleLogger) Errorf(f string, v ...interface{}) {
	l.logf(LogError, f, v)
}

func (l *SimpleLogger) Warningf(f string, v ...interface{}) {
	l.logf(LogWarn, f, v)
}

func (l *SimpleLogger) Infof(f string, v ...interface{}) {
	l.logf(LogInfo, f, v)
}

func (l *SimpleLogger) Debugf(f string, v ...interface{}) {
	l.logf(LogDebug, f, v)
}

func (l *SimpleLogger) logf(level LogLevel, f string, v []interface{}) {
	if level < l.LogLevel {
		return
	}
	l.Logger.Printf(textPrefixes[level]+f, v...)
}

// Close releases the log file, if the logger owns one
func (l *SimpleLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
