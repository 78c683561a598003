/*
Copyright 2024 Codenotary Inc. All rights reserved.

SPDX-License-Identifier: BUSL-1.1
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://mariadb.com/bsl11/

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logger

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

var memoryTags = map[LogLevel]string{
	LogDebug: "DBG",
	LogInfo:  "INF",
	LogWarn:  "WRN",
	LogError: "ERR",
}

// Entry is one line kept by a MemoryLogger
type Entry struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Time.Format(time.RFC3339Nano), memoryTags[e.Level], e.Message)
}

// MemoryLogger keeps every entry in memory so tests can assert on what a
// component reported. It is safe for concurrent use.
type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
	level   LogLevel
}

func NewMemoryLogger() *MemoryLogger {
	return NewMemoryLoggerWithLevel(LogLevelFromEnvironment())
}

func NewMemoryLoggerWithLevel(level LogLevel) *MemoryLogger {
	return &MemoryLogger{level: level}
}

func (l *MemoryLogger) Errorf(f string, args ...interface{}) {
	l.add(LogError, f, args)
}

func (l *MemoryLogger) Warningf(f string, args ...interface{}) {
	l.add(LogWarn, f, args)
}

func (l *MemoryLogger) Infof(f string, args ...interface{}) {
	l.add(LogInfo, f, args)
}

func (l *MemoryLogger) Debugf(f string, args ...interface{}) {
	l.add(LogDebug, f, args)
}

func (l *MemoryLogger) add(level LogLevel, f string, args []interface{}) {
	if level < l.level {
		return
	}

	e := Entry{Time: time.Now(), Level: level, Message: fmt.Sprintf(f, args...)}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
}

// Entries returns a copy of the entries logged so far
func (l *MemoryLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]Entry(nil), l.entries...)
}

// GetLogs returns the entries logged so far, formatted one per line
func (l *MemoryLogger) GetLogs() []string {
	entries := l.Entries()

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}

	return lines
}

// Contains reports whether an entry of the given level mentions substr
func (l *MemoryLogger) Contains(level LogLevel, substr string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func (l *MemoryLogger) Close() error {
	return nil
}
