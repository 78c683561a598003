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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTimeFormat is the time format to use for JSON output
const DefaultTimeFormat = "2006-01-02T15:04:05.000000Z07:00"

var _ Logger = (*JsonLogger)(nil)

// JsonLogger writes one JSON object per line.
type JsonLogger struct {
	name    string
	timeFnc TimeFunc

	mutex sync.Mutex
	enc   *json.Encoder
	out   io.Writer

	level int32
}

// NewJSONLogger returns a json logger.
func NewJSONLogger(opts *Options) *JsonLogger {
	if opts == nil {
		opts = &Options{}
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	l := &JsonLogger{
		name:    opts.Name,
		timeFnc: time.Now,
		enc:     json.NewEncoder(output),
		out:     output,
		level:   int32(opts.Level),
	}

	if opts.TimeFnc != nil {
		l.timeFnc = opts.TimeFnc
	}

	return l
}

func (l *JsonLogger) log(level LogLevel, msg string, args ...interface{}) {
	if level < LogLevel(atomic.LoadInt32(&l.level)) {
		return
	}

	vals := map[string]interface{}{
		"message":   fmt.Sprintf(msg, args...),
		"timestamp": l.timeFnc().Format(DefaultTimeFormat),
		"level":     levelToString[level],
	}

	if l.name != "" {
		vals["module"] = l.name
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.enc.Encode(vals)
}

// Debugf prints the message and args at DEBUG level
func (l *JsonLogger) Debugf(msg string, args ...interface{}) {
	l.log(LogDebug, msg, args...)
}

// Infof prints the message and args at INFO level
func (l *JsonLogger) Infof(msg string, args ...interface{}) {
	l.log(LogInfo, msg, args...)
}

// Warningf prints the message and args at WARN level
func (l *JsonLogger) Warningf(msg string, args ...interface{}) {
	l.log(LogWarn, msg, args...)
}

// Errorf prints the message and args at ERROR level
func (l *JsonLogger) Errorf(msg string, args ...interface{}) {
	l.log(LogError, msg, args...)
}

// SetLogLevel updates the logging level
func (l *JsonLogger) SetLogLevel(level LogLevel) {
	atomic.StoreInt32(&l.level, int32(level))
}

// Close the logger, closing the output when it is a file
func (l *JsonLogger) Close() error {
	if f, ok := l.out.(*os.File); ok && f != os.Stderr && f != os.Stdout {
		return f.Close()
	}
	return nil
}
