// Package log provides a minimal leveled logger for the library. Output goes
// to stderr. The level can be changed at runtime.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tevino/abool"
)

// Severity describes a log level.
type Severity uint32

// Log levels.
const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

var (
	logLevel = new(uint32)
	started  = abool.New()

	writer     io.Writer = os.Stderr
	writerLock sync.Mutex
)

func init() {
	atomic.StoreUint32(logLevel, uint32(InfoLevel))
}

func (s Severity) String() string {
	switch s {
	case TraceLevel:
		return "TRAC"
	case DebugLevel:
		return "DEBU"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARN"
	case ErrorLevel:
		return "ERRO"
	case CriticalLevel:
		return "CRIT"
	default:
		return "NONE"
	}
}

// SetLogLevel sets the log level.
func SetLogLevel(level Severity) {
	atomic.StoreUint32(logLevel, uint32(level))
}

// GetLogLevel returns the current log level.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(logLevel))
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	writerLock.Lock()
	defer writerLock.Unlock()
	writer = w
}

// Start marks the logger as active. Before Start, everything below warning
// is discarded, so library consumers that never configure logging stay
// quiet.
func Start() {
	started.Set()
}

func fastcheck(level Severity) bool {
	if !started.IsSet() && level < WarningLevel {
		return false
	}
	return uint32(level) >= atomic.LoadUint32(logLevel)
}

func write(level Severity, msg string) {
	writerLock.Lock()
	defer writerLock.Unlock()
	fmt.Fprintf(writer, "%s %s %s\n", time.Now().Format("060102 15:04:05.000"), level, msg)
}

func log(level Severity, format string, args ...interface{}) {
	if !fastcheck(level) {
		return
	}
	if len(args) > 0 {
		write(level, fmt.Sprintf(format, args...))
		return
	}
	write(level, format)
}

// Tracef logs a formatted message at trace level.
func Tracef(format string, args ...interface{}) { log(TraceLevel, format, args...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) { log(DebugLevel, format, args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) { log(InfoLevel, format, args...) }

// Warningf logs a formatted message at warning level.
func Warningf(format string, args ...interface{}) { log(WarningLevel, format, args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) { log(ErrorLevel, format, args...) }

// Criticalf logs a formatted message at critical level.
func Criticalf(format string, args ...interface{}) { log(CriticalLevel, format, args...) }
