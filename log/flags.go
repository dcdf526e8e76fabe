package log

import (
	"fmt"
	"strings"
)

// ParseLevel parses a severity name.
func ParseLevel(level string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "error":
		return ErrorLevel, nil
	case "critical":
		return CriticalLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}
