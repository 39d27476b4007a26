package debug

import (
	"fmt"
	"log"
	"time"
)

// Logf prints a timestamped debug message if debugging is enabled.
func Logf(enabled bool, format string, args ...interface{}) {
	if enabled {
		message := fmt.Sprintf(format, args...)
		log.Printf("[%s] %s", time.Now().Format("15:04:05.000"), message)
	}
}

// Timing logs the duration of an operation if debugging is enabled. Call
// the returned func when the operation completes, typically via defer.
func Timing(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}

	start := time.Now()
	Logf(enabled, "starting: %s", operation)

	return func() {
		Logf(enabled, "completed: %s (took %v)", operation, time.Since(start))
	}
}
