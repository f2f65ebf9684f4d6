package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyTestMain runs the package tests and fails if goroutines are left behind.
//
// Example usage:
//
//	func TestMain(m *testing.M) {
//	    testutil.VerifyTestMain(m)
//	}
func VerifyTestMain(m *testing.M, options ...goleak.Option) {
	goleak.VerifyTestMain(m, append(defaultOptions(), options...)...)
}

// defaultOptions returns ignore patterns for long-lived library goroutines
func defaultOptions() []goleak.Option {
	return []goleak.Option{
		// lumberjack starts a compression worker on first write
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
		// database/sql keeps an opener goroutine per pool
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	}
}
