package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// DebugEnabled turns on Debugf output. Set from the --debug flag.
var DebugEnabled bool

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput redirects all log output and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func write(prefix, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, prefix+format+"\n", args...)
}

// Debugf prints messages only if DebugEnabled is true
func Debugf(format string, args ...interface{}) {
	if DebugEnabled {
		write("[DEBUG] ", format, args...)
	}
}

// Infof prints messages always
func Infof(format string, args ...interface{}) {
	write("", format, args...)
}

// Warnf prints a warning
func Warnf(format string, args ...interface{}) {
	write("[WARN] ", format, args...)
}

// Errorf prints an error that does not stop the current operation
func Errorf(format string, args ...interface{}) {
	write("[ERROR] ", format, args...)
}
