package parser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

var (
	debug_mu     sync.Mutex
	debug        *bool
	debug_writer io.Writer = os.Stderr
)

// Debug dumps arg to the debug writer when debugging is enabled.
func Debug(arg interface{}) {
	if IsDebug() {
		spew.Fdump(getDebugWriter(), arg)
	}
}

type Debugger interface {
	DebugString() string
}

func DebugString(arg interface{}, indent string) string {
	debugger, ok := arg.(Debugger)
	if ok {
		lines := strings.Split(debugger.DebugString(), "\n")
		for idx, line := range lines {
			lines[idx] = indent + line
		}
		return strings.Join(lines, "\n")
	}

	return ""
}

// SetDebug overrides the DISKSCAN_DEBUG environment variable.
func SetDebug(value bool) {
	debug_mu.Lock()
	defer debug_mu.Unlock()

	debug = &value
}

// SetDebugWriter redirects debug output, which goes to stderr by
// default.
func SetDebugWriter(writer io.Writer) {
	debug_mu.Lock()
	defer debug_mu.Unlock()

	debug_writer = writer
}

func getDebugWriter() io.Writer {
	debug_mu.Lock()
	defer debug_mu.Unlock()

	return debug_writer
}

func IsDebug() bool {
	debug_mu.Lock()
	defer debug_mu.Unlock()

	if debug == nil {
		// os.Environ() seems very expensive in Go so we cache
		// it.
		value := false
		for _, x := range os.Environ() {
			if strings.HasPrefix(x, "DISKSCAN_DEBUG=") {
				value = true
				break
			}
		}
		debug = &value
	}

	return *debug
}

func DebugPrint(fmt_str string, v ...interface{}) {
	if IsDebug() {
		fmt.Fprintf(getDebugWriter(), fmt_str, v...)
	}
}
