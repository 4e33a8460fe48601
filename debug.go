package canopy

import (
	"fmt"
	"log"
	"os"
)

// defaultLogger writes to stderr with the package prefix. EventSystems use
// it until SetLogger is called.
var defaultLogger = log.New(os.Stderr, "[canopy] ", 0)

// loggerFor returns the logger of sys, or the default logger for payloads
// not bound to a system.
func loggerFor(sys *EventSystem) *log.Logger {
	if sys == nil || sys.logger == nil {
		return defaultLogger
	}
	return sys.logger
}

// debugStats holds per-frame routing counters.
// Only printed when EventSystem debug mode is on.
type debugStats struct {
	switches  int
	raycasts  int
	delivered int
	deferred  int
}

// SetLogger replaces the logger used for errors and debug output. A nil
// logger restores the default.
func (s *EventSystem) SetLogger(l *log.Logger) {
	if l == nil {
		l = defaultLogger
	}
	s.logger = l
}

// Logger returns the logger in use.
func (s *EventSystem) Logger() *log.Logger { return s.logger }

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// tree operations panic, deep trees are reported, and per-frame routing
// stats are logged.
func (s *EventSystem) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set EventSystem debug flag so that
// node operations (which lack a system pointer) can check it cheaply.
var globalDebug bool

// debugLog prints the frame's routing stats.
func (s *EventSystem) debugLog() {
	if !s.debug {
		return
	}
	s.logger.Printf("module: %T | switches: %d | raycasts: %d | delivered: %d | deferred: %d",
		s.current, s.stats.switches, s.stats.raycasts, s.stats.delivered, s.stats.deferred)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("canopy debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		defaultLogger.Printf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}
