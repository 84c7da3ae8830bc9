// Package engine is the Chat Analysis Engine facade: it wires the parser,
// scorer, aggregator, and red-flag detector into the two entry points
// external callers use, orchestrating the optional classifier and
// persistence sink without owning storage itself.
package engine

import (
	"time"

	"github.com/Napageneral/cae/internal/classifier"
	"github.com/Napageneral/cae/internal/config"
)

// Engine holds the collaborators a single AnalyzeConversation/AnalyzeMessage
// call may use. It carries no mutable state between calls besides the
// adaptive classifier semaphore and metrics (both already safe for
// concurrent use), so an Engine is safe for concurrent use by multiple
// goroutines, per spec.md §5.
type Engine struct {
	Config     config.Config
	Classifier classifier.Classifier

	// classifierSem bounds concurrent in-flight classifier calls
	// independently of the worker pool size; nil disables the bound.
	classifierSem *AdaptiveSemaphore
	Metrics       *ClassifierMetrics
}

// New constructs an Engine. clf may be nil, in which case every message is
// scored by the lexical fallback alone.
func New(cfg config.Config, clf classifier.Classifier) *Engine {
	e := &Engine{Config: cfg, Classifier: clf, Metrics: NewClassifierMetrics()}
	if clf != nil {
		e.classifierSem = NewAdaptiveSemaphore(e.concurrency())
	}
	return e
}

func (e *Engine) classifierTimeout() time.Duration {
	ms := e.Config.ClassifierTimeoutMs
	if ms <= 0 {
		ms = config.ClassifierTimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (e *Engine) concurrency() int {
	if e.Config.Concurrency < 1 {
		return 1
	}
	return e.Config.Concurrency
}
