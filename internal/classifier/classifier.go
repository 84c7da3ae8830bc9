// Package classifier defines the neural classifier contract the engine
// can optionally delegate to, plus one concrete HTTP-based reference
// adapter. The core sentiment scorer never depends on a classifier being
// present; this package exists for hosts that want to plug one in.
package classifier

import (
	"context"
	"errors"

	"github.com/Napageneral/cae/internal/model"
)

// ErrUnavailable signals the classifier is not configured or not reachable.
// The engine treats it identically to a context deadline: fall back to
// the lexical scorer, record a diagnostic, never fail the call.
var ErrUnavailable = errors.New("classifier: unavailable")

// Result is what a classifier contributes toward scoring one message.
type Result struct {
	Label      model.SentimentLabel
	Confidence float64
	Emotions   map[string]float64
}

// Classifier is the injected neural-classifier contract. Implementations
// must honor ctx cancellation/deadlines; the engine always calls with a
// bounded context.
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
}
