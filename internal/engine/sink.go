package engine

import "github.com/Napageneral/cae/internal/model"

// Sink receives a conversation's messages and final analysis as
// AnalyzeConversation produces them, in message order. A Sink returning
// ErrAbort stops processing of the remaining messages without making it a
// fatal error; any other non-nil error is recorded as a model.DiagSinkError
// diagnostic and processing continues.
type Sink interface {
	Save(model.PersistedMessage) error
	SaveAnalysis(model.ChatAnalysis) error
}

// NopSink discards everything it receives. It is the zero-value Sink used
// when a caller has nowhere to persist results.
type NopSink struct{}

func (NopSink) Save(model.PersistedMessage) error    { return nil }
func (NopSink) SaveAnalysis(model.ChatAnalysis) error { return nil }
