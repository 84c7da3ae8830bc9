package model

// DiagnosticKind enumerates the non-fatal anomaly categories the pipeline
// can surface. Kinds are informational; they never change control flow.
type DiagnosticKind string

const (
	DiagParserSkip        DiagnosticKind = "parser_skip"
	DiagNaiveTimestamp    DiagnosticKind = "naive_timestamp_assumed_utc"
	DiagNoScoredMessages  DiagnosticKind = "no_scored_messages"
	DiagClassifierFallback DiagnosticKind = "classifier_fallback"
	DiagSinkError         DiagnosticKind = "sink_error"
)

// Diagnostic is a structured, non-fatal anomaly attached to a parse or
// analysis result instead of being logged or swallowed.
type Diagnostic struct {
	Kind   DiagnosticKind `json:"kind"`
	Line   int            `json:"line,omitempty"`
	Detail string         `json:"detail,omitempty"`
}

// PersistedMessage is the shape the engine emits to an injected Sink for
// each parsed message, pairing the canonical message with its scored
// sentiment.
type PersistedMessage struct {
	Message   Message
	Sentiment SentimentResult
}
