package engine

import "errors"

// ErrInputTooSmall is returned when raw input is shorter than
// config.MinCharsForImport. Fatal: no parsing is attempted.
var ErrInputTooSmall = errors.New("engine: input too small to analyze")

// ErrInputTooLarge is returned when raw input exceeds config.MaxBulkBytes.
// Fatal: no parsing is attempted.
var ErrInputTooLarge = errors.New("engine: input exceeds the maximum bulk size")

// ErrCanceled wraps a context cancellation encountered mid-analysis. The
// partial ChatAnalysis and diagnostics collected so far are still returned.
var ErrCanceled = errors.New("engine: analysis canceled")

// ErrAbort is returned by a Sink to stop AnalyzeConversation early without
// treating the remaining messages as an error; it is never wrapped, only
// ever returned verbatim so callers can detect it with errors.Is.
var ErrAbort = errors.New("engine: sink requested abort")
