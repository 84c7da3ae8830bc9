package engine

import (
	"encoding/json"
	"sync"
	"time"
)

// ClassifierMetrics captures coarse-grained, aggregated timing for a run of
// classifier calls made while scoring a conversation. It holds no
// per-message data, only counters and running totals, so it is cheap to
// keep for the lifetime of an Engine.
type ClassifierMetrics struct {
	mu sync.Mutex

	CallsTotal    int
	CallsOK       int
	CallsFallback int

	FallbackReasonCounts map[string]int

	TotalCall time.Duration
}

func NewClassifierMetrics() *ClassifierMetrics {
	return &ClassifierMetrics{
		FallbackReasonCounts: make(map[string]int),
	}
}

// ClassifierCallEvent is one classify() attempt's outcome, reported by
// AnalyzeConversation's scoring loop.
type ClassifierCallEvent struct {
	Duration time.Duration

	Outcome        string // "ok" | "fallback"
	FallbackReason string
}

func (m *ClassifierMetrics) Record(ev ClassifierCallEvent) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallsTotal++
	switch ev.Outcome {
	case "ok":
		m.CallsOK++
	default:
		m.CallsFallback++
		if ev.FallbackReason != "" {
			m.FallbackReasonCounts[ev.FallbackReason]++
		}
	}
	m.TotalCall += ev.Duration
}

func (m *ClassifierMetrics) SnapshotJSON() json.RawMessage {
	if m == nil {
		return json.RawMessage("null")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	avgMs := float64(0)
	if m.CallsTotal > 0 {
		avgMs = float64(m.TotalCall.Milliseconds()) / float64(m.CallsTotal)
	}

	out := map[string]any{
		"calls_total":            m.CallsTotal,
		"calls_ok":               m.CallsOK,
		"calls_fallback":         m.CallsFallback,
		"avg_call_ms":            avgMs,
		"fallback_reason_counts": m.FallbackReasonCounts,
	}

	b, _ := json.Marshal(out)
	return b
}

