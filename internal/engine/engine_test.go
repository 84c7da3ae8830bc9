package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Napageneral/cae/internal/classifier"
	"github.com/Napageneral/cae/internal/config"
	"github.com/Napageneral/cae/internal/model"
)

type fakeClassifier struct {
	result model.SentimentLabel
	err    error
}

func (f fakeClassifier) Classify(ctx context.Context, text string) (classifier.Result, error) {
	return classifier.Result{Label: f.result, Confidence: 0.8}, f.err
}

type recordingSink struct {
	saved      []model.PersistedMessage
	analysis   *model.ChatAnalysis
	abortAfter int
}

func (s *recordingSink) Save(pm model.PersistedMessage) error {
	if s.abortAfter > 0 && len(s.saved) >= s.abortAfter {
		return ErrAbort
	}
	s.saved = append(s.saved, pm)
	return nil
}

func (s *recordingSink) SaveAnalysis(a model.ChatAnalysis) error {
	s.analysis = &a
	return nil
}

func TestAnalyzeMessageDeterministic(t *testing.T) {
	e := New(*config.Default(), nil)
	a := e.AnalyzeMessage("I love this, thank you so much! 😊")
	b := e.AnalyzeMessage("I love this, thank you so much! 😊")
	if a.Label != b.Label || a.Confidence != b.Confidence {
		t.Fatalf("expected deterministic scoring, got %+v vs %+v", a, b)
	}
}

func TestAnalyzeConversationInputTooSmall(t *testing.T) {
	e := New(*config.Default(), nil)
	_, _, err := e.AnalyzeConversation(context.Background(), "hi", nil, "", nil)
	if !errors.Is(err, ErrInputTooSmall) {
		t.Fatalf("expected ErrInputTooSmall, got %v", err)
	}
}

func TestAnalyzeConversationWhitespaceOnlyIsTooSmall(t *testing.T) {
	e := New(*config.Default(), nil)
	_, _, err := e.AnalyzeConversation(context.Background(), strings.Repeat(" ", 20), nil, "", nil)
	if !errors.Is(err, ErrInputTooSmall) {
		t.Fatalf("expected ErrInputTooSmall, got %v", err)
	}
}

func TestAnalyzeConversationInputTooLarge(t *testing.T) {
	e := New(*config.Default(), nil)
	huge := strings.Repeat("a", config.MaxBulkBytes+1)
	_, _, err := e.AnalyzeConversation(context.Background(), huge, nil, "", nil)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
}

func TestAnalyzeConversationGenericFormat(t *testing.T) {
	e := New(*config.Default(), nil)
	raw := "Alice: hey, how are you?\nBob: doing great thanks!\nAlice: awesome, love that\n"
	sink := &recordingSink{}

	hint := model.PlatformGeneric
	analysis, diags, err := e.AnalyzeConversation(context.Background(), raw, &hint, "Alice", sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.TotalMessages != 3 {
		t.Fatalf("expected 3 messages, got %d", analysis.TotalMessages)
	}
	if len(sink.saved) != 3 {
		t.Fatalf("expected sink to receive 3 messages in order, got %d", len(sink.saved))
	}
	if sink.saved[0].Message.Sender != "Alice" || sink.saved[2].Message.Text != "awesome, love that" {
		t.Fatalf("expected sink order to match message order, got %+v", sink.saved)
	}
	if sink.analysis == nil {
		t.Fatal("expected SaveAnalysis to be called")
	}
	if analysis.Participants["Alice"].Role != model.RoleSelf {
		t.Fatalf("expected Alice to be assigned RoleSelf, got %v", analysis.Participants["Alice"].Role)
	}
	_ = diags
}

func TestAnalyzeConversationSinkAbortStopsEarly(t *testing.T) {
	e := New(*config.Default(), nil)
	raw := "Alice: one\nBob: two\nAlice: three\nBob: four\n"
	sink := &recordingSink{abortAfter: 2}

	hint := model.PlatformGeneric
	analysis, _, err := e.AnalyzeConversation(context.Background(), raw, &hint, "", sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.saved) != 2 {
		t.Fatalf("expected exactly 2 messages saved before abort, got %d", len(sink.saved))
	}
	if analysis.TotalMessages != 2 {
		t.Fatalf("expected analysis to aggregate only the saved prefix, got %d", analysis.TotalMessages)
	}
}

func TestAnalyzeConversationClassifierFallbackRecordsDiagnostic(t *testing.T) {
	e := New(*config.Default(), fakeClassifier{err: errors.New("endpoint down")})
	raw := "Alice: hey there\nBob: hello back\n"

	hint := model.PlatformGeneric
	_, diags, err := e.AnalyzeConversation(context.Background(), raw, &hint, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, d := range diags {
		if d.Kind == model.DiagClassifierFallback {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a classifier_fallback diagnostic, got %+v", diags)
	}
	if e.Metrics.CallsFallback == 0 {
		t.Fatalf("expected metrics to record at least one fallback call")
	}
}

func TestAnalyzeConversationCanceledContext(t *testing.T) {
	e := New(*config.Default(), nil)
	raw := "Alice: one\nBob: two\nAlice: three\n"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, diags, err := e.AnalyzeConversation(ctx, raw, nil, "", nil)
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	_ = diags
}
