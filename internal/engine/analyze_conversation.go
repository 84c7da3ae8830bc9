package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Napageneral/cae/internal/aggregator"
	"github.com/Napageneral/cae/internal/chatparser"
	"github.com/Napageneral/cae/internal/classifier"
	"github.com/Napageneral/cae/internal/config"
	"github.com/Napageneral/cae/internal/emoji"
	"github.com/Napageneral/cae/internal/model"
	"github.com/Napageneral/cae/internal/redflag"
	"github.com/Napageneral/cae/internal/sentiment"
)

// AnalyzeConversation runs the full pipeline over raw chat export text:
// parse, score every message (through the classifier when one is
// configured, falling back to the lexical scorer on any failure or
// timeout), emit each scored message to sink in order, aggregate the
// rollups, and evaluate the red-flag rule set.
//
// The only fatal errors are ErrInputTooSmall, ErrInputTooLarge,
// chatparser.ErrBadEncoding, and ErrCanceled; everything else a message
// or the classifier does wrong becomes a model.Diagnostic on the result.
// If sink returns ErrAbort, the remaining messages are skipped and the
// analysis is aggregated over what was processed so far.
func (e *Engine) AnalyzeConversation(ctx context.Context, raw string, hint *model.Platform, selfName string, sink Sink) (model.ChatAnalysis, []model.Diagnostic, error) {
	if sink == nil {
		sink = NopSink{}
	}

	if len(strings.TrimSpace(raw)) < config.MinCharsForImport {
		return model.ChatAnalysis{}, nil, ErrInputTooSmall
	}
	if len(raw) > config.MaxBulkBytes {
		return model.ChatAnalysis{}, nil, ErrInputTooLarge
	}

	parsed, err := chatparser.Parse(raw, hint)
	if err != nil {
		return model.ChatAnalysis{}, nil, err
	}

	messages := parsed.Messages
	diags := append([]model.Diagnostic(nil), parsed.Diagnostics...)

	sentiments := make([]model.SentimentResult, len(messages))
	scoreDiags, scoreErr := e.scoreAll(ctx, messages, sentiments)
	diags = append(diags, scoreDiags...)

	processed := len(messages)
	abortErr := e.emitToSink(sink, messages, sentiments, &processed, &diags)

	analysis, aggDiags := aggregator.Aggregate(messages[:processed], sentiments[:processed], selfName)
	diags = append(diags, aggDiags...)
	analysis.FormatDetected = string(parsed.Format)
	analysis.RedFlags = redflag.Detect(messages[:processed], analysis)

	if saveErr := sink.SaveAnalysis(analysis); saveErr != nil && !errors.Is(saveErr, ErrAbort) {
		diags = append(diags, model.Diagnostic{Kind: model.DiagSinkError, Detail: saveErr.Error()})
	}

	if scoreErr != nil {
		return analysis, diags, scoreErr
	}
	if abortErr != nil && !errors.Is(abortErr, ErrAbort) {
		diags = append(diags, model.Diagnostic{Kind: model.DiagSinkError, Detail: abortErr.Error()})
	}
	return analysis, diags, nil
}

// scoreAll scores every message into sentiments (parallel to messages),
// using the configured classifier when present through a bounded worker
// pool, and always falling back to the lexical scorer alone on failure.
// It returns ErrCanceled if ctx is done before scoring completes.
func (e *Engine) scoreAll(ctx context.Context, messages []model.Message, sentiments []model.SentimentResult) ([]model.Diagnostic, error) {
	var mu sync.Mutex
	var diags []model.Diagnostic

	workers := e.concurrency()
	if workers > len(messages) {
		workers = len(messages)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				msg := messages[i]
				if msg.IsMedia {
					continue
				}
				emojiResult := emoji.Analyze(msg.Text)
				hint, hintDiag := e.classify(ctx, msg.Text)
				sentiments[i] = sentiment.Score(msg.Text, emojiResult, hint)
				if hintDiag != nil {
					mu.Lock()
					diags = append(diags, *hintDiag)
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for i := range messages {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return diags, ErrCanceled
	}
	return diags, nil
}

// classify asks the configured classifier for a hint, bounded by the
// engine's classifier timeout, and converts any failure into a
// DiagClassifierFallback diagnostic rather than an error. It returns a
// nil hint whenever no classifier is configured or the call fails.
func (e *Engine) classify(ctx context.Context, text string) (*sentiment.ClassifierHint, *model.Diagnostic) {
	if e.Classifier == nil {
		return nil, nil
	}
	if e.classifierSem != nil {
		if err := e.classifierSem.Acquire(ctx); err != nil {
			return nil, nil
		}
		defer e.classifierSem.Release()
	}

	cctx, cancel := context.WithTimeout(ctx, e.classifierTimeout())
	defer cancel()

	start := time.Now()
	result, err := e.Classifier.Classify(cctx, text)
	e.Metrics.Record(ClassifierCallEvent{
		Duration:       time.Since(start),
		Outcome:        classifyOutcome(err),
		FallbackReason: fallbackReason(err),
	})
	if err != nil {
		return nil, &model.Diagnostic{Kind: model.DiagClassifierFallback, Detail: err.Error()}
	}
	return &sentiment.ClassifierHint{
		Label:      result.Label,
		Confidence: result.Confidence,
		Emotions:   result.Emotions,
	}, nil
}

// emitToSink writes every scored message to sink in order. On ErrAbort it
// stops early and sets *processed to how many messages were actually
// saved, so the caller aggregates only over that prefix.
func (e *Engine) emitToSink(sink Sink, messages []model.Message, sentiments []model.SentimentResult, processed *int, diags *[]model.Diagnostic) error {
	for i, msg := range messages {
		err := sink.Save(model.PersistedMessage{Message: msg, Sentiment: sentiments[i]})
		if err != nil {
			if errors.Is(err, ErrAbort) {
				*processed = i
				return err
			}
			*diags = append(*diags, model.Diagnostic{Kind: model.DiagSinkError, Detail: err.Error()})
		}
	}
	return nil
}

func classifyOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	return "fallback"
}

func fallbackReason(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, classifier.ErrUnavailable) {
		return "unavailable"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}
