package engine

import (
	"github.com/Napageneral/cae/internal/emoji"
	"github.com/Napageneral/cae/internal/model"
	"github.com/Napageneral/cae/internal/sentiment"
)

// AnalyzeMessage scores a single piece of text in isolation. It calls only
// the emoji analyzer and the lexical sentiment scorer, never the
// classifier, so it is deterministic and safe to call concurrently from
// multiple goroutines with no shared state.
func (e *Engine) AnalyzeMessage(text string) model.SentimentResult {
	emojiResult := emoji.Analyze(text)
	return sentiment.Score(text, emojiResult, nil)
}
