// Package sentiment implements the nine-phase deterministic lexical
// scorer: the fallback path the engine always has available, with an
// optional override from a neural classifier result.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/Napageneral/cae/internal/emoji"
	"github.com/Napageneral/cae/internal/lexicon"
	"github.com/Napageneral/cae/internal/model"
)

// ClassifierHint is the shape a neural classifier adapter contributes to
// scoring. It mirrors classifier.Result without importing that package,
// keeping the scorer classifier-agnostic.
type ClassifierHint struct {
	Label      model.SentimentLabel
	Confidence float64
	Emotions   map[string]float64
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}']+`)

const (
	fillerConfidence    = 0.55
	minTriggerRatio     = 0.08
	emojiIntegrationWeight = 0.35
	emojiOverrideThreshold = 0.6
	lastResortConfidence   = 0.52
	// lastResortEmojiConfidence is the floor applied when phase 8 falls
	// through to "follow the emoji": an emoji is a strong, deliberate
	// signal in a chat message even when its own raw polarity confidence
	// (diluted by the emoji analyzer's max(3, count) denominator) is low.
	lastResortEmojiConfidence = 0.65
)

// Score runs the full nine-phase algorithm for one message. emojiResult
// must be the output of emoji.Analyze on the same text. hint is nil when
// no classifier ran or it failed/timed out.
func Score(text string, emojiResult emoji.Result, hint *ClassifierHint) model.SentimentResult {
	normalized := strings.ToLower(strings.TrimSpace(text))

	// Phase 1: filler detection.
	if _, isFiller := lexicon.Filler[normalized]; isFiller && !emojiResult.HasEmojis {
		return model.SentimentResult{Label: model.SentimentNeutral, Confidence: fillerConfidence}
	}

	words := wordPattern.FindAllString(text, -1)
	wordCount := len(words)

	var label model.SentimentLabel
	var confidence float64
	var pos, neg float64
	// lexicalHits counts word-list and pattern hits only (before the
	// punctuation amplifiers), for the phase 8 guard.
	var lexicalHits float64

	if _, isFiller := lexicon.Filler[normalized]; isFiller {
		// Filler with an emoji present: carry the neutral bias into step 6
		// onward instead of short-circuiting.
		label, confidence = model.SentimentNeutral, fillerConfidence
	} else {
		// Phase 2: tokenization & word-list scoring.
		for _, w := range words {
			lw := strings.ToLower(w)
			if _, ok := lexicon.Positive[lw]; ok {
				pos++
			}
			if _, ok := lexicon.Negative[lw]; ok {
				neg++
			}
		}

		// Phase 3: multi-word pattern recognition.
		for _, p := range lexicon.PositivePatterns {
			if strings.Contains(normalized, p) {
				pos += 2
			}
		}
		for _, p := range lexicon.NegativePatterns {
			if strings.Contains(normalized, p) {
				neg += 2
			}
		}
		lexicalHits = pos + neg

		// Phase 4: punctuation amplifiers.
		trimmed := strings.TrimRight(text, " \t\n\r")
		if strings.HasSuffix(trimmed, "!") {
			pos++
		}
		if trailingRunLength(trimmed, '?') >= 2 {
			neg++
		}
		if hasAllCapsRun(words) {
			if pos >= neg {
				pos *= 1.25
			} else {
				neg *= 1.25
			}
		}

		// Phase 5: threshold.
		ratio := (pos + neg) / maxFloat(1, float64(wordCount))
		label, confidence = baseLabelAndConfidence(pos, neg, wordCount)
		if ratio < minTriggerRatio {
			label = model.SentimentNeutral
		}
	}

	// Phase 6: emoji integration.
	label, confidence = integrateEmoji(label, confidence, emojiResult)

	// Phase 7: classifier override.
	if hint != nil {
		if hint.Label == model.SentimentNeutral && emojiResult.Confidence > emojiOverrideThreshold && emojiResult.Label != model.SentimentNeutral {
			label = emojiResult.Label
			confidence = maxFloat(confidence, emojiResult.Confidence)
		} else if hint.Label != model.SentimentNeutral {
			label = hint.Label
			confidence = maxFloat(hint.Confidence, confidence*0.9)
		}
	}

	// Phase 8: last-resort detection (no words, patterns, or classifier fired).
	if lexicalHits == 0 && hint == nil {
		switch {
		case strings.Contains(text, "!"):
			label, confidence = model.SentimentPositive, lastResortConfidence
		case trailingRunLength(text, '?') >= 2 || strings.Count(text, "?") >= 2:
			label, confidence = model.SentimentNegative, lastResortConfidence
		case emojiResult.HasEmojis:
			label, confidence = emojiResult.Label, maxFloat(lastResortEmojiConfidence, emojiResult.Confidence)
		}
	}

	return finalize(label, confidence, hint, emojiResult, withCounts(pos, neg, wordCount))
}

type scoreOpts struct {
	pos, neg  float64
	wordCount int
	hasCounts bool
}

func withCounts(pos, neg float64, wordCount int) scoreOpts {
	return scoreOpts{pos: pos, neg: neg, wordCount: wordCount, hasCounts: true}
}

// finalize applies phase 9 (confidence clamp) and attaches emotions/emoji
// sub-results.
func finalize(label model.SentimentLabel, confidence float64, hint *ClassifierHint, emojiResult emoji.Result, opts ...scoreOpts) model.SentimentResult {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	if label == model.SentimentNeutral {
		pos, neg, wordCount := 0.0, 0.0, 0
		if len(opts) > 0 && opts[0].hasCounts {
			pos, neg, wordCount = opts[0].pos, opts[0].neg, opts[0].wordCount
		}
		neutralConfidence := maxFloat(0.5, 1-(pos+neg)/float64(wordCount+1))
		if neutralConfidence > 1 {
			neutralConfidence = 1
		}
		confidence = neutralConfidence
	}

	result := model.SentimentResult{
		Label:      label,
		Confidence: confidence,
		Emoji:      emojiResult.ToModel(),
	}
	if hint != nil {
		result.Emotions = hint.Emotions
	}
	return result
}

func integrateEmoji(label model.SentimentLabel, confidence float64, e emoji.Result) (model.SentimentLabel, float64) {
	if e.HasEmojis && e.Label == label {
		confidence += emojiIntegrationWeight * e.Confidence
	}
	return label, confidence
}

func baseLabelAndConfidence(pos, neg float64, wordCount int) (model.SentimentLabel, float64) {
	denom := maxFloat(float64(wordCount)*0.08, 1)
	posScore := pos / denom
	negScore := neg / denom

	switch {
	case pos > neg:
		c := minFloat(posScore, 0.88)
		if pos >= 2 {
			c = minFloat(c+0.1, 0.92)
		}
		return model.SentimentPositive, c
	case neg > pos:
		c := minFloat(negScore, 0.88)
		if neg >= 2 {
			c = minFloat(c+0.1, 0.92)
		}
		return model.SentimentNegative, c
	case pos > 0:
		if posScore >= negScore {
			return model.SentimentPositive, 0.65
		}
		return model.SentimentNegative, 0.65
	default:
		return model.SentimentNeutral, 0.5
	}
}

func hasAllCapsRun(words []string) bool {
	for _, w := range words {
		if len([]rune(w)) < 4 {
			continue
		}
		if w == strings.ToUpper(w) && w != strings.ToLower(w) {
			return true
		}
	}
	return false
}

func trailingRunLength(s string, r rune) int {
	runes := []rune(s)
	n := 0
	for i := len(runes) - 1; i >= 0 && runes[i] == r; i-- {
		n++
	}
	return n
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
