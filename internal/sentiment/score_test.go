package sentiment

import (
	"reflect"
	"testing"

	"github.com/Napageneral/cae/internal/emoji"
	"github.com/Napageneral/cae/internal/model"
)

func score(t *testing.T, text string, hint *ClassifierHint) model.SentimentResult {
	t.Helper()
	e := emoji.Analyze(text)
	return Score(text, e, hint)
}

func TestFillerDetection(t *testing.T) {
	r := score(t, "ok", nil)
	if r.Label != model.SentimentNeutral || r.Confidence != 0.55 {
		t.Fatalf("expected neutral/0.55, got %+v", r)
	}
	if r.Emotions != nil {
		t.Fatalf("expected no emotions without a classifier")
	}
}

func TestEmojiOverride(t *testing.T) {
	r := score(t, "Meeting 😊", nil)
	if r.Label != model.SentimentPositive {
		t.Fatalf("expected positive, got %s", r.Label)
	}
	if r.Confidence < 0.60 {
		t.Fatalf("expected confidence >= 0.60, got %f", r.Confidence)
	}
}

func TestPatternMatch(t *testing.T) {
	r := score(t, "Can't wait for tomorrow!", nil)
	if r.Label != model.SentimentPositive {
		t.Fatalf("expected positive, got %s", r.Label)
	}
	if r.Confidence < 0.70 {
		t.Fatalf("expected confidence >= 0.70, got %f", r.Confidence)
	}
}

func TestDeterminism(t *testing.T) {
	a := score(t, "this is a wonderful and great day, I love it!", nil)
	b := score(t, "this is a wonderful and great day, I love it!", nil)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical results for identical input: %+v vs %+v", a, b)
	}
}

func TestNegativeWords(t *testing.T) {
	r := score(t, "I am so sad and angry about this terrible situation", nil)
	if r.Label != model.SentimentNegative {
		t.Fatalf("expected negative, got %s", r.Label)
	}
}

func TestClassifierOverridesNeutralToEmoji(t *testing.T) {
	hint := &ClassifierHint{Label: model.SentimentNeutral, Confidence: 0.5}
	// Three 😡 give emoji confidence 2.7/3 = 0.9, above the 0.6 override threshold.
	r := score(t, "fine 😡😡😡", hint)
	if r.Label != model.SentimentNegative {
		t.Fatalf("expected classifier-neutral + strong negative emoji to yield negative, got %s", r.Label)
	}
}

func TestClassifierLabelWins(t *testing.T) {
	hint := &ClassifierHint{Label: model.SentimentPositive, Confidence: 0.9, Emotions: map[string]float64{"joy": 0.9}}
	r := score(t, "just a normal day", hint)
	if r.Label != model.SentimentPositive {
		t.Fatalf("expected classifier label to win, got %s", r.Label)
	}
	if r.Emotions == nil {
		t.Fatalf("expected emotions to be carried from the classifier hint")
	}
}

func TestLastResortExclamation(t *testing.T) {
	r := score(t, "wow that happened!", nil)
	if r.Label != model.SentimentPositive {
		t.Fatalf("expected last-resort positive from exclamation, got %s", r.Label)
	}
}

func TestLastResortQuestions(t *testing.T) {
	r := score(t, "what is going on here??", nil)
	if r.Label != model.SentimentNegative {
		t.Fatalf("expected last-resort negative from double question mark, got %s", r.Label)
	}
}

func TestConfidenceClampedToUnitInterval(t *testing.T) {
	r := score(t, "GREAT AMAZING WONDERFUL LOVE JOY!!!", nil)
	if r.Confidence > 1 || r.Confidence < 0 {
		t.Fatalf("confidence out of [0,1]: %f", r.Confidence)
	}
}
