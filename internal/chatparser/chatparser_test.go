package chatparser

import (
	"testing"

	"github.com/Napageneral/cae/internal/model"
)

func TestParseWhatsAppMinimal(t *testing.T) {
	raw := "12/31/23, 10:15 PM - Alice: Hey there\n12/31/23, 10:16 PM - Bob: Hi!"
	res, err := Parse(raw, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Format != model.PlatformWhatsApp {
		t.Fatalf("expected whatsapp format, got %v", res.Format)
	}
	if len(res.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(res.Messages))
	}
	if res.Messages[0].Sender != "Alice" || res.Messages[0].Text != "Hey there" {
		t.Fatalf("unexpected first message: %+v", res.Messages[0])
	}
	if res.Messages[0].Timestamp == nil {
		t.Fatal("expected non-nil timestamp")
	}
	if res.Messages[0].Timestamp.Year() != 2023 {
		t.Fatalf("expected year 2023 from two-digit pivot, got %d", res.Messages[0].Timestamp.Year())
	}
}

func TestTwoDigitYearPivot(t *testing.T) {
	if normalizeYear("69") != 2069 {
		t.Fatalf("expected 69 -> 2069, got %d", normalizeYear("69"))
	}
	if normalizeYear("70") != 1970 {
		t.Fatalf("expected 70 -> 1970, got %d", normalizeYear("70"))
	}
	if normalizeYear("00") != 2000 {
		t.Fatalf("expected 00 -> 2000, got %d", normalizeYear("00"))
	}
}

func TestBadEncodingRejected(t *testing.T) {
	invalid := string([]byte{0xff, 0xfe, 0xfd})
	_, err := Parse(invalid, nil)
	if err != ErrBadEncoding {
		t.Fatalf("expected ErrBadEncoding, got %v", err)
	}
}

func TestGenericRoundTrip(t *testing.T) {
	hint := model.PlatformGeneric
	original := []model.Message{
		{Sender: "Alice", Text: "hello", Platform: model.PlatformGeneric},
		{Sender: "Bob", Text: "hi there", Platform: model.PlatformGeneric},
	}
	raw := Serialize(original)
	res, err := Parse(raw, &hint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Messages) != len(original) {
		t.Fatalf("round trip message count mismatch: got %d want %d", len(res.Messages), len(original))
	}
	for i, m := range res.Messages {
		if m.Sender != original[i].Sender || m.Text != original[i].Text {
			t.Fatalf("round trip mismatch at %d: got %+v want %+v", i, m, original[i])
		}
	}
}

func TestOrphanContinuationDiscarded(t *testing.T) {
	hint := model.PlatformGeneric
	raw := "this has no colon separator at all"
	res, err := Parse(raw, &hint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(res.Messages))
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Kind == model.DiagParserSkip {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a DiagParserSkip diagnostic")
	}
}

func TestMediaMarking(t *testing.T) {
	raw := "12/31/23, 10:15 PM - Alice: <Media omitted>"
	res, err := Parse(raw, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(res.Messages))
	}
	if !res.Messages[0].IsMedia {
		t.Fatal("expected message to be marked as media")
	}
}

func TestDetectFormatPrecedenceOnAmbiguity(t *testing.T) {
	raw := "Alice: hello\nBob: hi\nAlice: how are you\n"
	res, err := Parse(raw, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Format != model.PlatformGeneric {
		t.Fatalf("expected generic format for plain Name: text lines, got %v", res.Format)
	}
}
