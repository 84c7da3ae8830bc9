package chatparser

import (
	"testing"

	"github.com/Napageneral/cae/internal/model"
)

func TestParseTelegramInline(t *testing.T) {
	hint := model.PlatformTelegram
	raw := "31.12.2023 22:15:00 - Alice: Hey there\n31.12.2023 22:16:00 - Bob: Hi!"
	res, err := Parse(raw, &hint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(res.Messages))
	}
	if res.Messages[0].Sender != "Alice" || res.Messages[0].Text != "Hey there" {
		t.Fatalf("unexpected message: %+v", res.Messages[0])
	}
}

func TestParseTelegramHeaderForm(t *testing.T) {
	hint := model.PlatformTelegram
	raw := "31.12.2023 22:15 Alice\nHey there\nstill talking"
	res, err := Parse(raw, &hint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(res.Messages))
	}
	if res.Messages[0].Text != "Hey there\nstill talking" {
		t.Fatalf("unexpected body: %q", res.Messages[0].Text)
	}
}

func TestParseTelegramBracketForm(t *testing.T) {
	hint := model.PlatformTelegram
	raw := "[22:15:00] Alice: Hey there\n[22:16:30] Bob: Hi!"
	res, err := Parse(raw, &hint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(res.Messages))
	}
	if res.Messages[0].Sender != "Alice" || res.Messages[0].Text != "Hey there" {
		t.Fatalf("unexpected message: %+v", res.Messages[0])
	}
	if res.Messages[0].Timestamp == nil {
		t.Fatalf("expected a timestamp defaulted to today")
	}
	if res.Messages[0].Timestamp.Hour() != 22 || res.Messages[0].Timestamp.Minute() != 15 {
		t.Fatalf("unexpected time of day: %v", res.Messages[0].Timestamp)
	}
}

func TestParseTelegramJSON(t *testing.T) {
	hint := model.PlatformTelegram
	raw := `{"date":"2023-12-31T22:15:00","from":"Alice","text":"Hey there"}`
	res, err := Parse(raw, &hint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(res.Messages))
	}
	if res.Messages[0].Sender != "Alice" || res.Messages[0].Timestamp == nil {
		t.Fatalf("unexpected message: %+v", res.Messages[0])
	}
}
