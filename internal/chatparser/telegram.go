package chatparser

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/Napageneral/cae/internal/model"
)

// telegramLineRe matches the inline exported-text form:
// "DD.MM.YYYY HH:MM[:SS] - Name: text".
var telegramLineRe = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})\s+(\d{2}):(\d{2})(?::(\d{2}))?\s*-\s*([^:]+):\s*(.+)$`)

// telegramHeaderRe matches the "next line is the message" header form the
// original exporter also produces: "DD.MM.YYYY HH:MM Name" with no colon.
var telegramHeaderRe = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})\s+(\d{2}):(\d{2})\s+([^:]+)$`)

// telegramBracketRe matches a time-only bracketed export form with no
// date component: "[HH:MM:SS] Name: text". The date defaults to today.
var telegramBracketRe = regexp.MustCompile(`^\[(\d{2}):(\d{2}):(\d{2})\]\s*([^:]+):\s*(.+)$`)

type telegramJSONLine struct {
	Date string `json:"date"`
	From string `json:"from"`
	Text string `json:"text"`
}

func parseTelegram(raw string) ([]model.Message, []model.Diagnostic) {
	var messages []model.Message
	var diags []model.Diagnostic

	lines := strings.Split(raw, "\n")
	i := 0
	for i < len(lines) {
		line := strings.TrimRight(lines[i], "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			i++
			continue
		}

		if trimmed[0] == '{' {
			var jl telegramJSONLine
			if err := json.Unmarshal([]byte(trimmed), &jl); err == nil && jl.From != "" {
				ts := parseTelegramTimestamp(jl.Date)
				messages = append(messages, model.Message{
					Timestamp: ts,
					Sender:    strings.TrimSpace(jl.From),
					Text:      strings.TrimSpace(jl.Text),
					Platform:  model.PlatformTelegram,
				})
				i++
				continue
			}
			diags = append(diags, model.Diagnostic{Kind: model.DiagParserSkip, Line: i + 1, Detail: "malformed telegram JSON line"})
			i++
			continue
		}

		if m := telegramLineRe.FindStringSubmatch(line); m != nil {
			ts := buildUTC(normalizeYear(m[3]), atoiOr(m[2], 1), atoiOr(m[1], 1), atoiOr(m[4], 0), atoiOr(m[5], 0), atoiOr(m[6], 0))
			messages = append(messages, model.Message{
				Timestamp: &ts,
				Sender:    strings.TrimSpace(m[7]),
				Text:      strings.TrimSpace(m[8]),
				Platform:  model.PlatformTelegram,
			})
			i++
			continue
		}

		if m := telegramBracketRe.FindStringSubmatch(line); m != nil {
			now := time.Now().UTC()
			ts := buildUTC(now.Year(), int(now.Month()), now.Day(), atoiOr(m[1], 0), atoiOr(m[2], 0), atoiOr(m[3], 0))
			messages = append(messages, model.Message{
				Timestamp: &ts,
				Sender:    strings.TrimSpace(m[4]),
				Text:      strings.TrimSpace(m[5]),
				Platform:  model.PlatformTelegram,
			})
			i++
			continue
		}

		if m := telegramHeaderRe.FindStringSubmatch(line); m != nil {
			ts := buildUTC(normalizeYear(m[3]), atoiOr(m[2], 1), atoiOr(m[1], 1), atoiOr(m[4], 0), atoiOr(m[5], 0), 0)
			sender := strings.TrimSpace(m[6])

			var bodyLines []string
			i++
			for i < len(lines) {
				next := strings.TrimRight(lines[i], "\r")
				if telegramLineRe.MatchString(next) || telegramHeaderRe.MatchString(next) {
					break
				}
				if strings.TrimSpace(next) != "" {
					bodyLines = append(bodyLines, strings.TrimSpace(next))
				}
				i++
			}
			if len(bodyLines) > 0 {
				messages = append(messages, model.Message{
					Timestamp: &ts,
					Sender:    sender,
					Text:      strings.Join(bodyLines, "\n"),
					Platform:  model.PlatformTelegram,
				})
			}
			continue
		}

		if len(messages) > 0 {
			messages = appendContinuation(messages, trimmed)
		} else {
			diags = append(diags, model.Diagnostic{Kind: model.DiagParserSkip, Line: i + 1, Detail: "orphan continuation discarded"})
		}
		i++
	}

	if len(messages) > 0 {
		diags = append(diags, model.Diagnostic{Kind: model.DiagNaiveTimestamp, Detail: "telegram timestamps have no zone info; assumed UTC"})
	}

	return messages, diags
}

// parseTelegramTimestamp handles the JSON export's ISO-ish date field,
// e.g. "2023-12-31T22:30:45". Returns nil when unparseable, consistent
// with the canonical Message allowing a nil timestamp.
func parseTelegramTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
