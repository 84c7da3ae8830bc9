// Package chatparser auto-detects and parses the chat export formats the
// engine supports (WhatsApp, Telegram, Discord, iMessage, Generic) into
// the canonical model.Message sequence.
package chatparser

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Napageneral/cae/internal/model"
)

// ErrBadEncoding is the only fatal parse error: the input is not valid UTF-8.
var ErrBadEncoding = errors.New("chatparser: input is not valid UTF-8")

// detectionSampleLines is how many leading non-empty lines format
// detection scores against.
const detectionSampleLines = 200

// detectionMinRatio is the minimum match ratio a format needs to win
// detection, unless every other format scores zero.
const detectionMinRatio = 0.10

// precedence is the tie-break order named in the format-detection rules:
// first format to reach the winning score wins.
var precedence = []model.Platform{
	model.PlatformWhatsApp,
	model.PlatformTelegram,
	model.PlatformDiscord,
	model.PlatformIMessage,
	model.PlatformGeneric,
}

// Result is the outcome of parsing one chat export.
type Result struct {
	Format      model.Platform
	Messages    []model.Message
	Diagnostics []model.Diagnostic
}

// Parse detects (or honors hint) the format of raw and returns the
// canonical message sequence. It is total over any UTF-8 input: malformed
// lines become continuations, skips, or diagnostics, never panics or
// fatal errors. The only fatal error is ErrBadEncoding.
func Parse(raw string, hint *model.Platform) (Result, error) {
	if !utf8.ValidString(raw) {
		return Result{}, ErrBadEncoding
	}

	format := model.PlatformGeneric
	if hint != nil {
		format = *hint
	} else {
		format = detectFormat(raw)
	}

	var messages []model.Message
	var diags []model.Diagnostic

	switch format {
	case model.PlatformWhatsApp:
		messages, diags = parseWhatsApp(raw)
	case model.PlatformTelegram:
		messages, diags = parseTelegram(raw)
	case model.PlatformDiscord:
		messages, diags = parseDiscord(raw)
	case model.PlatformIMessage:
		messages, diags = parseIMessage(raw)
	default:
		format = model.PlatformGeneric
		messages, diags = parseGeneric(raw)
	}

	for i := range messages {
		markMedia(&messages[i])
	}

	return Result{Format: format, Messages: messages, Diagnostics: diags}, nil
}

func nonEmptyLines(raw string, limit int) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, line)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func detectFormat(raw string) model.Platform {
	lines := nonEmptyLines(raw, detectionSampleLines)
	if len(lines) == 0 {
		return model.PlatformGeneric
	}

	scores := map[model.Platform]int{}
	for _, line := range lines {
		if whatsAppLineRe.MatchString(line) {
			scores[model.PlatformWhatsApp]++
		}
		if telegramLineRe.MatchString(line) || telegramHeaderRe.MatchString(line) {
			scores[model.PlatformTelegram]++
		}
		if discordHeaderRe.MatchString(line) {
			scores[model.PlatformDiscord]++
		}
		if iMessageHeaderRe.MatchString(line) {
			scores[model.PlatformIMessage]++
		}
		if genericLineRe.MatchString(line) {
			scores[model.PlatformGeneric]++
		}
	}

	total := len(lines)
	anyNonZero := false
	for _, p := range precedence {
		if scores[p] > 0 {
			anyNonZero = true
			break
		}
	}
	if !anyNonZero {
		return model.PlatformGeneric
	}

	best := model.PlatformGeneric
	bestScore := -1
	for _, p := range precedence {
		s := scores[p]
		ratio := float64(s) / float64(total)
		qualifies := ratio >= detectionMinRatio
		// Unconditional win when every other candidate scored zero.
		if !qualifies {
			othersZero := true
			for _, q := range precedence {
				if q != p && scores[q] > 0 {
					othersZero = false
					break
				}
			}
			qualifies = othersZero && s > 0
		}
		if qualifies && s > bestScore {
			bestScore = s
			best = p
		}
	}
	if bestScore <= 0 {
		return model.PlatformGeneric
	}
	return best
}

// appendContinuation merges an unparsable line into the previous
// message's text, per the continuation policy. Orphan continuations
// (no prior message) are discarded.
func appendContinuation(messages []model.Message, line string) []model.Message {
	if len(messages) == 0 {
		return messages
	}
	last := &messages[len(messages)-1]
	last.Text += "\n" + line
	return messages
}
