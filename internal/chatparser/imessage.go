package chatparser

import (
	"regexp"
	"strings"

	"github.com/Napageneral/cae/internal/model"
)

// iMessageHeaderRe matches an iMessage export header line:
// "Month DD, YYYY HH:MM[:SS] (AM|PM)", as produced by imazing-style exports.
var iMessageHeaderRe = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2}),\s*(\d{4})\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AP]M)$`)

// iMessageFromRe matches the "From: Name" line that follows a header.
var iMessageFromRe = regexp.MustCompile(`^From:\s*(.+)$`)

func parseIMessage(raw string) ([]model.Message, []model.Diagnostic) {
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

		m := iMessageHeaderRe.FindStringSubmatch(trimmed)
		if m == nil {
			if len(messages) > 0 {
				messages = appendContinuation(messages, trimmed)
			} else {
				diags = append(diags, model.Diagnostic{Kind: model.DiagParserSkip, Line: i + 1, Detail: "orphan continuation discarded"})
			}
			i++
			continue
		}

		month, ok := monthFromName(m[1])
		if !ok {
			diags = append(diags, model.Diagnostic{Kind: model.DiagParserSkip, Line: i + 1, Detail: "unrecognized month name"})
			i++
			continue
		}
		day, year := atoiOr(m[2], 1), atoiOr(m[3], 0)
		hour := to24Hour(atoiOr(m[4], 0), m[7])
		minute, second := atoiOr(m[5], 0), atoiOr(m[6], 0)
		ts := buildUTC(year, month, day, hour, minute, second)

		sender := "unknown"
		i++
		if i < len(lines) {
			if fm := iMessageFromRe.FindStringSubmatch(strings.TrimSpace(lines[i])); fm != nil {
				sender = strings.TrimSpace(fm[1])
				i++
			}
		}

		var bodyLines []string
		for i < len(lines) {
			next := strings.TrimRight(lines[i], "\r")
			if iMessageHeaderRe.MatchString(strings.TrimSpace(next)) {
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
				Platform:  model.PlatformIMessage,
			})
		}
	}

	if len(messages) > 0 {
		diags = append(diags, model.Diagnostic{Kind: model.DiagNaiveTimestamp, Detail: "imessage timestamps have no zone info; assumed UTC"})
	}

	return messages, diags
}
