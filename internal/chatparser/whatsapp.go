package chatparser

import (
	"regexp"
	"strings"

	"github.com/Napageneral/cae/internal/model"
)

// whatsAppLineRe matches "[]?MM/DD/YYYY[,] HH:MM[:SS]? AM/PM? - Sender: text",
// with optional leading '[' / trailing ']' for the bracketed Android
// export variant and either '-' or an en dash as the separator.
var whatsAppLineRe = regexp.MustCompile(`^\[?(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})[,]? (\d{1,2}):(\d{2})(?::(\d{2}))?\s?([AP]M)?\]? [-–] ([^:]+): (.*)$`)

func parseWhatsApp(raw string) ([]model.Message, []model.Diagnostic) {
	var messages []model.Message
	var diags []model.Diagnostic

	lines := strings.Split(raw, "\n")
	for lineNo, rawLine := range lines {
		line := strings.TrimRight(rawLine, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := whatsAppLineRe.FindStringSubmatch(line)
		if m == nil {
			if len(messages) == 0 {
				diags = append(diags, model.Diagnostic{Kind: model.DiagParserSkip, Line: lineNo + 1, Detail: "orphan continuation discarded"})
				continue
			}
			messages = appendContinuation(messages, strings.TrimSpace(line))
			continue
		}

		month, day, year := atoiOr(m[1], 1), atoiOr(m[2], 1), m[3]
		hour, minute, second := atoiOr(m[4], 0), atoiOr(m[5], 0), atoiOr(m[6], 0)
		hour = to24Hour(hour, m[7])
		ts := buildUTC(normalizeYear(year), month, day, hour, minute, second)

		messages = append(messages, model.Message{
			Timestamp: &ts,
			Sender:    strings.TrimSpace(m[8]),
			Text:      strings.TrimSpace(m[9]),
			Platform:  model.PlatformWhatsApp,
		})
	}

	if len(messages) > 0 {
		diags = append(diags, model.Diagnostic{Kind: model.DiagNaiveTimestamp, Detail: "whatsapp timestamps have no zone info; assumed UTC"})
	}

	return messages, diags
}
