package chatparser

import (
	"regexp"
	"strings"

	"github.com/Napageneral/cae/internal/model"
)

// discordHeaderRe matches a Discord export header line:
// "Name — DD/MM/YYYY HH:MM" (em dash, as produced by DiscordChatExporter).
var discordHeaderRe = regexp.MustCompile(`^([^—]+)—\s*(\d{1,2})/(\d{1,2})/(\d{4})\s+(\d{1,2}):(\d{2})\s*([AP]M)?$`)

func parseDiscord(raw string) ([]model.Message, []model.Diagnostic) {
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

		m := discordHeaderRe.FindStringSubmatch(line)
		if m == nil {
			if len(messages) > 0 {
				messages = appendContinuation(messages, trimmed)
			} else {
				diags = append(diags, model.Diagnostic{Kind: model.DiagParserSkip, Line: i + 1, Detail: "orphan continuation discarded"})
			}
			i++
			continue
		}

		day, month, year := atoiOr(m[2], 1), atoiOr(m[3], 1), atoiOr(m[4], 0)
		hour := to24Hour(atoiOr(m[5], 0), m[7])
		minute := atoiOr(m[6], 0)
		ts := buildUTC(year, month, day, hour, minute, 0)
		sender := strings.TrimSpace(m[1])

		var bodyLines []string
		i++
		for i < len(lines) {
			next := strings.TrimRight(lines[i], "\r")
			if discordHeaderRe.MatchString(next) {
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
				Platform:  model.PlatformDiscord,
			})
		}
	}

	if len(messages) > 0 {
		diags = append(diags, model.Diagnostic{Kind: model.DiagNaiveTimestamp, Detail: "discord timestamps have no zone info; assumed UTC"})
	}

	return messages, diags
}
