package chatparser

import (
	"regexp"
	"strings"

	"github.com/Napageneral/cae/internal/model"
)

// genericLineRe matches the fallback "Name: text" form with no timestamp.
var genericLineRe = regexp.MustCompile(`^([^:]{1,64}):\s(.+)$`)

func parseGeneric(raw string) ([]model.Message, []model.Diagnostic) {
	var messages []model.Message
	var diags []model.Diagnostic

	for lineNo, rawLine := range strings.Split(raw, "\n") {
		line := strings.TrimRight(rawLine, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := genericLineRe.FindStringSubmatch(line)
		if m == nil {
			if len(messages) == 0 {
				diags = append(diags, model.Diagnostic{Kind: model.DiagParserSkip, Line: lineNo + 1, Detail: "orphan continuation discarded"})
				continue
			}
			messages = appendContinuation(messages, strings.TrimSpace(line))
			continue
		}

		messages = append(messages, model.Message{
			Sender:   strings.TrimSpace(m[1]),
			Text:     strings.TrimSpace(m[2]),
			Platform: model.PlatformGeneric,
		})
	}

	return messages, diags
}
