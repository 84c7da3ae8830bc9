package chatparser

import (
	"strings"

	"github.com/Napageneral/cae/internal/model"
)

// Serialize renders messages back into the Generic "Name: text" form
// parseGeneric reads, so Serialize(messages) -> parseGeneric -> messages
// round-trips for any message set with no embedded newlines per line
// becoming ambiguous continuations.
func Serialize(messages []model.Message) string {
	var b strings.Builder
	for _, m := range messages {
		lines := strings.Split(m.Text, "\n")
		b.WriteString(m.Sender)
		b.WriteString(": ")
		b.WriteString(lines[0])
		b.WriteString("\n")
		for _, extra := range lines[1:] {
			b.WriteString(extra)
			b.WriteString("\n")
		}
	}
	return b.String()
}
