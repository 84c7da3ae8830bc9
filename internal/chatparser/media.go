package chatparser

import (
	"strings"

	"github.com/Napageneral/cae/internal/model"
)

// mediaPlaceholders are the case-insensitive substrings that mark a
// message as a media/attachment placeholder rather than real text.
var mediaPlaceholders = []string{
	"<media omitted>",
	"image omitted",
	"video omitted",
	"sticker omitted",
	"audio omitted",
	"gif omitted",
	"(file attached)",
	"document omitted",
}

func markMedia(m *model.Message) {
	lower := strings.ToLower(m.Text)
	for _, p := range mediaPlaceholders {
		if strings.Contains(lower, p) {
			m.IsMedia = true
			return
		}
	}
}
