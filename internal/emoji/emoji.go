// Package emoji extracts emoji code points from a text run and scores
// their aggregate polarity.
package emoji

import (
	"unicode"

	"github.com/Napageneral/cae/internal/model"
)

const zwj = '‍'
const variationSelector16 = '️'

// emojiRanges approximates the Unicode "Emoji" property using the block
// ranges that the frozen polarity table draws from (emoticons, misc
// symbols and pictographs, dingbats, transport). It is intentionally a
// conservative subset rather than a full Unicode emoji-data table: the
// engine only needs to recognize emoji it can score, plus count presence
// for confidence purposes.
var emojiRanges = []*unicode.RangeTable{
	{R16: []unicode.Range16{{Lo: 0x2600, Hi: 0x27BF, Stride: 1}}},
	{R32: []unicode.Range32{{Lo: 0x1F300, Hi: 0x1FAFF, Stride: 1}}},
}

func isEmojiRune(r rune) bool {
	for _, tbl := range emojiRanges {
		if unicode.Is(tbl, r) {
			return true
		}
	}
	return false
}

// Result is the aggregate emoji analysis for one text run.
type Result struct {
	HasEmojis    bool
	Count        int
	PerEmojiCount map[string]int
	// Sequence preserves first-appearance order of distinct emoji keys,
	// used by callers that need a stable tie-break (e.g. top-N rollups).
	Sequence []string
	Label    model.SentimentLabel
	Confidence float64
}

// Analyze extracts emoji sequences from text (expanding ZWJ-joined runs
// into one canonical key) and returns an aggregate polarity label and
// confidence.
func Analyze(text string) Result {
	runes := []rune(text)
	res := Result{PerEmojiCount: map[string]int{}}

	var sum float64
	i := 0
	for i < len(runes) {
		r := runes[i]
		if !isEmojiRune(r) {
			i++
			continue
		}
		seq := []rune{r}
		j := i + 1
		for j < len(runes) {
			if runes[j] == variationSelector16 {
				seq = append(seq, runes[j])
				j++
				continue
			}
			if runes[j] == zwj && j+1 < len(runes) && isEmojiRune(runes[j+1]) {
				seq = append(seq, runes[j], runes[j+1])
				j += 2
				continue
			}
			break
		}
		key := string(seq)
		if _, seen := res.PerEmojiCount[key]; !seen {
			res.Sequence = append(res.Sequence, key)
		}
		res.PerEmojiCount[key]++
		res.Count++
		res.HasEmojis = true
		sum += polarity[key]
		i = j
	}

	if !res.HasEmojis {
		res.Label = model.SentimentNeutral
		res.Confidence = 0
		return res
	}

	switch {
	case sum > 0:
		res.Label = model.SentimentPositive
	case sum < 0:
		res.Label = model.SentimentNegative
	default:
		res.Label = model.SentimentNeutral
	}

	denom := float64(res.Count)
	if denom < 3 {
		denom = 3
	}
	conf := sum
	if conf < 0 {
		conf = -conf
	}
	conf /= denom
	if conf > 1 {
		conf = 1
	}
	res.Confidence = conf
	return res
}

// ToModel converts a Result into the wire-facing model.EmojiAnalysis.
func (r Result) ToModel() *model.EmojiAnalysis {
	return &model.EmojiAnalysis{
		Label:      r.Label,
		Confidence: r.Confidence,
		HasEmojis:  r.HasEmojis,
	}
}
