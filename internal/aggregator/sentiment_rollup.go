package aggregator

import (
	"sort"

	"github.com/Napageneral/cae/internal/emoji"
	"github.com/Napageneral/cae/internal/model"
)

// computeSentimentAnalysis rolls up per-participant and overall sentiment
// ratios. sentiments must be parallel to messages; entries with an empty
// Label (the zero value) are treated as unscored and excluded.
func computeSentimentAnalysis(messages []model.Message, sentiments []model.SentimentResult) (model.SentimentAnalysis, *model.Diagnostic) {
	perParticipantCounts := map[string]map[model.SentimentLabel]int{}
	var overall [3]int // positive, neutral, negative in that order
	scored := 0

	for i, m := range messages {
		if i >= len(sentiments) {
			break
		}
		s := sentiments[i]
		if s.Label == "" {
			continue
		}
		scored++
		if perParticipantCounts[m.Sender] == nil {
			perParticipantCounts[m.Sender] = map[model.SentimentLabel]int{}
		}
		perParticipantCounts[m.Sender][s.Label]++
		switch s.Label {
		case model.SentimentPositive:
			overall[0]++
		case model.SentimentNeutral:
			overall[1]++
		case model.SentimentNegative:
			overall[2]++
		}
	}

	perParticipant := map[string]model.SentimentRatios{}
	for sender, counts := range perParticipantCounts {
		total := counts[model.SentimentPositive] + counts[model.SentimentNeutral] + counts[model.SentimentNegative]
		perParticipant[sender] = ratiosOf(counts, total)
	}

	var diag *model.Diagnostic
	if scored == 0 {
		diag = &model.Diagnostic{Kind: model.DiagNoScoredMessages, Detail: "no messages were scored for sentiment"}
	}

	overallCounts := map[model.SentimentLabel]int{
		model.SentimentPositive: overall[0],
		model.SentimentNeutral:  overall[1],
		model.SentimentNegative: overall[2],
	}

	return model.SentimentAnalysis{
		PerParticipant: perParticipant,
		Overall:        ratiosOf(overallCounts, scored),
	}, diag
}

func ratiosOf(counts map[model.SentimentLabel]int, total int) model.SentimentRatios {
	if total == 0 {
		return model.SentimentRatios{}
	}
	return model.SentimentRatios{
		PositiveRatio: float64(counts[model.SentimentPositive]) / float64(total),
		NeutralRatio:  float64(counts[model.SentimentNeutral]) / float64(total),
		NegativeRatio: float64(counts[model.SentimentNegative]) / float64(total),
	}
}

func computeEmojiStats(messages []model.Message) model.EmojiStats {
	type senderEmoji struct {
		total      int
		counts     map[string]int
		firstSeen  map[string]int
		order      int
		messageCnt int
	}
	perSender := map[string]*senderEmoji{}

	for _, m := range messages {
		if perSender[m.Sender] == nil {
			perSender[m.Sender] = &senderEmoji{counts: map[string]int{}, firstSeen: map[string]int{}}
		}
		se := perSender[m.Sender]
		se.messageCnt++

		res := emoji.Analyze(m.Text)
		if !res.HasEmojis {
			continue
		}
		for _, key := range res.Sequence {
			if _, seen := se.firstSeen[key]; !seen {
				se.firstSeen[key] = se.order
				se.order++
			}
			se.counts[key] += res.PerEmojiCount[key]
			se.total += res.PerEmojiCount[key]
		}
	}

	perParticipant := map[string]model.EmojiParticipantStats{}
	for sender, se := range perSender {
		var perMessage float64
		if se.messageCnt > 0 {
			perMessage = float64(se.total) / float64(se.messageCnt)
		}
		perParticipant[sender] = model.EmojiParticipantStats{
			TotalEmojis:      se.total,
			EmojisPerMessage: perMessage,
			MostUsedEmojis:   topEmojiCounts(se.counts, se.firstSeen, 10),
		}
	}

	return model.EmojiStats{PerParticipant: perParticipant}
}

func topEmojiCounts(counts map[string]int, firstSeen map[string]int, limit int) []model.EmojiCount {
	if len(counts) == 0 {
		return nil
	}
	items := make([]model.EmojiCount, 0, len(counts))
	for k, v := range counts {
		items = append(items, model.EmojiCount{Emoji: k, Count: v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return firstSeen[items[i].Emoji] < firstSeen[items[j].Emoji]
	})
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
