// Package aggregator rolls up a canonical message stream, paired with its
// already-scored sentiment per message, into the fixed ChatAnalysis schema:
// basic stats, participants, temporal patterns, engagement, sentiment and
// emoji rollups, and the conversation period.
package aggregator

import (
	"sort"
	"strings"
	"time"

	"github.com/Napageneral/cae/internal/config"
	"github.com/Napageneral/cae/internal/model"
)

// conversationGapHours is the minimum silence that marks the next message
// as a new conversation initiation.
const conversationGapHours = config.ConversationGapHours

// responseTimeCapHours bounds how large a sender-switch gap may be before
// it stops counting as a response (it still starts a new initiation).
const responseTimeCapHours = config.ResponseTimeCapHours

// Aggregate computes the full ChatAnalysis for one conversation. sentiments
// must be parallel to messages; an entry with an empty Label marks a
// message that was never scored (media, or scoring was skipped), and is
// excluded from the sentiment rollup. selfName, when non-empty,
// assigns model.RoleSelf to the matching participant (case-insensitive,
// trimmed); every other participant is model.RoleOther.
func Aggregate(messages []model.Message, sentiments []model.SentimentResult, selfName string) (model.ChatAnalysis, []model.Diagnostic) {
	var diags []model.Diagnostic

	basic, participants := computeBasicStats(messages, selfName)
	patterns := computeMessagingPatterns(messages, basic.TotalMessages)
	engagement := computeEngagementMetrics(messages)
	sentimentAnalysis, sentimentDiag := computeSentimentAnalysis(messages, sentiments)
	if sentimentDiag != nil {
		diags = append(diags, *sentimentDiag)
	}
	emojiStats := computeEmojiStats(messages)
	period := computePeriod(messages)

	analysis := model.ChatAnalysis{
		TotalMessages:     basic.TotalMessages,
		Period:            period,
		Participants:      participants,
		BasicStats:        basic,
		MessagingPatterns: patterns,
		EngagementMetrics: engagement,
		SentimentAnalysis: sentimentAnalysis,
		EmojiStats:        emojiStats,
	}

	return analysis, diags
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func computeBasicStats(messages []model.Message, selfName string) (model.BasicStats, map[string]model.Participant) {
	counts := map[string]int{}
	lengthSums := map[string]int{}
	order := []string{}
	seen := map[string]bool{}

	var longest, shortest *model.LengthMark
	var longestTime, shortestTime *time.Time

	for _, m := range messages {
		if !seen[m.Sender] {
			seen[m.Sender] = true
			order = append(order, m.Sender)
		}
		counts[m.Sender]++
		length := len([]rune(m.Text))
		lengthSums[m.Sender] += length

		if longest == nil || isBetterMark(length, m.Timestamp, m.Sender, longest.Length, longestTime, longest.Sender, true) {
			longest = &model.LengthMark{Sender: m.Sender, Length: length}
			longestTime = m.Timestamp
		}
		if shortest == nil || isBetterMark(length, m.Timestamp, m.Sender, shortest.Length, shortestTime, shortest.Sender, false) {
			shortest = &model.LengthMark{Sender: m.Sender, Length: length}
			shortestTime = m.Timestamp
		}
	}

	total := len(messages)
	var avgLen float64
	if total > 0 {
		sum := 0
		for _, l := range lengthSums {
			sum += l
		}
		avgLen = float64(sum) / float64(total)
	}

	participants := map[string]model.Participant{}
	self := normalizeName(selfName)
	for _, name := range order {
		role := model.RoleOther
		if self != "" && normalizeName(name) == self {
			role = model.RoleSelf
		}
		count := counts[name]
		var avg float64
		if count > 0 {
			avg = float64(lengthSums[name]) / float64(count)
		}
		participants[name] = model.Participant{
			Name:          name,
			Role:          role,
			MessageCount:  count,
			AverageLength: avg,
		}
	}

	return model.BasicStats{
		TotalMessages:          total,
		AverageMessageLength:   avgLen,
		LongestMessage:         longest,
		ShortestMessage:        shortest,
		MessagesPerParticipant: counts,
	}, participants
}

// isBetterMark decides whether a candidate (length, ts, sender) beats the
// current best under the max-wins-on-length rule with ties broken by
// earliest timestamp then lexicographic sender. wantMax selects the
// longest-message or shortest-message comparison direction.
func isBetterMark(length int, ts *time.Time, sender string, bestLength int, bestTs *time.Time, bestSender string, wantMax bool) bool {
	if wantMax {
		if length != bestLength {
			return length > bestLength
		}
	} else {
		if length != bestLength {
			return length < bestLength
		}
	}
	if ts == nil && bestTs == nil {
		return sender < bestSender
	}
	if ts == nil {
		return false
	}
	if bestTs == nil {
		return true
	}
	if !ts.Equal(*bestTs) {
		return ts.Before(*bestTs)
	}
	return sender < bestSender
}

func computePeriod(messages []model.Message) *model.Period {
	var start, end *time.Time
	for _, m := range messages {
		if m.Timestamp == nil {
			continue
		}
		if start == nil || m.Timestamp.Before(*start) {
			start = m.Timestamp
		}
		if end == nil || m.Timestamp.After(*end) {
			end = m.Timestamp
		}
	}
	if start == nil || end == nil {
		return nil
	}
	days := int(end.Sub(*start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return &model.Period{Start: *start, End: *end, DurationDays: days}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
