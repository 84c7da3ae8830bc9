// Package redflag evaluates a conversation's aggregated metrics against a
// fixed rule set and produces typed findings plus an overall health label.
package redflag

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Napageneral/cae/internal/config"
	"github.com/Napageneral/cae/internal/model"
)

// minResponseEvents is the slow_responses rule's minimum sample size.
const minResponseEvents = 10

// minTotalInitiations is the one_sided_initiation rule's minimum sample size.
const minTotalInitiations = 10

// minMessagesForImbalance is the message_imbalance rule's minimum total.
const minMessagesForImbalance = 50

// minPeriodDaysForFrequencyDrop is the frequency_drop rule's minimum span.
const minPeriodDaysForFrequencyDrop = 14

// minMessagesForLowEngagement is the low_engagement rule's minimum
// per-participant sample size.
const minMessagesForLowEngagement = 6

const nightActivitySkewRatio = 0.25
const highNegativeSentimentRatio = 0.45
const burstSilenceStdDevMultiple = 2.0

// Detect evaluates the rule set against an aggregated conversation.
// messages provides the raw per-message data (timestamps, senders, text)
// the derived ChatAnalysis fields don't retain in enough granularity for
// the frequency-drop split and the low-engagement question-ratio check;
// analysis supplies everything else.
func Detect(messages []model.Message, analysis model.ChatAnalysis) model.RedFlags {
	var flags, warnings []model.RedFlagFinding

	if f := messageImbalance(analysis); f != nil {
		flags = append(flags, *f)
	}
	flags = append(flags, slowResponses(analysis)...)
	if f := frequencyDrop(messages, analysis); f != nil {
		flags = append(flags, *f)
	}
	if f := oneSidedInitiation(analysis); f != nil {
		flags = append(flags, *f)
	}
	flags = append(flags, lowEngagement(messages, analysis)...)

	if w := highNegativeSentiment(analysis); w != nil {
		warnings = append(warnings, *w)
	}
	if w := nightActivitySkew(analysis); w != nil {
		warnings = append(warnings, *w)
	}
	if w := burstSilence(messages); w != nil {
		warnings = append(warnings, *w)
	}

	return model.RedFlags{
		RedFlags:      flags,
		Warnings:      warnings,
		TotalRedFlags: len(flags),
		TotalWarnings: len(warnings),
		OverallHealth: deriveHealth(flags, warnings),
	}
}

// deriveHealth implements the fixed derivation spec.md §3 names:
// concerning iff totalRedFlags >= 2 or any high-severity flag; moderate
// iff any red flag at all or totalWarnings >= 2; else healthy.
func deriveHealth(flags, warnings []model.RedFlagFinding) model.HealthLabel {
	anyHigh := false
	for _, f := range flags {
		if f.Severity == model.SeverityHigh {
			anyHigh = true
			break
		}
	}
	if len(flags) >= 2 || anyHigh {
		return model.HealthConcerning
	}
	if len(flags) > 0 || len(warnings) >= 2 {
		return model.HealthModerate
	}
	return model.HealthHealthy
}

func messageImbalance(analysis model.ChatAnalysis) *model.RedFlagFinding {
	if analysis.BasicStats.TotalMessages < minMessagesForImbalance {
		return nil
	}
	maxCount, minCount, ok := maxMinCounts(analysis.BasicStats.MessagesPerParticipant)
	if !ok || minCount == 0 {
		return nil
	}
	ratio := float64(maxCount) / float64(minCount)
	if ratio <= config.MessageImbalanceRatio {
		return nil
	}
	return &model.RedFlagFinding{
		Type:        "message_imbalance",
		Severity:    model.SeverityHigh,
		Description: fmt.Sprintf("significant message imbalance: one participant sends %.1fx more messages", ratio),
		Suggestion:  "this may indicate unequal investment in the conversation",
	}
}

func slowResponses(analysis model.ChatAnalysis) []model.RedFlagFinding {
	var out []model.RedFlagFinding
	for name, stats := range analysis.EngagementMetrics.ResponseTimeAnalysis {
		if stats.Count < minResponseEvents {
			continue
		}
		if stats.AverageMinutes <= config.SlowResponseMinutes {
			continue
		}
		out = append(out, model.RedFlagFinding{
			Type:        "slow_responses",
			Severity:    model.SeverityMedium,
			Description: fmt.Sprintf("%s takes an average of %.1f hours to respond", name, stats.AverageMinutes/60),
			Suggestion:  "delayed responses might indicate low prioritization",
		})
	}
	return out
}

func frequencyDrop(messages []model.Message, analysis model.ChatAnalysis) *model.RedFlagFinding {
	if analysis.Period == nil || analysis.Period.DurationDays < minPeriodDaysForFrequencyDrop {
		return nil
	}
	withTimestamps := make([]model.Message, 0, len(messages))
	for _, m := range messages {
		if m.Timestamp != nil {
			withTimestamps = append(withTimestamps, m)
		}
	}
	if len(withTimestamps) == 0 {
		return nil
	}

	start, end := analysis.Period.Start, analysis.Period.End
	firstWeekEnd := start.Add(7 * 24 * time.Hour)
	lastWeekStart := end.Add(-7 * 24 * time.Hour)

	var firstWeekCount, lastWeekCount int
	for _, m := range withTimestamps {
		if !m.Timestamp.After(firstWeekEnd) {
			firstWeekCount++
		}
		if !m.Timestamp.Before(lastWeekStart) {
			lastWeekCount++
		}
	}

	firstRate := float64(firstWeekCount) / 7
	lastRate := float64(lastWeekCount) / 7
	if firstRate <= 0 {
		return nil
	}
	if lastRate >= firstRate*config.FrequencyDropRatio {
		return nil
	}

	dropPct := (firstRate - lastRate) / firstRate * 100
	return &model.RedFlagFinding{
		Type:        "frequency_drop",
		Severity:    model.SeverityHigh,
		Description: fmt.Sprintf("messaging frequency dropped by %.0f%%", dropPct),
		Suggestion:  "a significant decrease in communication may indicate fading interest",
	}
}

func oneSidedInitiation(analysis model.ChatAnalysis) *model.RedFlagFinding {
	total := 0
	maxCount, minCount, ok := -1, -1, false
	for _, count := range analysis.EngagementMetrics.ConversationInitiations {
		total += count
		if !ok {
			maxCount, minCount, ok = count, count, true
			continue
		}
		if count > maxCount {
			maxCount = count
		}
		if count < minCount {
			minCount = count
		}
	}
	if !ok || total < minTotalInitiations || minCount == 0 {
		return nil
	}
	ratio := float64(maxCount) / float64(minCount)
	if ratio <= config.OneSidedInitiationRatio {
		return nil
	}
	return &model.RedFlagFinding{
		Type:        "one_sided_initiation",
		Severity:    model.SeverityMedium,
		Description: "one participant initiates conversations far more often than the other",
		Suggestion:  "consider whether the other person is reciprocating interest",
	}
}

func lowEngagement(messages []model.Message, analysis model.ChatAnalysis) []model.RedFlagFinding {
	var out []model.RedFlagFinding
	counts := map[string]int{}
	questionCounts := map[string]int{}
	for _, m := range messages {
		counts[m.Sender]++
		if strings.Contains(m.Text, "?") {
			questionCounts[m.Sender]++
		}
	}

	for name, participant := range analysis.Participants {
		count := counts[name]
		if count < minMessagesForLowEngagement {
			continue
		}
		questionRatio := float64(questionCounts[name]) / float64(count)
		if participant.AverageLength >= config.LowEngagementAvgChars || questionRatio >= 0.05 {
			continue
		}
		out = append(out, model.RedFlagFinding{
			Type:        "low_engagement",
			Severity:    model.SeverityMedium,
			Description: fmt.Sprintf("%s sends short messages (avg %.0f chars) with few questions", name, participant.AverageLength),
			Suggestion:  "short, non-inquisitive responses may indicate low engagement",
		})
	}
	return out
}

func highNegativeSentiment(analysis model.ChatAnalysis) *model.RedFlagFinding {
	if analysis.SentimentAnalysis.Overall.NegativeRatio <= highNegativeSentimentRatio {
		return nil
	}
	return &model.RedFlagFinding{
		Type:        "high_negative_sentiment",
		Severity:    model.SeverityMedium,
		Description: fmt.Sprintf("overall negative sentiment ratio is %.0f%%", analysis.SentimentAnalysis.Overall.NegativeRatio*100),
		Suggestion:  "recurring negative sentiment is worth discussing directly",
	}
}

func nightActivitySkew(analysis model.ChatAnalysis) *model.RedFlagFinding {
	total := 0
	for _, c := range analysis.MessagingPatterns.HourlyDistribution {
		total += c
	}
	if total == 0 {
		return nil
	}
	night := 0
	for h := 0; h <= 4; h++ {
		night += analysis.MessagingPatterns.HourlyDistribution[h]
	}
	ratio := float64(night) / float64(total)
	if ratio <= nightActivitySkewRatio {
		return nil
	}
	return &model.RedFlagFinding{
		Type:        "night_activity_skew",
		Severity:    model.SeverityLow,
		Description: fmt.Sprintf("%.0f%% of messages are sent between midnight and 4am", ratio*100),
		Suggestion:  "late-night messaging patterns can disrupt sleep for one or both participants",
	}
}

func burstSilence(messages []model.Message) *model.RedFlagFinding {
	dayCounts := map[string]int{}
	for _, m := range messages {
		if m.Timestamp == nil {
			continue
		}
		dayCounts[m.Timestamp.UTC().Format("2006-01-02")]++
	}
	if len(dayCounts) < 2 {
		return nil
	}

	counts := make([]float64, 0, len(dayCounts))
	var sum float64
	for _, c := range dayCounts {
		counts = append(counts, float64(c))
		sum += float64(c)
	}
	mean := sum / float64(len(counts))

	var variance float64
	for _, c := range counts {
		variance += (c - mean) * (c - mean)
	}
	variance /= float64(len(counts))
	stdDev := math.Sqrt(variance)

	if mean == 0 || stdDev <= burstSilenceStdDevMultiple*mean {
		return nil
	}
	return &model.RedFlagFinding{
		Type:        "burst_silence",
		Severity:    model.SeverityLow,
		Description: "messaging activity alternates between bursts and long silences",
		Suggestion:  "irregular communication rhythms are worth noting, even if the average volume looks healthy",
	}
}

func maxMinCounts(counts map[string]int) (max, min int, ok bool) {
	for _, c := range counts {
		if !ok {
			max, min, ok = c, c, true
			continue
		}
		if c > max {
			max = c
		}
		if c < min {
			min = c
		}
	}
	return max, min, ok
}
