package aggregator

import (
	"fmt"
	"sort"
	"time"

	"github.com/Napageneral/cae/internal/model"
)

type weeklyDelta struct {
	week    string
	minutes float64
}

func computeEngagementMetrics(messages []model.Message) model.EngagementMetrics {
	responseDeltas := map[string][]float64{}
	weeklyDeltas := map[string][]weeklyDelta{}
	initiations := map[string]int{}

	for i, m := range messages {
		if i == 0 {
			initiations[m.Sender]++
			continue
		}
		prev := messages[i-1]
		if m.Timestamp == nil || prev.Timestamp == nil {
			continue
		}
		gapHours := m.Timestamp.Sub(*prev.Timestamp).Hours()
		if gapHours >= conversationGapHours {
			initiations[m.Sender]++
		}
		if m.Sender == prev.Sender {
			continue
		}
		if gapHours < 0 || gapHours > responseTimeCapHours {
			continue
		}
		minutes := m.Timestamp.Sub(*prev.Timestamp).Minutes()
		responseDeltas[m.Sender] = append(responseDeltas[m.Sender], minutes)
		weeklyDeltas[m.Sender] = append(weeklyDeltas[m.Sender], weeklyDelta{week: isoWeekKey(*m.Timestamp), minutes: minutes})
	}

	responseStats := map[string]model.ResponseTimeStats{}
	for sender, deltas := range responseDeltas {
		responseStats[sender] = summarizeDeltas(deltas)
	}

	weeklyTrends := computeWeeklyTrends(weeklyDeltas)
	backAndForth := computeBackAndForth(messages)

	return model.EngagementMetrics{
		ResponseTimeAnalysis:    responseStats,
		ConversationInitiations: initiations,
		BackAndForthMetrics:     backAndForth,
		WeeklyResponseTrends:    weeklyTrends,
	}
}

// isoWeekKey formats a timestamp's ISO 8601 (year, week) pair, correct
// across year boundaries unlike a naive "%Y-W%W" split.
func isoWeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func computeWeeklyTrends(weekly map[string][]weeklyDelta) map[string][]model.WeeklyResponseTrend {
	if len(weekly) == 0 {
		return nil
	}
	trends := map[string][]model.WeeklyResponseTrend{}
	for sender, deltas := range weekly {
		bucketed := map[string][]float64{}
		for _, d := range deltas {
			bucketed[d.week] = append(bucketed[d.week], d.minutes)
		}
		weeks := make([]string, 0, len(bucketed))
		for w := range bucketed {
			weeks = append(weeks, w)
		}
		sort.Strings(weeks)

		var series []model.WeeklyResponseTrend
		for _, w := range weeks {
			vals := bucketed[w]
			var sum float64
			for _, v := range vals {
				sum += v
			}
			series = append(series, model.WeeklyResponseTrend{
				Week:           w,
				AverageMinutes: sum / float64(len(vals)),
				Count:          len(vals),
			})
		}
		trends[sender] = series
	}
	return trends
}

func summarizeDeltas(deltas []float64) model.ResponseTimeStats {
	sorted := append([]float64(nil), deltas...)
	sort.Float64s(sorted)

	var sum float64
	for _, d := range sorted {
		sum += d
	}
	avg := sum / float64(len(sorted))

	return model.ResponseTimeStats{
		AverageMinutes: avg,
		MedianMinutes:  percentile(sorted, 50),
		FastestMinutes: sorted[0],
		SlowestMinutes: sorted[len(sorted)-1],
		Count:          len(sorted),
	}
}

// percentile computes the p-th percentile of a pre-sorted slice using
// linear interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func computeBackAndForth(messages []model.Message) model.BackAndForth {
	if len(messages) == 0 {
		return model.BackAndForth{}
	}

	var runs []int
	runLen := 1
	for i := 1; i < len(messages); i++ {
		if messages[i].Sender != messages[i-1].Sender {
			runLen++
			continue
		}
		runs = append(runs, runLen)
		runLen = 1
	}
	runs = append(runs, runLen)

	var exchanges []int
	for _, r := range runs {
		if r >= 2 {
			exchanges = append(exchanges, r)
		}
	}
	if len(exchanges) == 0 {
		return model.BackAndForth{}
	}

	var sum, longest int
	for _, e := range exchanges {
		sum += e
		if e > longest {
			longest = e
		}
	}

	return model.BackAndForth{
		TotalExchanges:        len(exchanges),
		AverageExchangeLength: float64(sum) / float64(len(exchanges)),
		LongestExchange:       longest,
	}
}
