package aggregator

import (
	"sort"
	"time"

	"github.com/Napageneral/cae/internal/model"
)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

func computeMessagingPatterns(messages []model.Message, totalMessages int) model.MessagingPatterns {
	var hourly [24]int
	dayOfWeek := map[string]int{}
	for _, wd := range weekdayOrder {
		dayOfWeek[wd.String()] = 0
	}
	dayCounts := map[string]int{}
	firstSeenDay := map[string]int{}
	senderCounts := map[string]int{}

	order := 0
	for _, m := range messages {
		senderCounts[m.Sender]++
		if m.Timestamp == nil {
			continue
		}
		ts := m.Timestamp.UTC()
		hourly[ts.Hour()]++
		dayOfWeek[ts.Weekday().String()]++

		dateKey := ts.Format("2006-01-02")
		if _, ok := firstSeenDay[dateKey]; !ok {
			firstSeenDay[dateKey] = order
			order++
		}
		dayCounts[dateKey]++
	}

	mostActiveHours := topHourCounts(hourly, 5)
	mostActiveDays := topDayCounts(dayCounts, firstSeenDay, 5)

	var periodDays int
	if period := computePeriod(messages); period != nil {
		periodDays = period.DurationDays
	}
	frequency := map[string]float64{}
	for sender, count := range senderCounts {
		denom := periodDays
		if denom < 1 {
			denom = 1
		}
		frequency[sender] = float64(count) / float64(denom)
	}

	return model.MessagingPatterns{
		HourlyDistribution:      hourly,
		DayOfWeekDistribution:   dayOfWeek,
		MostActiveHours:         mostActiveHours,
		MostActiveDays:          mostActiveDays,
		FrequencyPerParticipant: frequency,
	}
}

func topHourCounts(hourly [24]int, limit int) []model.HourCount {
	all := make([]model.HourCount, 24)
	for h := 0; h < 24; h++ {
		all[h] = model.HourCount{Hour: h, Count: hourly[h]}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Hour < all[j].Hour
	})
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

func topDayCounts(counts map[string]int, firstSeen map[string]int, limit int) []model.DayCount {
	if len(counts) == 0 {
		return nil
	}
	days := make([]model.DayCount, 0, len(counts))
	for date, count := range counts {
		days = append(days, model.DayCount{Date: date, Count: count})
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].Count != days[j].Count {
			return days[i].Count > days[j].Count
		}
		return firstSeen[days[i].Date] < firstSeen[days[j].Date]
	})
	if limit < len(days) {
		days = days[:limit]
	}
	return days
}
