// Package pipeline orchestrates export loading, caching, and report aggregation.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/chatrecap/internal/model"
)

// Aggregate computes the report for scope over the extracted messages.
// Years and months are taken in loc; a nil loc means time.Local.
func Aggregate(messages []model.Message, totalConversations int, scope model.Scope, loc *time.Location) model.Report {
	if loc == nil {
		loc = time.Local
	}
	filtered := FilterByYear(messages, scope.Year, loc)

	report := model.Report{
		Scope:              scope,
		TotalConversations: totalConversations,
		TotalMessages:      len(filtered),
	}

	monthMap := make(map[model.YearMonth]*model.MonthlyStats)
	for _, m := range filtered {
		switch m.Role {
		case model.RoleUser:
			report.User.Messages++
			report.User.Chars += m.Chars()
		case model.RoleAssistant:
			report.Assistant.Messages++
			report.Assistant.Chars += m.Chars()
		}

		local := m.Timestamp.In(loc)
		key := model.YearMonth{Year: local.Year(), Month: local.Month()}
		ms, ok := monthMap[key]
		if !ok {
			ms = &model.MonthlyStats{Key: key}
			monthMap[key] = ms
		}
		ms.Messages++
	}

	report.Monthly = make([]model.MonthlyStats, 0, len(monthMap))
	for _, ms := range monthMap {
		report.Monthly = append(report.Monthly, *ms)
	}
	sort.Slice(report.Monthly, func(i, j int) bool {
		return report.Monthly[i].Key.Before(report.Monthly[j].Key)
	})

	report.Models = CountModels(filtered).Sorted()

	if totalConversations > 0 {
		avg := float64(report.TotalMessages) / float64(totalConversations)
		report.AvgPerConversation = &avg
	}

	return report
}

// FilterByYear returns messages whose local-time year equals year. Year 0
// keeps every message.
func FilterByYear(messages []model.Message, year int, loc *time.Location) []model.Message {
	if year == 0 {
		return messages
	}
	if loc == nil {
		loc = time.Local
	}

	var result []model.Message
	for _, m := range messages {
		if m.Timestamp.In(loc).Year() == year {
			result = append(result, m)
		}
	}
	return result
}

// Years returns the distinct local-time years present in messages, ascending.
func Years(messages []model.Message, loc *time.Location) []int {
	if loc == nil {
		loc = time.Local
	}
	seen := make(map[int]struct{})
	for _, m := range messages {
		seen[m.Timestamp.In(loc).Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
