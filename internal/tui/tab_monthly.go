package tui

import (
	"github.com/theirongolddev/chatrecap/internal/tui/components"
)

func (a App) renderMonthlyTab(cw int) string {
	r := a.report
	if len(r.Monthly) == 0 {
		return components.ContentCard("Monthly Activity", "No activity", cw)
	}

	labels := make([]string, len(r.Monthly))
	values := make([]int, len(r.Monthly))
	for i, ms := range r.Monthly {
		labels[i] = ms.Key.String()
		values[i] = ms.Messages
	}

	body := components.BarRows(labels, values, components.CardInnerWidth(cw))
	return components.ContentCard("Monthly Activity · "+r.Scope.Label(), body, cw)
}
