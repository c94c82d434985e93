package controller

import (
	"fmt"
	"strings"

	"github.com/RubachokBoss/progress-log/client/internal/models"
)

const (
	BadgeSuccess   = "success"
	BadgeWarning   = "warning"
	BadgeSecondary = "secondary"
	BadgeInfo      = "info"
	BadgePrimary   = "primary"
)

const EmptyStateMessage = "No logs found"

var statusBadges = map[models.Status]string{
	models.StatusCompleted:  BadgeSuccess,
	models.StatusInProgress: BadgeWarning,
	models.StatusNotStarted: BadgeSecondary,
	models.StatusSubmitted:  BadgeInfo,
	models.StatusReviewed:   BadgePrimary,
}

// StatusBadge - без учета регистра, всё неизвестное серое
func StatusBadge(status string) string {
	if badge, ok := statusBadges[models.Status(strings.ToLower(strings.TrimSpace(status)))]; ok {
		return badge
	}
	return BadgeSecondary
}

func CountLabel(total int) string {
	return fmt.Sprintf("%d entries", total)
}

// RenderLogs: счетчик всегда равен total из ответа, а не числу строк
func RenderLogs(view ViewRenderer, entries []models.LogEntry, total int) {
	view.ShowCount(CountLabel(total))

	if len(entries) == 0 {
		view.ShowEmpty(EmptyStateMessage)
		return
	}

	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			Entry: e,
			Badge: StatusBadge(string(e.Status)),
		})
	}
	view.ShowRows(rows)
}
