package controller

import (
	"testing"

	"github.com/RubachokBoss/progress-log/client/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestStatusBadge(t *testing.T) {
	cases := map[string]string{
		"completed":   BadgeSuccess,
		"COMPLETED":   BadgeSuccess,
		"in_progress": BadgeWarning,
		"not_started": BadgeSecondary,
		"Submitted":   BadgeInfo,
		"reviewed":    BadgePrimary,
		"":            BadgeSecondary,
		"archived":    BadgeSecondary,
	}

	for status, want := range cases {
		assert.Equal(t, want, StatusBadge(status), "status %q", status)
	}
}

func TestRenderLogsCountIgnoresRowCount(t *testing.T) {
	view := &fakeView{}

	RenderLogs(view, []models.LogEntry{{Email: "a@x.io", Status: models.StatusReviewed}}, 40)

	assert.Equal(t, "40 entries", view.count)
	assert.Len(t, view.rows, 1)
	assert.Equal(t, BadgePrimary, view.rows[0].Badge)
}
