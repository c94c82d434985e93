package models

import (
	"net/url"
	"strings"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusSubmitted  Status = "submitted"
	StatusReviewed   Status = "reviewed"
)

var statusLabels = map[Status]string{
	StatusNotStarted: "Not Started",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusSubmitted:  "Submitted",
	StatusReviewed:   "Reviewed",
}

// Statuses возвращает статусы в том порядке, в котором они показываются в форме
func Statuses() []Status {
	return []Status{
		StatusNotStarted,
		StatusInProgress,
		StatusCompleted,
		StatusSubmitted,
		StatusReviewed,
	}
}

// ParseStatus сравнивает без учета регистра; неизвестное значение возвращается как есть
func ParseStatus(s string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := statusLabels[normalized]; ok {
		return normalized, true
	}
	return Status(s), false
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// LogEntry - запись прогресса в том виде, в котором ее принимает POST /log
type LogEntry struct {
	Email     string `json:"email"`
	StudentID string `json:"student_id"`
	Week      string `json:"week"`
	Exercise  string `json:"exercise"`
	Status    Status `json:"status"`
	Feedback  string `json:"feedback"`
}

// DisplayEntry - форма записи, которую отдает GET /logs (заголовки CSV)
type DisplayEntry struct {
	Email     string `json:"Email"`
	StudentID string `json:"Student ID"`
	Week      string `json:"Week"`
	Exercise  string `json:"Exercise"`
	Status    string `json:"Status"`
	Feedback  string `json:"Feedback"`
}

func (d DisplayEntry) Entry() LogEntry {
	return LogEntry{
		Email:     d.Email,
		StudentID: d.StudentID,
		Week:      d.Week,
		Exercise:  d.Exercise,
		Status:    Status(d.Status),
		Feedback:  d.Feedback,
	}
}

// FilterCriteria - пустое поле означает отсутствие ограничения
type FilterCriteria struct {
	Email     string `json:"email,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	Week      string `json:"week,omitempty"`
}

func (f FilterCriteria) IsEmpty() bool {
	return len(f.Query()) == 0
}

// Query содержит только непустые поля фильтра
func (f FilterCriteria) Query() url.Values {
	values := url.Values{}
	if v := strings.TrimSpace(f.Email); v != "" {
		values.Set("email", v)
	}
	if v := strings.TrimSpace(f.StudentID); v != "" {
		values.Set("student_id", v)
	}
	if v := strings.TrimSpace(f.Week); v != "" {
		values.Set("week", v)
	}
	return values
}

// LogCollection - TotalCount может быть больше len(Entries), если API режет выдачу
type LogCollection struct {
	Entries    []LogEntry
	TotalCount int
}
