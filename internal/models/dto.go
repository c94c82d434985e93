package models

// Data Transfer Objects

type CreateLogResponse struct {
	Message string   `json:"message"`
	Data    LogEntry `json:"data"`
}

type ListLogsResponse struct {
	Logs           []DisplayEntry `json:"logs"`
	TotalCount     int            `json:"total_count"`
	FiltersApplied *FilterEcho    `json:"filters_applied,omitempty"`
}

// FilterEcho - фильтры, которые сервер реально применил (null для отсутствующих)
type FilterEcho struct {
	Email     *string `json:"email"`
	StudentID *string `json:"student_id"`
	Week      *string `json:"week"`
}

type DeleteLogsResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (r *ListLogsResponse) Collection() *LogCollection {
	entries := make([]LogEntry, 0, len(r.Logs))
	for _, l := range r.Logs {
		entries = append(entries, l.Entry())
	}

	return &LogCollection{
		Entries:    entries,
		TotalCount: r.TotalCount,
	}
}
