package view

import (
	"context"
	"io"
	"time"

	"github.com/RubachokBoss/progress-log/client/internal/controller"
	"github.com/RubachokBoss/progress-log/client/internal/models"
	"github.com/RubachokBoss/progress-log/client/internal/notify"
	"github.com/a-h/templ"
)

type PageData struct {
	Entry         models.LogEntry
	Filters       models.FilterCriteria
	CountLabel    string
	EmptyMessage  string
	Rows          []controller.Row
	Notifications []notify.Notification
	Now           time.Time
}

// Page - корневой фрагмент #app; htmx заменяет его целиком
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.print(`<main id="app">`)
		if p.err != nil {
			return p.err
		}

		for _, c := range []templ.Component{
			Overlay(data.Notifications, data.Now),
			LogForm(data.Entry, data.Filters),
			FilterForm(data.Filters),
			DeletePanel(),
			LogTable(data.CountLabel, data.EmptyMessage, data.Rows),
		} {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}

		p.print(`</main>`)
		return p.err
	})
}

const swapAttrs = `hx-target="#app" hx-swap="outerHTML"`

// LogForm несет копию примененных фильтров, чтобы перечитать список с ними
func LogForm(entry models.LogEntry, filters models.FilterCriteria) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.printf(`<section class="card mb-4"><div class="card-body"><h2 class="h5">Log progress</h2>`+
			`<form id="log-form" method="post" action="/ui/logs" hx-post="/ui/logs" %s class="row g-3">`, swapAttrs)
		textInput(p, "email", "Email", "email", entry.Email, true)
		textInput(p, "student_id", "Student ID", "text", entry.StudentID, true)
		textInput(p, "week", "Week", "text", entry.Week, true)
		textInput(p, "exercise", "Exercise", "text", entry.Exercise, true)

		p.print(`<div class="col-md-4"><label class="form-label" for="status">Status</label>` +
			`<select class="form-select" id="status" name="status" required><option value="">Select status</option>`)
		for _, s := range models.Statuses() {
			selected := ""
			if s == entry.Status {
				selected = " selected"
			}
			p.printf(`<option value="%s"%s>%s</option>`, esc(string(s)), selected, esc(s.Label()))
		}
		p.print(`</select></div>`)

		p.printf(`<div class="col-12"><label class="form-label" for="feedback">Feedback</label>`+
			`<textarea class="form-control" id="feedback" name="feedback" rows="2" required>%s</textarea></div>`, esc(entry.Feedback))
		p.print(`<div class="col-12"><button type="submit" class="btn btn-primary">Submit log</button></div>`)
		hiddenInput(p, "filter_email", filters.Email)
		hiddenInput(p, "filter_student_id", filters.StudentID)
		hiddenInput(p, "filter_week", filters.Week)
		p.print(`</form></div></section>`)
		return p.err
	})
}

func FilterForm(filters models.FilterCriteria) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.printf(`<section class="card mb-4"><div class="card-body"><h2 class="h5">Filter logs</h2>`+
			`<form id="filter-form" method="get" action="/ui/logs" hx-get="/ui/logs" %s class="row g-3">`, swapAttrs)
		textInput(p, "filter_email", "Email", "email", filters.Email, false)
		textInput(p, "filter_student_id", "Student ID", "text", filters.StudentID, false)
		textInput(p, "filter_week", "Week", "text", filters.Week, false)
		p.printf(`<div class="col-12"><button type="submit" class="btn btn-outline-primary me-2">Apply filters</button>`+
			`<button type="submit" class="btn btn-outline-secondary" formmethod="post" formaction="/ui/filters/clear" hx-post="/ui/filters/clear" %s>Clear</button></div>`, swapAttrs)
		p.print(`</form></div></section>`)
		return p.err
	})
}

// DeletePanel: ключ никогда не возвращается в разметку
func DeletePanel() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.printf(`<section class="card border-danger mb-4"><div class="card-body"><h2 class="h5 text-danger">Delete all logs</h2>`+
			`<form id="delete-form" method="post" action="/ui/logs/delete" hx-post="/ui/logs/delete" %s `+
			`hx-confirm="%s" hx-vals='{"confirm": "yes"}' class="row g-3">`, swapAttrs, esc(controller.ConfirmDeletePrompt))
		p.printf(`<div class="col-md-4"><label class="form-label" for="secret_key">Secret key</label>`+
			`<input class="form-control" type="password" id="secret_key" name="secret_key" value="" autocomplete="off"></div>`)
		p.print(`<div class="col-12 form-check ms-2"><input class="form-check-input" type="checkbox" id="confirm" name="confirm" value="yes">` +
			`<label class="form-check-label" for="confirm">I understand this cannot be undone</label></div>`)
		p.print(`<div class="col-12"><button type="submit" class="btn btn-danger">Delete all logs</button></div>`)
		p.print(`</form></div></section>`)
		return p.err
	})
}

func LogTable(countLabel, emptyMessage string, rows []controller.Row) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.print(`<section class="card"><div class="card-body">`)
		p.print(`<div class="d-flex justify-content-between align-items-center mb-3"><h2 class="h5 mb-0">Logs</h2>`)
		if err := CountBadge(countLabel).Render(ctx, w); err != nil {
			return err
		}
		p.print(`</div><div class="table-responsive"><table class="table table-striped align-middle" id="logs-table">`)
		p.print(`<thead><tr><th>Email</th><th>Student ID</th><th>Week</th><th>Exercise</th><th>Status</th><th>Feedback</th></tr></thead><tbody>`)

		if len(rows) == 0 && emptyMessage != "" {
			p.printf(`<tr class="empty-state"><td colspan="6" class="text-center text-muted">%s</td></tr>`, esc(emptyMessage))
		}
		for _, row := range rows {
			e := row.Entry
			p.printf(`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td><span class="badge bg-%s">%s</span></td><td>%s</td></tr>`,
				esc(e.Email), esc(e.StudentID), esc(e.Week), esc(e.Exercise),
				esc(row.Badge), esc(statusLabel(e.Status)), esc(e.Feedback))
		}

		p.print(`</tbody></table></div></div></section>`)
		return p.err
	})
}

func CountBadge(label string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := newPrinter(w)
		p.printf(`<span id="log-count" class="badge bg-secondary">%s</span>`, esc(label))
		return p.err
	})
}

func textInput(p *printer, name, label, kind, value string, required bool) {
	req := ""
	if required {
		req = " required"
	}
	p.printf(`<div class="col-md-4"><label class="form-label" for="%[1]s">%[2]s</label>`+
		`<input class="form-control" type="%[3]s" id="%[1]s" name="%[1]s" value="%[4]s"%[5]s></div>`,
		name, esc(label), kind, esc(value), req)
}

func hiddenInput(p *printer, name, value string) {
	p.printf(`<input type="hidden" name="%s" value="%s">`, name, esc(value))
}

func statusLabel(status models.Status) string {
	if s, ok := models.ParseStatus(string(status)); ok {
		return s.Label()
	}
	return string(status)
}
