package handler

import (
	"net/http"
	"strings"

	"github.com/RubachokBoss/progress-log/client/internal/controller"
	"github.com/RubachokBoss/progress-log/client/internal/models"
	"github.com/RubachokBoss/progress-log/client/internal/view"
)

// Имена полей форм
const (
	fieldEmail       = "email"
	fieldStudentID   = "student_id"
	fieldWeek        = "week"
	fieldExercise    = "exercise"
	fieldStatus      = "status"
	fieldFeedback    = "feedback"
	fieldFilterEmail = "filter_email"
	fieldFilterID    = "filter_student_id"
	fieldFilterWeek  = "filter_week"
	fieldSecretKey   = "secret_key"
	fieldConfirm     = "confirm"
)

// pageState живет один запрос: читает формы из r.Form и собирает то,
// что контроллер решил показать. Реализует FormReader, ViewRenderer и Confirmer.
type pageState struct {
	data      view.PageData
	secretKey string
	confirmed bool
	// rendered: контроллер перерисовал таблицу в этом запросе
	rendered bool
}

var (
	_ controller.FormReader   = (*pageState)(nil)
	_ controller.ViewRenderer = (*pageState)(nil)
	_ controller.Confirmer    = (*pageState)(nil)
)

func newPageState(r *http.Request) *pageState {
	// ошибку разбора игнорируем: пустые поля отсеет сервер
	_ = r.ParseForm()

	status := r.FormValue(fieldStatus)
	parsed, _ := models.ParseStatus(status)

	return &pageState{
		data: view.PageData{
			Entry: models.LogEntry{
				Email:     strings.TrimSpace(r.FormValue(fieldEmail)),
				StudentID: strings.TrimSpace(r.FormValue(fieldStudentID)),
				Week:      strings.TrimSpace(r.FormValue(fieldWeek)),
				Exercise:  strings.TrimSpace(r.FormValue(fieldExercise)),
				Status:    parsed,
				Feedback:  strings.TrimSpace(r.FormValue(fieldFeedback)),
			},
			Filters: models.FilterCriteria{
				Email:     r.FormValue(fieldFilterEmail),
				StudentID: r.FormValue(fieldFilterID),
				Week:      r.FormValue(fieldFilterWeek),
			},
		},
		secretKey: r.FormValue(fieldSecretKey),
		confirmed: r.FormValue(fieldConfirm) == "yes",
	}
}

func (p *pageState) LogForm() models.LogEntry          { return p.data.Entry }
func (p *pageState) FilterForm() models.FilterCriteria { return p.data.Filters }
func (p *pageState) SecretKey() string                 { return p.secretKey }

func (p *pageState) ResetLogForm()    { p.data.Entry = models.LogEntry{} }
func (p *pageState) ResetFilterForm() { p.data.Filters = models.FilterCriteria{} }
func (p *pageState) ClearSecretKey()  { p.secretKey = "" }

func (p *pageState) ShowCount(label string) {
	p.data.CountLabel = label
	p.rendered = true
}

func (p *pageState) ShowEmpty(message string) {
	p.data.EmptyMessage = message
	p.data.Rows = nil
	p.rendered = true
}

func (p *pageState) ShowRows(rows []controller.Row) {
	p.data.Rows = rows
	p.data.EmptyMessage = ""
	p.rendered = true
}

// Confirm: браузер спрашивает через hx-confirm, без JS - чекбокс в форме
func (p *pageState) Confirm(string) bool {
	return p.confirmed
}
