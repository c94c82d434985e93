package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/RubachokBoss/progress-log/client/internal/controller"
	"github.com/RubachokBoss/progress-log/client/internal/models"
	"github.com/RubachokBoss/progress-log/client/internal/notify"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// Terminal - адаптер контроллера для командной строки. Формы заполняются
// флагами, таблица идет в out, уведомления и вопросы в errOut.
type Terminal struct {
	out    io.Writer
	errOut io.Writer
	in     *bufio.Reader

	assumeYes bool
	noColor   bool

	entry     models.LogEntry
	filters   models.FilterCriteria
	secretKey string
}

var (
	_ controller.FormReader   = (*Terminal)(nil)
	_ controller.ViewRenderer = (*Terminal)(nil)
	_ controller.Confirmer    = (*Terminal)(nil)
	_ notify.Notifier         = (*Terminal)(nil)
)

func NewTerminal(in io.Reader, out, errOut io.Writer, assumeYes, noColor bool) *Terminal {
	return &Terminal{
		out:       out,
		errOut:    errOut,
		in:        bufio.NewReader(in),
		assumeYes: assumeYes,
		noColor:   noColor,
	}
}

func (t *Terminal) LogForm() models.LogEntry          { return t.entry }
func (t *Terminal) FilterForm() models.FilterCriteria { return t.filters }
func (t *Terminal) SecretKey() string                 { return t.secretKey }

func (t *Terminal) ResetLogForm()    { t.entry = models.LogEntry{} }
func (t *Terminal) ResetFilterForm() { t.filters = models.FilterCriteria{} }
func (t *Terminal) ClearSecretKey()  { t.secretKey = "" }

func (t *Terminal) ShowCount(label string) {
	fmt.Fprintln(t.out, t.paint(color.New(color.Bold), label))
}

func (t *Terminal) ShowEmpty(message string) {
	fmt.Fprintln(t.out, t.paint(color.New(color.Faint), message))
}

func (t *Terminal) ShowRows(rows []controller.Row) {
	table := uitable.New()
	table.MaxColWidth = 48
	table.Wrap = true

	table.AddRow("EMAIL", "STUDENT ID", "WEEK", "EXERCISE", "STATUS", "FEEDBACK")
	for _, row := range rows {
		e := row.Entry
		table.AddRow(e.Email, e.StudentID, e.Week, e.Exercise, t.status(row), e.Feedback)
	}

	fmt.Fprintln(t.out, table)
}

func (t *Terminal) Notify(message string, severity notify.Severity) {
	tag := t.paint(severityColor(severity), "["+string(severity)+"]")
	fmt.Fprintf(t.errOut, "%s %s\n", tag, message)
}

// Confirm: --yes отвечает за пользователя, иначе нужен явный y/yes
func (t *Terminal) Confirm(prompt string) bool {
	if t.assumeYes {
		return true
	}

	fmt.Fprintf(t.errOut, "%s [y/N]: ", prompt)
	answer, err := t.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(t.errOut)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (t *Terminal) status(row controller.Row) string {
	label := string(row.Entry.Status)
	if s, ok := models.ParseStatus(label); ok {
		label = s.Label()
	}
	return t.paint(badgeColor(row.Badge), label)
}

func (t *Terminal) paint(c *color.Color, s string) string {
	if t.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.Sprint(s)
}

func badgeColor(badge string) *color.Color {
	switch badge {
	case controller.BadgeSuccess:
		return color.New(color.FgGreen)
	case controller.BadgeWarning:
		return color.New(color.FgYellow)
	case controller.BadgeInfo:
		return color.New(color.FgCyan)
	case controller.BadgePrimary:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgWhite)
	}
}

func severityColor(s notify.Severity) *color.Color {
	switch s {
	case notify.SeveritySuccess:
		return color.New(color.FgGreen, color.Bold)
	case notify.SeverityWarning:
		return color.New(color.FgYellow, color.Bold)
	case notify.SeverityDanger:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}
