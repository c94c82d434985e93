package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/RubachokBoss/progress-log/client/internal/models"
	"github.com/RubachokBoss/progress-log/client/internal/notify"
	"github.com/RubachokBoss/progress-log/client/internal/service/integration"
	"github.com/rs/zerolog"
)

// Ошибки предварительной проверки: до сервера запрос не доходит
var (
	ErrMissingSecretKey = errors.New("secret key is required")
	ErrDeleteDeclined   = errors.New("delete all logs was not confirmed")
)

const (
	MsgLogCreated       = "Progress logged successfully!"
	MsgLogsDeleted      = "All logs deleted successfully!"
	MsgSecretKeyMissing = "Please enter the secret key"
	ConfirmDeletePrompt = "Are you sure you want to delete ALL progress logs? This action cannot be undone."

	applicationErrorPrefix = "Error: "
	transportErrorPrefix   = "Network error: "
)

type Options struct {
	// PreserveFiltersOnSubmit: после добавления записи перечитывать с текущими
	// фильтрами вместо сброса на полный список
	PreserveFiltersOnSubmit bool
}

// LogController не хранит состояния между вызовами; всё, что нужно, приходит
// через FormReader/ViewRenderer/Confirmer и Notifier.
type LogController struct {
	api      integration.ProgressClient
	form     FormReader
	view     ViewRenderer
	confirm  Confirmer
	notifier notify.Notifier
	logger   zerolog.Logger
	opts     Options
}

func New(
	api integration.ProgressClient,
	form FormReader,
	view ViewRenderer,
	confirm Confirmer,
	notifier notify.Notifier,
	logger zerolog.Logger,
	opts Options,
) *LogController {
	return &LogController{
		api:      api,
		form:     form,
		view:     view,
		confirm:  confirm,
		notifier: notifier,
		logger:   logger,
		opts:     opts,
	}
}

func (c *LogController) SubmitLog(ctx context.Context) error {
	entry := c.form.LogForm()

	if _, err := c.api.CreateLog(ctx, entry); err != nil {
		c.fail("submit log", err)
		return err
	}

	c.notifier.Notify(MsgLogCreated, notify.SeveritySuccess)
	c.form.ResetLogForm()

	filters := models.FilterCriteria{}
	if c.opts.PreserveFiltersOnSubmit {
		filters = c.form.FilterForm()
	}
	// ошибка перечитывания уже показана пользователю, сама запись создана
	_ = c.FetchLogs(ctx, filters)

	return nil
}

func (c *LogController) FetchLogs(ctx context.Context, filters models.FilterCriteria) error {
	collection, err := c.api.GetLogs(ctx, filters)
	if err != nil {
		c.fail("fetch logs", err)
		return err
	}

	c.RenderLogs(collection.Entries, collection.TotalCount)
	return nil
}

func (c *LogController) RenderLogs(entries []models.LogEntry, total int) {
	RenderLogs(c.view, entries, total)
}

func (c *LogController) ApplyFilters(ctx context.Context) error {
	return c.FetchLogs(ctx, c.form.FilterForm())
}

func (c *LogController) ClearFilters(ctx context.Context) error {
	c.form.ResetFilterForm()
	return c.FetchLogs(ctx, models.FilterCriteria{})
}

func (c *LogController) DeleteAllLogs(ctx context.Context) error {
	key := strings.TrimSpace(c.form.SecretKey())
	if key == "" {
		c.notifier.Notify(MsgSecretKeyMissing, notify.SeverityWarning)
		return ErrMissingSecretKey
	}

	if !c.confirm.Confirm(ConfirmDeletePrompt) {
		c.logger.Debug().Msg("Delete all logs declined")
		return ErrDeleteDeclined
	}

	resp, err := c.api.DeleteAllLogs(ctx, key)
	if err != nil {
		c.fail("delete logs", err)
		return err
	}

	msg := MsgLogsDeleted
	if resp != nil && resp.Message != "" {
		msg = resp.Message
	}
	c.notifier.Notify(msg, notify.SeveritySuccess)
	c.form.ClearSecretKey()

	_ = c.FetchLogs(ctx, models.FilterCriteria{})

	return nil
}

func (c *LogController) OnLoad(ctx context.Context) error {
	return c.FetchLogs(ctx, models.FilterCriteria{})
}

func (c *LogController) fail(op string, err error) {
	c.logger.Warn().Err(err).Str("operation", op).Msg("Progress API request failed")
	c.notifier.Notify(ErrorMessage(err), notify.SeverityDanger)
}

// ErrorMessage разводит "сервер отказал" и "не достучались до сервера"
func ErrorMessage(err error) string {
	var appErr *integration.ApplicationError
	if errors.As(err, &appErr) {
		return applicationErrorPrefix + appErr.Message
	}

	var transportErr *integration.TransportError
	if errors.As(err, &transportErr) {
		return transportErrorPrefix + transportErr.Err.Error()
	}

	return transportErrorPrefix + err.Error()
}
