package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/RubachokBoss/progress-log/client/internal/config"
	"github.com/RubachokBoss/progress-log/client/internal/controller"
	"github.com/RubachokBoss/progress-log/client/internal/models"
	"github.com/RubachokBoss/progress-log/client/internal/service/integration"
	"github.com/RubachokBoss/progress-log/client/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reportedError - ошибка, о которой пользователь уже узнал через уведомление
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

type session struct {
	cfg  *config.Config
	term *Terminal
	log  zerolog.Logger
	api  integration.ProgressClient
}

func (s *session) controller() *controller.LogController {
	return controller.New(s.api, s.term, s.term, s.term, s.term, s.log, controller.Options{
		PreserveFiltersOnSubmit: s.cfg.UI.PreserveFiltersOnSubmit,
	})
}

type rootFlags struct {
	logLevel  string
	noColor   bool
	assumeYes bool
}

// NewRootCommand собирает progressctl; ввод-вывод передается явно ради тестов
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var (
		flags rootFlags
		sess  session
	)

	root := &cobra.Command{
		Use:           "progressctl",
		Short:         "Submit, list and clear student progress logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			sess.cfg = cfg
			sess.log = logger.NewWithWriter(errOut, flags.logLevel, true, flags.noColor)
			sess.term = NewTerminal(in, out, errOut, flags.assumeYes, flags.noColor)
			sess.api = integration.NewProgressClient(integration.ClientConfig{
				BaseURL:         cfg.API.BaseURL,
				LogEndpoint:     cfg.API.LogEndpoint,
				LogsEndpoint:    cfg.API.LogsEndpoint,
				Timeout:         cfg.API.Timeout,
				MaxIdleConns:    cfg.API.MaxIdleConns,
				IdleConnTimeout: cfg.API.IdleConnTimeout,
			}, sess.log)

			sess.log.Debug().Str("api", cfg.API.BaseURL).Msg("progressctl configured")
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("api-url", "http://localhost:5000", "base URL of the progress log API")
	pf.Duration("timeout", 0, "per-request timeout, 0 waits indefinitely")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	// флаги перекрывают config.yaml, .env и окружение
	_ = viper.BindPFlag("api.base_url", pf.Lookup("api-url"))
	_ = viper.BindPFlag("api.timeout", pf.Lookup("timeout"))

	root.AddCommand(
		newListCommand(&sess),
		newAddCommand(&sess),
		newDeleteAllCommand(&sess, &flags),
	)

	return root
}

func newListCommand(sess *session) *cobra.Command {
	var filters models.FilterCriteria

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List progress logs, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess.term.filters = filters
			return reported(sess.controller().ApplyFilters(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&filters.Email, "email", "", "filter by email")
	cmd.Flags().StringVar(&filters.StudentID, "student-id", "", "filter by student id")
	cmd.Flags().StringVar(&filters.Week, "week", "", "filter by week")

	return cmd
}

func newAddCommand(sess *session) *cobra.Command {
	var (
		entry  models.LogEntry
		status string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit a progress log entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, ok := models.ParseStatus(status)
			if !ok {
				return fmt.Errorf("unknown status %q, expected one of: %s", status, statusList())
			}
			entry.Status = parsed

			sess.term.entry = entry
			return reported(sess.controller().SubmitLog(cmd.Context()))
		},
	}

	f := cmd.Flags()
	f.StringVar(&entry.Email, "email", "", "student email")
	f.StringVar(&entry.StudentID, "student-id", "", "student id")
	f.StringVar(&entry.Week, "week", "", "week label, e.g. \"Week 3\"")
	f.StringVar(&entry.Exercise, "exercise", "", "exercise name")
	f.StringVar(&status, "status", "", "status: "+statusList())
	f.StringVar(&entry.Feedback, "feedback", "", "free-form feedback")

	for _, name := range []string{"email", "student-id", "week", "exercise", "status", "feedback"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newDeleteAllCommand(sess *session, flags *rootFlags) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every progress log (requires the secret key)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess.term.secretKey = key

			err := sess.controller().DeleteAllLogs(cmd.Context())
			if errors.Is(err, controller.ErrDeleteDeclined) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
			}
			return reported(err)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "secret key authorizing the deletion")
	cmd.Flags().BoolVarP(&flags.assumeYes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func statusList() string {
	names := make([]string, 0, len(models.Statuses()))
	for _, s := range models.Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Execute запускает progressctl и возвращает код выхода
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCommand(in, out, errOut)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		var rep *reportedError
		if !errors.As(err, &rep) {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
