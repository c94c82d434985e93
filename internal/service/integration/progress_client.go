package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RubachokBoss/progress-log/client/internal/models"
	"github.com/rs/zerolog"
)

type ProgressClient interface {
	CreateLog(ctx context.Context, entry models.LogEntry) (*models.CreateLogResponse, error)
	GetLogs(ctx context.Context, filters models.FilterCriteria) (*models.LogCollection, error)
	DeleteAllLogs(ctx context.Context, key string) (*models.DeleteLogsResponse, error)
	Ping(ctx context.Context) error
}

type ClientConfig struct {
	BaseURL         string
	LogEndpoint     string
	LogsEndpoint    string
	Timeout         time.Duration
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

type progressClient struct {
	baseURL      string
	logEndpoint  string
	logsEndpoint string
	client       *http.Client
	logger       zerolog.Logger
}

func NewProgressClient(cfg ClientConfig, logger zerolog.Logger) ProgressClient {
	if cfg.LogEndpoint == "" {
		cfg.LogEndpoint = "/log"
	}
	if cfg.LogsEndpoint == "" {
		cfg.LogsEndpoint = "/logs"
	}

	return &progressClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		logEndpoint:  cfg.LogEndpoint,
		logsEndpoint: cfg.LogsEndpoint,
		client: &http.Client{
			// Timeout 0 - ждем столько, сколько позволяет транспорт
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				MaxIdleConns:    cfg.MaxIdleConns,
				IdleConnTimeout: cfg.IdleConnTimeout,
			},
		},
		logger: logger.With().Str("component", "progress-client").Logger(),
	}
}

func (c *progressClient) CreateLog(ctx context.Context, entry models.LogEntry) (*models.CreateLogResponse, error) {
	const op = "create log"

	body, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log entry: %w", err)
	}

	var created models.CreateLogResponse
	if err := c.do(ctx, op, http.MethodPost, c.baseURL+c.logEndpoint, body, &created, false); err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("email", entry.Email).
		Str("exercise", entry.Exercise).
		Msg("Progress log created")

	return &created, nil
}

func (c *progressClient) GetLogs(ctx context.Context, filters models.FilterCriteria) (*models.LogCollection, error) {
	const op = "list logs"

	endpoint := c.baseURL + c.logsEndpoint
	if query := filters.Query(); len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var list models.ListLogsResponse
	if err := c.do(ctx, op, http.MethodGet, endpoint, nil, &list, true); err != nil {
		return nil, err
	}

	return list.Collection(), nil
}

func (c *progressClient) DeleteAllLogs(ctx context.Context, key string) (*models.DeleteLogsResponse, error) {
	const op = "delete logs"

	endpoint := c.baseURL + c.logsEndpoint + "?" + url.Values{"key": {key}}.Encode()

	var deleted models.DeleteLogsResponse
	if err := c.do(ctx, op, http.MethodDelete, endpoint, nil, &deleted, false); err != nil {
		return nil, err
	}

	c.logger.Warn().Msg("All progress logs deleted")

	return &deleted, nil
}

func (c *progressClient) Ping(ctx context.Context) error {
	const op = "ping"

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+c.logsEndpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return &ApplicationError{Op: op, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return nil
}

// do выполняет один запрос без повторов и раскладывает ответ по out.
// strict=false: тело успешного ответа не обязательно (для create/delete важен только статус)
func (c *progressClient) do(ctx context.Context, op, method, endpoint string, body []byte, out interface{}, strict bool) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logURL := redactKey(endpoint)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("url", logURL).Msg("Progress API unreachable")
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("url", logURL).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Progress API call")

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ApplicationError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, payload),
		}
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		if strict {
			return &TransportError{Op: op, Err: fmt.Errorf("empty response body")}
		}
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		if !strict {
			c.logger.Debug().Err(err).Str("url", logURL).Msg("Ignoring undecodable success body")
			return nil
		}
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

func errorMessage(status int, payload []byte) string {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(payload, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return http.StatusText(status)
}

// redactKey прячет секретный ключ удаления из логов
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	if !q.Has("key") {
		return raw
	}
	q.Set("key", "REDACTED")
	u.RawQuery = q.Encode()

	return u.String()
}
