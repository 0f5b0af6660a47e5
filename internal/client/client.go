// Package client is the single gateway to the sprintboard REST API. It attaches
// the bearer token, decodes the response envelope and turns failures into
// *APIError values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sprintboard/internal/config"
	"sprintboard/internal/logger"
	"sprintboard/internal/session"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const loginPath = "/login"

type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *session.Session
	onUnauthorized func()
	maxRetries     uint64
	newBackOff     func() backoff.BackOff
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithOnUnauthorized sets the hook run after an expired session was cleared,
// typically sending the user back to login.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

func WithBackOff(fn func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = fn
	}
}

func New(cfg config.ClientConfig, sess *session.Session, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if sess == nil {
		sess = session.New()
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		session:    sess,
		maxRetries: cfg.MaxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *session.Session {
	return c.session
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Do sends one logical request and decodes the data field of the success
// envelope into out (when out is not nil). GET requests are retried on network
// failures; other methods are attempted once.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("кодирование запроса %s %s: %w", method, path, err)
		}
	}

	var env envelope
	op := func() error {
		res, err := c.roundTrip(ctx, method, path, payload)
		if err != nil {
			return err
		}
		env = res
		return nil
	}

	var err error
	if method == http.MethodGet && c.maxRetries > 0 {
		b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
		err = backoff.RetryNotify(op, b, func(err error, wait time.Duration) {
			logger.Warn("Client: повтор запроса",
				zap.String("path", path),
				zap.Duration("wait", wait),
				zap.Error(err))
		})
	} else {
		err = op()
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Err
		}
	}
	if err != nil {
		return c.handleFailure(path, err)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("разбор ответа %s %s: %w", method, path, err)
	}
	return nil
}

// roundTrip performs one attempt. Only network errors are left retryable.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte) (envelope, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, backoff.Permanent(fmt.Errorf("создание запроса: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Client: сеть недоступна", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return envelope{}, networkError(err)
	}
	defer resp.Body.Close()

	logger.Debug("Client: ответ получен",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("ms", time.Since(start)))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, networkError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var env envelope
		if len(bytes.TrimSpace(data)) > 0 {
			if err := json.Unmarshal(data, &env); err != nil {
				return envelope{}, backoff.Permanent(fmt.Errorf("разбор конверта: %w", err))
			}
		}
		return env, nil
	}

	return envelope{}, backoff.Permanent(decodeFailure(resp.StatusCode, data))
}

func decodeFailure(status int, data []byte) *APIError {
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	apiErr.Status = status
	apiErr.Success = false
	return apiErr
}

// handleFailure clears the session on a 401 from anywhere but the login call.
func (c *Client) handleFailure(path string, err error) error {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return err
	}
	if apiErr.Status != http.StatusUnauthorized || pathOnly(path) == loginPath {
		return apiErr
	}

	logger.Warn("Client: сессия истекла", zap.String("path", path))
	c.session.Clear()
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return fmt.Errorf("%w: %w", ErrSessionExpired, apiErr)
}

func pathOnly(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

// IsSessionExpired reports whether err ended the session.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}
