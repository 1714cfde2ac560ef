// file: internal/push/expo.go
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"zuna/internal/models"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Config holds configuration settings for the Expo push client.
type Config struct {
	Endpoint    string        // Push gateway URL
	AccessToken string        // Optional bearer token for enhanced security
	Timeout     time.Duration // Timeout per HTTP attempt
	MaxRetries  int           // Maximum retry attempts per batch
	BatchSize   int           // Maximum device tokens per request
}

// DefaultConfig provides default configuration values.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "https://exp.host/--/api/v2/push/send",
		Timeout:    10 * time.Second,
		MaxRetries: 3,
		BatchSize:  100,
	}
}

// Client defines the interface for push delivery.
type Client interface {
	// Send delivers one message to every token it names and returns
	// the gateway's per-token receipts.
	Send(ctx context.Context, message *models.PushMessage) ([]models.PushReceipt, error)
}

// Custom errors for specific failure cases.
var (
	ErrNoRecipients    = fmt.Errorf("push message has no recipients")
	ErrSendFailed      = fmt.Errorf("failed to reach push gateway")
	ErrGatewayRejected = fmt.Errorf("push gateway rejected the request")
)

// retryableStatuses are gateway responses worth retrying. Anything
// else from the gateway is a permanent failure for this payload.
var retryableStatuses = []int{
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// expoClient posts messages to the Expo push HTTP API.
type expoClient struct {
	httpClient *http.Client
	config     Config
	logger     *zap.Logger

	// newBackOff is injectable so tests retry without real waits.
	newBackOff func() backoff.BackOff
}

// NewExpoClient creates a push client for the Expo gateway.
func NewExpoClient(config Config, logger *zap.Logger) Client {
	defaults := DefaultConfig()
	if config.Endpoint == "" {
		config.Endpoint = defaults.Endpoint
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = defaults.MaxRetries
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &expoClient{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		logger:     logger,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			// The retry budget is governed by MaxRetries, not wall
			// clock, so the per-attempt context owns the deadline.
			b.MaxElapsedTime = 0
			return b
		},
	}
}

// Send delivers the message in token batches, retrying each batch on
// transient gateway failures.
func (c *expoClient) Send(ctx context.Context, message *models.PushMessage) ([]models.PushReceipt, error) {
	if message == nil || len(message.To) == 0 {
		return nil, ErrNoRecipients
	}

	var receipts []models.PushReceipt
	for _, tokens := range chunkTokens(message.To, c.config.BatchSize) {
		batch := *message
		batch.To = tokens

		batchReceipts, err := c.sendBatch(ctx, &batch)
		if err != nil {
			return receipts, err
		}
		receipts = append(receipts, batchReceipts...)
	}

	for _, r := range receipts {
		if r.Status != "ok" {
			c.logger.Warn("push receipt reported an error",
				zap.String("receipt_id", r.ID),
				zap.String("status", r.Status),
				zap.String("message", r.Message),
			)
		}
	}

	return receipts, nil
}

// sendBatch posts one batch with retries.
func (c *expoClient) sendBatch(ctx context.Context, message *models.PushMessage) ([]models.PushReceipt, error) {
	payload, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("marshal push message: %w", err)
	}

	var receipts []models.PushReceipt
	operation := func() error {
		result, status, opErr := c.post(ctx, payload)
		if opErr != nil {
			if status != 0 && !slices.Contains(retryableStatuses, status) {
				return backoff.Permanent(opErr)
			}
			return opErr
		}
		receipts = result
		return nil
	}

	err = backoff.RetryNotify(
		operation,
		backoff.WithMaxRetries(c.newBackOff(), uint64(c.config.MaxRetries)),
		func(err error, d time.Duration) {
			c.logger.Warn("push attempt failed",
				zap.Int("recipients", len(message.To)),
				zap.Error(err),
				zap.Duration("backoff", d),
			)
		},
	)
	if err != nil {
		c.logger.Error("all push attempts failed",
			zap.Int("recipients", len(message.To)),
			zap.Int("max_retries", c.config.MaxRetries),
			zap.Error(err),
		)
		return nil, err
	}

	return receipts, nil
}

// pushResponse is the gateway's envelope.
type pushResponse struct {
	Data   []models.PushReceipt `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// post performs one HTTP attempt. The returned status is zero for
// transport-level failures, which are always retryable.
func (c *expoClient) post(ctx context.Context, payload []byte) ([]models.PushReceipt, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.config.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("%w: status %d: %s", ErrGatewayRejected, resp.StatusCode, truncateBody(body))
	}

	var parsed pushResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: unreadable response: %v", ErrGatewayRejected, err)
	}
	if len(parsed.Errors) > 0 {
		// Request-level errors come back with a 200 but will not
		// improve on retry.
		return nil, http.StatusBadRequest, fmt.Errorf("%w: %s: %s", ErrGatewayRejected, parsed.Errors[0].Code, parsed.Errors[0].Message)
	}

	return parsed.Data, resp.StatusCode, nil
}

func truncateBody(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// chunkTokens splits tokens into batches of at most size.
func chunkTokens(tokens []string, size int) [][]string {
	if size <= 0 {
		return [][]string{tokens}
	}
	var chunks [][]string
	for start := 0; start < len(tokens); start += size {
		end := start + size
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, tokens[start:end])
	}
	return chunks
}

// ===============================
// DISABLED CLIENT
// ===============================

// disabledClient drops every message. It stands in for the real
// client when push delivery is turned off, so callers never branch.
type disabledClient struct {
	logger *zap.Logger
}

// NewDisabledClient creates a push client that logs and drops.
func NewDisabledClient(logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &disabledClient{logger: logger}
}

func (c *disabledClient) Send(_ context.Context, message *models.PushMessage) ([]models.PushReceipt, error) {
	recipients := 0
	if message != nil {
		recipients = len(message.To)
	}
	c.logger.Debug("push delivery disabled, dropping message",
		zap.Int("recipients", recipients),
	)
	return nil, nil
}
