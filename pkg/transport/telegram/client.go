package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultAPIBaseURL is the Telegram Bot API endpoint.
const DefaultAPIBaseURL = "https://api.telegram.org"

// Sender sends messages to a chat. The Binding depends on this narrow
// interface so tests can capture outbound messages.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Client is a minimal Telegram Bot API client covering what the bot
// needs: long polling, sending messages, and webhook management.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// ClientConfig contains configuration for the Bot API client.
type ClientConfig struct {
	// Token is the bot token. Never logged.
	Token string

	// BaseURL overrides the Bot API endpoint, used in tests.
	BaseURL string

	// Timeout bounds each HTTP call. It must exceed the long-poll
	// timeout passed to GetUpdates. Default: 65 seconds.
	Timeout time.Duration
}

// NewClient creates a Bot API client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultAPIBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 65 * time.Second
	}

	return &Client{
		baseURL: config.BaseURL,
		token:   config.Token,
		client:  &http.Client{Timeout: config.Timeout},
		logger:  slog.Default().With("component", "telegram.client"),
	}, nil
}

// call POSTs a Bot API method and decodes the result envelope.
func (c *Client) call(ctx context.Context, method string, params interface{}, result interface{}) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal %s params: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("telegram %s returned error %d: %s", method, envelope.ErrorCode, envelope.Description)
	}

	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}
	return nil
}

// GetUpdates long-polls for updates after offset. timeout is the server
// side poll duration in seconds.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error) {
	params := map[string]interface{}{
		"offset":          offset,
		"timeout":         timeout,
		"allowed_updates": []string{"message"},
	}

	var updates []Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage sends text to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	params := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	return c.call(ctx, "sendMessage", params, nil)
}

// SetWebhook registers url as the bot's webhook endpoint.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	params := map[string]interface{}{
		"url":             url,
		"allowed_updates": []string{"message"},
	}
	if err := c.call(ctx, "setWebhook", params, nil); err != nil {
		return err
	}
	c.logger.Info("webhook registered")
	return nil
}

// DeleteWebhook removes the bot's webhook so polling can take over.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	return c.call(ctx, "deleteWebhook", map[string]interface{}{}, nil)
}
