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

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.telegram.org"

// APIError is a rejection returned by the bot gateway itself, as
// opposed to a transport-level failure reaching it.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api: %d %s", e.Code, e.Description)
}

// Client is a minimal Bot API client: long polling in, messages out.
// Outgoing calls pass a shared rate limiter so a burst of deliveries
// cannot trip the gateway's global send limit.
type Client struct {
	baseURL     string
	token       string
	httpClient  *http.Client
	limiter     *rate.Limiter
	pollTimeout time.Duration
	log         *slog.Logger
}

// NewClient creates a Client for the production gateway. sendRate is
// outgoing calls per second, burst the number allowed at once.
func NewClient(token string, pollTimeout time.Duration, sendRate float64, burst int, logger *slog.Logger) *Client {
	return NewClientWithURL(defaultBaseURL, token, pollTimeout, sendRate, burst, logger)
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL, token string, pollTimeout time.Duration, sendRate float64, burst int, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		// The HTTP timeout must outlive a full long-poll cycle.
		httpClient:  &http.Client{Timeout: pollTimeout + 10*time.Second},
		limiter:     rate.NewLimiter(rate.Limit(sendRate), burst),
		pollTimeout: pollTimeout,
		log:         logger.With("adapter", "telegram"),
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

// call invokes one Bot API method and unmarshals result into out when
// out is non-nil. Gateway rejections come back as *APIError.
func (c *Client) call(ctx context.Context, method string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: marshal %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bot"+c.token+"/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram: %s: read body: %w", method, err)
	}

	var api apiResponse
	if err := json.Unmarshal(raw, &api); err != nil {
		return fmt.Errorf("telegram: %s: decode response: %w", method, err)
	}
	if !api.OK {
		return &APIError{Code: api.ErrorCode, Description: api.Description}
	}

	if out != nil {
		if err := json.Unmarshal(api.Result, out); err != nil {
			return fmt.Errorf("telegram: %s: decode result: %w", method, err)
		}
	}
	return nil
}

// send is call behind the outgoing rate limiter.
func (c *Client) send(ctx context.Context, method string, payload any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	return c.call(ctx, method, payload, out)
}

// GetUpdates long-polls for the next batch of updates at or after
// offset. It returns an empty batch when the poll window elapses.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	payload := map[string]any{
		"offset":  offset,
		"timeout": int(c.pollTimeout.Seconds()),
	}

	var updates []Update
	if err := c.call(ctx, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage sends a text message and returns the sent message.
func (c *Client) SendMessage(ctx context.Context, p SendMessageParams) (*Message, error) {
	var msg Message
	if err := c.send(ctx, "sendMessage", p, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditMessageText replaces the text of a previously sent message.
func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text, parseMode string) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	if parseMode != "" {
		payload["parse_mode"] = parseMode
	}
	return c.send(ctx, "editMessageText", payload, nil)
}

// AnswerCallbackQuery acknowledges a keyboard press. text, when
// non-empty, is shown to the user as a notification.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	payload := map[string]any{"callback_query_id": callbackID}
	if text != "" {
		payload["text"] = text
	}
	return c.send(ctx, "answerCallbackQuery", payload, nil)
}
