package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.telegram.org"

type Bot struct {
	token  string
	apiURL string
	client *http.Client
}

type Option func(*Bot)

// WithAPIURL points the bot at another Bot API host.
func WithAPIURL(apiURL string) Option {
	return func(b *Bot) {
		b.apiURL = strings.TrimRight(apiURL, "/")
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(b *Bot) {
		b.client = client
	}
}

func NewBot(token string, opts ...Option) *Bot {
	b := &Bot{
		token:  token,
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// APIError is a non-200 answer from the Bot API.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error: %s", e.Status)
}

// Temporary reports whether the request may succeed if sent again.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// TransportError is a request that never got an answer from the Bot API.
// The request URL carries the bot token, so only the underlying cause is kept.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "telegram: send message: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Temporary is always true: connection failures are worth another attempt.
func (e *TransportError) Temporary() bool { return true }

func (b *Bot) SendMessage(ctx context.Context, chatID, text string) error {
	endpoint := b.apiURL + "/bot" + b.token + "/sendMessage"

	params := url.Values{}
	params.Add("chat_id", chatID)
	params.Add("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return nil
}
