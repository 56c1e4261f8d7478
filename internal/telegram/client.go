package telegram

import (
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// splitClient gives long polls their own timeout so that every other
// Bot API call, sends included, is bounded by the send timeout.
type splitClient struct {
	poll *http.Client
	send *http.Client
}

// NewHTTPClient returns a Bot API client. getUpdates requests may take up to
// pollTimeout; all other requests are cut off after sendTimeout.
func NewHTTPClient(pollTimeout, sendTimeout time.Duration) tgbotapi.HTTPClient {
	return &splitClient{
		poll: &http.Client{Timeout: pollTimeout},
		send: &http.Client{Timeout: sendTimeout},
	}
}

func (c *splitClient) Do(req *http.Request) (*http.Response, error) {
	if strings.HasSuffix(req.URL.Path, "/getUpdates") {
		return c.poll.Do(req)
	}
	return c.send.Do(req)
}
