package telegram

import (
	"Feedback_Backend/internal/model"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2/log"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	maxMessageLen  = 4096
)

// Client forwards new feedback to a Telegram chat through the Bot API.
type Client struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
}

func NewClient(token, chatID string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) FeedbackAdded(feedback model.Feedback) {
	c.SendMessage("New feedback: " + feedback.String())
}

// SendMessage delivers msg in the background; failures are only logged.
func (c *Client) SendMessage(msg string) {
	go func() {
		if err := c.sendMessage(context.Background(), msg); err != nil {
			log.Error("Error while sending message to telegram:", err)
		}
	}()
}

// truncate cuts msg to at most limit characters.
func truncate(msg string, limit int) string {
	if utf8.RuneCountInString(msg) <= limit {
		return msg
	}
	return string([]rune(msg)[:limit])
}

func (c *Client) sendMessage(ctx context.Context, msg string) error {
	msg = truncate(msg, maxMessageLen)

	form := url.Values{}
	form.Set("chat_id", c.chatID)
	form.Set("text", msg)

	endpoint := c.baseURL + "/bot" + c.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram responded with %s", resp.Status)
	}
	return nil
}
