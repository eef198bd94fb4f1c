package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/maxaizer/jobscout/internal/clients/llm"
	"golang.org/x/time/rate"
)

const (
	DefaultURL   = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel = "llama-3.3-70b-versatile"
)

const systemPrompt = "You are an expert technical recruiter. Respond with a single JSON object only."

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient        HTTPClient
	apiKey            string
	model             string
	url               string
	temperature       float64
	minuteRateLimiter *rate.Limiter
	dayRateLimiter    *rate.Limiter
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		httpClient:  &http.Client{},
		apiKey:      apiKey,
		model:       model,
		url:         DefaultURL,
		temperature: 0.3,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetURL(url string) {
	c.url = url
}

// SetMinuteRateLimit installs a per-minute limiter; zero or less removes it.
func (c *Client) SetMinuteRateLimit(maxRequestsPerMinute float32) {
	if maxRequestsPerMinute <= 0 {
		c.minuteRateLimiter = nil
		return
	}
	c.minuteRateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerMinute/60), 1)
}

// SetDayRateLimit installs a per-day limiter; zero or less removes it.
func (c *Client) SetDayRateLimit(maxRequestsPerDay float32) {
	if maxRequestsPerDay <= 0 {
		c.dayRateLimiter = nil
		return
	}
	c.dayRateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerDay/86400), max(int(maxRequestsPerDay), 1))
}

func (c *Client) Name() string {
	return "groq"
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []message      `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) GenerateResponse(ctx context.Context, prompt string) (string, error) {

	for _, limiter := range []*rate.Limiter{c.minuteRateLimiter, c.dayRateLimiter} {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return "", err
			}
		}
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    c.temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("error encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", llm.FromStatus(resp.StatusCode, string(body))
	}

	var chat chatResponse
	if err = json.Unmarshal(body, &chat); err != nil {
		return "", fmt.Errorf("error decoding JSON response: %w", err)
	}
	if chat.Error != nil {
		return "", fmt.Errorf("groq api error: %s", chat.Error.Message)
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return "", llm.ErrEmptyResponse
	}

	return chat.Choices[0].Message.Content, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", llm.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", llm.ErrUnavailable, err)
}
