package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/maxaizer/jobscout/internal/clients/llm"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

type Model string

const (
	//Model15Flash is fastest multimodal model with great performance for diverse, repetitive tasks
	Model15Flash Model = "gemini-1.5-flash"
	//Model15Pro is next-generation model with a breakthrough 2 million context window
	Model15Pro Model = "gemini-1.5-pro"
	//Model20Flash is second-generation flash model with native structured output
	Model20Flash Model = "gemini-2.0-flash"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Client struct {
	client            *genai.Client
	model             contentGenerator
	minuteRateLimiter *rate.Limiter
	dayRateLimiter    *rate.Limiter
}

func NewClient(ctx context.Context, apiKey string, model Model) (*Client, error) {

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if model == "" {
		model = Model15Flash
	}
	genModel := client.GenerativeModel(string(model))
	genModel.ResponseMIMEType = "application/json"
	genModel.SetTemperature(0.3)

	return &Client{
		client: client,
		model:  genModel,
	}, nil
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
	return "gemini"
}

func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) GenerateResponse(ctx context.Context, text string) (string, error) {

	limiters := []*rate.Limiter{c.minuteRateLimiter, c.dayRateLimiter}
	for _, limiter := range limiters {
		if limiter != nil {
			err := limiter.Wait(ctx)
			if err != nil {
				return "", err
			}
		}
	}

	response, err := c.model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return "", llm.FromMessage(err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		return "", llm.ErrEmptyResponse
	}

	part := response.Candidates[0].Content.Parts[0]
	if textPart, ok := part.(genai.Text); ok {
		return string(textPart), nil
	}

	return "", fmt.Errorf("response part is not text")
}
