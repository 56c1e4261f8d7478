package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ykvlv/assistant-bot/internal/domain"
)

// Options configure the OpenAI client.
type Options struct {
	APIKey     string
	BaseURL    string // empty means the public API
	Model      string
	Timeout    time.Duration
	RatePerMin float64 // <= 0 disables limiting
	Burst      int
}

// OpenAI is a Completer backed by an OpenAI-compatible chat completions API.
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewOpenAI builds the client.
func NewOpenAI(opts Options, log *zap.Logger) *OpenAI {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Model == "" {
		opts.Model = openai.GPT3Dot5Turbo
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RatePerMin > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerMin/60), burst)
	}
	return &OpenAI{
		client:  openai.NewClientWithConfig(cfg),
		model:   opts.Model,
		timeout: opts.Timeout,
		limiter: limiter,
		log:     log,
	}
}

// Complete sends text as a single user message and returns the trimmed answer.
// The rate-limit wait counts against the timeout.
func (o *OpenAI) Complete(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit: %v", domain.ErrBackend, err)
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			o.log.Warn("completion api error",
				zap.Int("status", apiErr.HTTPStatusCode),
				zap.Any("code", apiErr.Code),
			)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrBackend, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrBackend)
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("%w: empty answer", domain.ErrBackend)
	}
	o.log.Debug("completion ok",
		zap.String("model", o.model),
		zap.Duration("took", time.Since(start)),
		zap.Int("tokens", resp.Usage.TotalTokens),
	)
	return answer, nil
}
