// Package ai talks to the OpenAI text-completion and image-generation APIs.
package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/devicelab-dev/flowdigest/pkg/core"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Config holds the models and timeouts used for each call.
type Config struct {
	CompletionModel   string
	Temperature       float64
	CompletionTimeout time.Duration
	ImageModel        string
	ImageSize         string
	ImageTimeout      time.Duration
}

// DefaultConfig mirrors the settings the pipeline ships with.
func DefaultConfig() Config {
	return Config{
		CompletionModel:   "gpt-4o-mini",
		Temperature:       0.5,
		CompletionTimeout: 60 * time.Second,
		ImageModel:        "gpt-image-1",
		ImageSize:         "1024x1024",
		ImageTimeout:      120 * time.Second,
	}
}

// ClientOptions configures transport details.
type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithBaseURL points the client at a different API root.
func WithBaseURL(url string) ClientOption {
	return func(o *ClientOptions) {
		o.BaseURL = url
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *ClientOptions) {
		o.HTTPClient = c
	}
}

// Client implements summary.Completer and social.ImageGenerator.
type Client struct {
	client openai.Client
	cfg    Config
}

// NewClient creates a client. Calls are made once, without retries.
func NewClient(apiKey string, cfg Config, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, core.ErrMissingAPIKey
	}

	options := &ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if options.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(options.BaseURL))
	}
	if options.HTTPClient != nil {
		requestOpts = append(requestOpts, option.WithHTTPClient(options.HTTPClient))
	}

	return &Client{
		client: openai.NewClient(requestOpts...),
		cfg:    cfg,
	}, nil
}

// Complete sends prompt as a single user message and returns the trimmed
// completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.CompletionTimeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.CompletionModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.cfg.Temperature),
	})
	if err != nil {
		return "", wrapAPIError(core.ErrCompletionFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", core.ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", core.ErrEmptyCompletion
	}
	return text, nil
}

// GenerateImage requests one image for prompt and returns the decoded bytes.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ImageTimeout)
	defer cancel()

	params := openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(c.cfg.ImageModel),
		Size:   openai.ImageGenerateParamsSize(c.cfg.ImageSize),
		N:      openai.Int(1),
	}
	// gpt-image models always answer with base64; dall-e needs asking.
	if strings.HasPrefix(c.cfg.ImageModel, "dall-e") {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormatB64JSON
	}

	resp, err := c.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, wrapAPIError(core.ErrImageGeneration, err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, core.ErrImageDecode.WithMessage("image response carried no base64 payload")
	}
	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, core.ErrImageDecode.WithCause(err)
	}
	return raw, nil
}

// wrapAPIError surfaces the HTTP status and body of API errors.
func wrapAPIError(sentinel *core.Error, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return sentinel.
			WithMessage(fmt.Sprintf("%s: status %d", sentinel.Message, apiErr.StatusCode)).
			WithDetails(map[string]interface{}{
				"status": apiErr.StatusCode,
				"body":   apiErr.RawJSON(),
			}).
			WithCause(err)
	}
	return sentinel.WithCause(err)
}
