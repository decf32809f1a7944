// Package llm wraps one outbound text-generation call against an
// OpenAI-compatible chat completions endpoint, with a bounded retry policy
// and normalization of the returned text.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrConfiguration indicates the client could not be constructed from
	// the supplied endpoint/model settings.
	ErrConfiguration = errors.New("generation client misconfigured")

	// ErrGenerationFailed indicates all attempts were exhausted. It wraps
	// the last underlying cause.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrTimeout indicates the per-attempt budget elapsed before a usable
	// response arrived.
	ErrTimeout = errors.New("generation request timed out")

	// ErrTransport indicates a network or provider-level failure.
	ErrTransport = errors.New("generation transport error")
)

const (
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
	attemptPause   = time.Second
)

// Request is one transient text-generation request, built fresh per call.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Options configures a Client.
type Options struct {
	Endpoint string // base URL, e.g. https://api.openai.com/v1
	APIKey   string
	Model    string
}

// Client is a minimal HTTP client for an OpenAI-compatible chat completions
// API.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client

	// sleep is called between attempts; tests replace it to avoid
	// wall-clock waits.
	sleep func(time.Duration)
}

// NewClient validates the options and builds a client. An empty endpoint or
// model is a configuration error, not something deferred to call time.
func NewClient(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("%w: empty endpoint", ErrConfiguration)
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("%w: empty model", ErrConfiguration)
	}
	if _, err := url.ParseRequestURI(opts.Endpoint); err != nil {
		return nil, fmt.Errorf("%w: malformed endpoint %q: %v", ErrConfiguration, opts.Endpoint, err)
	}

	return &Client{
		endpoint: strings.TrimSuffix(opts.Endpoint, "/"),
		apiKey:   opts.APIKey,
		model:    opts.Model,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		sleep: time.Sleep,
	}, nil
}

// Generate sends the request and returns the normalized response text.
// Transport and provider errors are retried up to two times with a fixed
// pause between attempts; a successful response is never retried, even when
// its content is empty.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			c.sleep(attemptPause)
		}

		text, err := c.complete(ctx, req)
		if err == nil {
			return normalize(text), nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("%w after %d attempts: %w", ErrGenerationFailed, maxAttempts, lastErr)
}

// complete performs a single chat completions round trip.
func (c *Client) complete(ctx context.Context, req Request) (string, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.User},
		},
		"temperature": req.Temperature,
		"max_tokens":  req.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: provider responded with %s: %s", ErrTransport, resp.Status, strings.TrimSpace(string(snippet)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: provider returned no choices", ErrTransport)
	}

	// Empty content is a soft failure for the caller to judge, not an
	// error worth a retry.
	return parsed.Choices[0].Message.Content, nil
}

// normalize trims surrounding whitespace and removes one outermost
// triple-backtick fence pair, tolerating providers that wrap plain-text
// answers in a code block. The stripping is textual only.
func normalize(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < 6 || !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") {
		return text
	}

	body := text
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		// The opening fence line may carry a language tag; drop the
		// whole line.
		body = body[nl+1:]
	} else {
		// Single-line fenced content.
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(body, "```"), "```"))
	}

	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
