package scoring

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"blogaudit/internal/content"
)

var (
	// ErrScoringUnavailable means the scoring service could not produce a
	// response after retries. The article is skipped, not the batch.
	ErrScoringUnavailable = errors.New("scoring unavailable")

	// ErrMalformedResponse means the model replied but the reply failed
	// schema validation. The article is skipped, not the batch.
	ErrMalformedResponse = errors.New("malformed scoring response")
)

var mTok = decimal.NewFromInt(1_000_000)

// Rates prices model usage in dollars per million tokens.
type Rates struct {
	InputPerMTok  decimal.Decimal
	OutputPerMTok decimal.Decimal
}

// ParseRates builds a rate table from decimal strings such as "3.00".
func ParseRates(input, output string) (Rates, error) {
	in, err := decimal.NewFromString(input)
	if err != nil {
		return Rates{}, fmt.Errorf("invalid input token rate %q: %w", input, err)
	}
	out, err := decimal.NewFromString(output)
	if err != nil {
		return Rates{}, fmt.Errorf("invalid output token rate %q: %w", output, err)
	}
	return Rates{InputPerMTok: in, OutputPerMTok: out}, nil
}

// Cost computes the exact dollar cost of one call.
func (r Rates) Cost(inputTokens, outputTokens int) decimal.Decimal {
	in := decimal.NewFromInt(int64(inputTokens)).Div(mTok).Mul(r.InputPerMTok)
	out := decimal.NewFromInt(int64(outputTokens)).Div(mTok).Mul(r.OutputPerMTok)
	return in.Add(out)
}

// CostRecord is the ledger entry for a single API attempt. Failed attempts
// that consumed tokens are recorded like successful ones.
type CostRecord struct {
	URL          string
	Seq          int
	Facet        Facet
	InputTokens  int
	OutputTokens int
	Cost         decimal.Decimal
}

// Options tunes the scoring client's retry and token behavior.
type Options struct {
	MaxTokens   int
	MaxAttempts int
	BackoffBase time.Duration
	BackoffMax  time.Duration
}

// Client scores articles facet by facet, retrying transient failures and
// recording the cost of every attempt.
type Client struct {
	provider Provider
	rates    Rates
	opts     Options
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewClient creates a scoring client. Zero option fields get defaults.
func NewClient(provider Provider, rates Rates, opts Options) *Client {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1500
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = time.Second
	}
	if opts.BackoffMax <= 0 {
		opts.BackoffMax = 10 * time.Second
	}
	return &Client{
		provider: provider,
		rates:    rates,
		opts:     opts,
		sleep:    sleepContext,
	}
}

// WithSleeper replaces the delay function, used by tests to avoid waiting.
func (c *Client) WithSleeper(sleep func(ctx context.Context, d time.Duration) error) *Client {
	c.sleep = sleep
	return c
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Score runs all four scoring facets against one article. It returns the
// cost records for every attempt made, including those of a failed run, so
// the caller can persist spend even when the article is skipped.
func (c *Client) Score(ctx context.Context, rec *content.Record, targetKeyword, brandVoice string) (*Result, []CostRecord, error) {
	url := rec.CanonicalURL()
	clean := content.Clean(rec.Content)

	var costs []CostRecord
	seq := 0

	call := func(facet Facet, prompt string) (string, error) {
		text, attempts, err := c.callWithRetry(ctx, facet, prompt, url, &seq)
		costs = append(costs, attempts...)
		return text, err
	}

	qualityText, err := call(FacetQuality, qualityPrompt(clean, brandVoice))
	if err != nil {
		return nil, costs, err
	}
	toneText, err := call(FacetTone, tonePrompt(clean))
	if err != nil {
		return nil, costs, err
	}
	seoText, err := call(FacetSEO, seoPrompt(clean, rec, targetKeyword))
	if err != nil {
		return nil, costs, err
	}
	catText, err := call(FacetCategorization, categorizationPrompt(clean))
	if err != nil {
		return nil, costs, err
	}

	result := &Result{}
	if result.Quality, err = parseQuality(qualityText); err != nil {
		return nil, costs, fmt.Errorf("%w: %s facet: %v", ErrMalformedResponse, FacetQuality, err)
	}
	if result.Tone, err = parseTone(toneText); err != nil {
		return nil, costs, fmt.Errorf("%w: %s facet: %v", ErrMalformedResponse, FacetTone, err)
	}
	if result.SEO, err = parseSEO(seoText); err != nil {
		return nil, costs, fmt.Errorf("%w: %s facet: %v", ErrMalformedResponse, FacetSEO, err)
	}
	if result.Categorization, err = parseCategorization(catText); err != nil {
		return nil, costs, fmt.Errorf("%w: %s facet: %v", ErrMalformedResponse, FacetCategorization, err)
	}
	return result, costs, nil
}

// callWithRetry makes one facet call, retrying transient failures with
// exponential backoff. Each attempt produces a cost record, even attempts
// that failed before any tokens were billed.
func (c *Client) callWithRetry(ctx context.Context, facet Facet, prompt, url string, seq *int) (string, []CostRecord, error) {
	var attempts []CostRecord
	var lastErr error

	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		completion, err := c.provider.Generate(ctx, prompt, c.opts.MaxTokens)

		*seq++
		attempts = append(attempts, CostRecord{
			URL:          url,
			Seq:          *seq,
			Facet:        facet,
			InputTokens:  completion.InputTokens,
			OutputTokens: completion.OutputTokens,
			Cost:         c.rates.Cost(completion.InputTokens, completion.OutputTokens),
		})

		if err == nil {
			return completion.Text, attempts, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", attempts, ctx.Err()
		}
		if !retryable(err) {
			break
		}
		if attempt == c.opts.MaxAttempts {
			break
		}
		if err := c.sleep(ctx, c.retryDelay(attempt, err)); err != nil {
			return "", attempts, err
		}
	}

	return "", attempts, fmt.Errorf("%w: %s facet after %d attempt(s): %v", ErrScoringUnavailable, facet, len(attempts), lastErr)
}

// retryDelay doubles the base delay per attempt up to the configured cap.
// A server-provided Retry-After wins when it is longer.
func (c *Client) retryDelay(attempt int, err error) time.Duration {
	delay := c.opts.BackoffBase
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= c.opts.BackoffMax {
			delay = c.opts.BackoffMax
			break
		}
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) && statusErr.RetryAfter > delay {
		delay = statusErr.RetryAfter
		if delay > c.opts.BackoffMax {
			delay = c.opts.BackoffMax
		}
	}
	return delay
}

// retryable reports whether an attempt failure is worth repeating: rate
// limits, request timeouts, server errors, and network timeouts.
func retryable(err error) bool {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return true
		case statusErr.StatusCode == http.StatusRequestTimeout:
			return true
		case statusErr.StatusCode >= 500:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
