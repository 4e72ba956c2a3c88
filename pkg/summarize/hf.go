package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// HF calls the Hugging Face inference API.
type HF struct {
	token string
	model string
	url   string
	http  *http.Client

	// Retries is the number of extra attempts after a 5xx, a 429 or a
	// transport error. The delay doubles after each attempt.
	Retries    int
	RetryDelay time.Duration

	// WhoAmIURL is the account endpoint used by WhoAmI.
	WhoAmIURL string
}

// DefaultHFWhoAmIURL reports the account behind a Hugging Face token.
const DefaultHFWhoAmIURL = "https://huggingface.co/api/whoami-v2"

type hfParameters struct {
	MaxLength         int     `json:"max_length"`
	MinLength         int     `json:"min_length"`
	DoSample          bool    `json:"do_sample"`
	NumBeams          int     `json:"num_beams"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size"`
	LengthPenalty     float64 `json:"length_penalty"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfResult struct {
	SummaryText string `json:"summary_text"`
}

func NewHF(cfg Config) (*HF, error) {
	if cfg.HFToken == "" {
		return nil, fmt.Errorf("HF_TOKEN is required for the %s backend", ModeHF)
	}
	model := cfg.HFModel
	if model == "" {
		model = DefaultHFModel
	}
	base := cfg.HFBaseURL
	if base == "" {
		base = DefaultHFBaseURL
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &HF{
		token:      cfg.HFToken,
		model:      model,
		url:        strings.TrimRight(base, "/") + "/" + model,
		http:       &http.Client{Timeout: timeout},
		Retries:    2,
		RetryDelay: time.Second,
		WhoAmIURL:  DefaultHFWhoAmIURL,
	}, nil
}

func (h *HF) Name() string  { return ModeHF }
func (h *HF) Model() string { return h.model }

func (h *HF) SummarizeOnce(ctx context.Context, text string, band Band, doSample bool) (string, error) {
	band = band.Bounded()
	body, err := json.Marshal(hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MaxLength:         band.Max,
			MinLength:         band.Min,
			DoSample:          doSample,
			NumBeams:          4,
			NoRepeatNgramSize: 3,
			LengthPenalty:     1.0,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode Hugging Face request: %w", err)
	}

	status, raw, err := h.postWithRetries(ctx, body)
	if err != nil {
		return "", fmt.Errorf("Hugging Face request failed: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("Hugging Face error %d: %s", status, strings.TrimSpace(string(raw)))
	}

	var out []hfResult
	if err := json.Unmarshal(raw, &out); err != nil || len(out) == 0 {
		return "", fmt.Errorf("%w from Hugging Face: %s", ErrUnexpectedResponse, strings.TrimSpace(string(raw)))
	}
	return out[0].SummaryText, nil
}

// schedule is the retry policy: RetryDelay, doubling, no jitter, at most
// Retries extra attempts.
func (h *HF) schedule() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = h.RetryDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = h.RetryDelay << max(h.Retries, 0)
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, uint64(max(h.Retries, 0)))
}

func (h *HF) postWithRetries(ctx context.Context, body []byte) (int, []byte, error) {
	var status int
	var raw []byte
	op := func() error {
		var err error
		status, raw, err = h.post(ctx, body)
		if err != nil {
			return err
		}
		if status >= 500 || status == http.StatusTooManyRequests {
			return fmt.Errorf("status %d: %s", status, strings.TrimSpace(string(raw)))
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(h.schedule(), ctx)); err != nil {
		return 0, nil, err
	}
	return status, raw, nil
}

// WhoAmI asks Hugging Face which account the token belongs to. The status
// is reported as is; only a transport failure is an error.
func (h *HF) WhoAmI(ctx context.Context) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.WhoAmIURL, nil)
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+h.token)

	resp, err := h.http.Do(req)
	if err != nil {
		return Identity{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to read response body: %w", err)
	}
	id := Identity{Status: resp.StatusCode, Body: string(raw)}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var body any
		if json.Unmarshal(raw, &body) == nil {
			id.Body = body
		}
	}
	return id, nil
}

func (h *HF) post(ctx context.Context, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, raw, nil
}
