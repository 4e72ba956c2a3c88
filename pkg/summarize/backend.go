package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Backend modes.
const (
	ModeAuto   = "auto"
	ModeHF     = "hf"
	ModeOpenAI = "openai"
	ModeLocal  = "local"
)

// ErrUnexpectedResponse marks a backend reply that could not be decoded.
var ErrUnexpectedResponse = errors.New("unexpected backend response")

// Backend produces one summary within a token band.
type Backend interface {
	Name() string
	Model() string
	SummarizeOnce(ctx context.Context, text string, band Band, doSample bool) (string, error)
}

// Identity is an account check reported by backends that authenticate.
type Identity struct {
	Status int
	Body   any
}

// Identifier is implemented by backends that can report the account their
// credentials belong to.
type Identifier interface {
	WhoAmI(ctx context.Context) (Identity, error)
}

// Config selects and configures the backend.
type Config struct {
	Mode           string
	HFToken        string
	HFModel        string
	HFBaseURL      string
	OpenAIKey      string
	OpenAIBaseURL  string
	OpenAIModel    string
	RequestTimeout time.Duration
}

// Defaults for Config.
const (
	DefaultHFModel        = "facebook/bart-large-cnn"
	DefaultHFBaseURL      = "https://api-inference.huggingface.co/models/"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultRequestTimeout = 60 * time.Second
)

// NewBackend builds the backend for cfg.Mode. "auto" prefers Hugging Face
// when a token is set, then OpenAI when a key is set, then the local
// extractive backend.
func NewBackend(cfg Config, logger *slog.Logger) (Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = ModeAuto
	}
	switch mode {
	case ModeHF:
		return NewHF(cfg)
	case ModeOpenAI:
		return NewOpenAI(cfg)
	case ModeLocal:
		return NewLocal(logger), nil
	case ModeAuto:
		if cfg.HFToken != "" {
			return NewHF(cfg)
		}
		if cfg.OpenAIKey != "" {
			return NewOpenAI(cfg)
		}
		logger.Info("No remote credentials configured, using local backend")
		return NewLocal(logger), nil
	}
	return nil, fmt.Errorf("unknown summarizer backend %q (want auto, hf, openai or local)", cfg.Mode)
}
