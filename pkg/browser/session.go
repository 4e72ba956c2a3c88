package browser

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-rod/rod/lib/proto"

	"github.com/dtnitsch/smart-reader/pkg/companion"
	"github.com/dtnitsch/smart-reader/pkg/overlay"
	"github.com/dtnitsch/smart-reader/pkg/placement"
	"github.com/dtnitsch/smart-reader/pkg/preference"
)

// SessionConfig wires a watched tab to the activation handler.
type SessionConfig struct {
	// Handler runs extraction and summarization. Its Presenter and Control
	// are set by the session.
	Handler *companion.Handler

	// Preferences is watched for the enabled flag. Nil keeps the control
	// enabled.
	Preferences *preference.Store

	Clipboard overlay.Clipboard
	Logger    *slog.Logger
}

// Session keeps the floating control alive on one tab.
type Session struct {
	tab       *Tab
	surface   *Surface
	presenter *Presenter
	engine    *placement.Engine
	cfg       SessionConfig
}

// NewSession attaches to an open tab.
func NewSession(tab *Tab, cfg SessionConfig) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = overlay.NewSystemClipboard()
	}
	surface := NewSurface(tab)
	presenter := NewPresenter(tab)

	enabled := true
	if cfg.Preferences != nil {
		p, err := cfg.Preferences.Load()
		if err != nil {
			cfg.Logger.Warn("Failed to load preferences, using defaults", "error", err)
		} else {
			enabled = p.Enabled
		}
	}

	engine := placement.New(surface, enabled, placement.WithLogger(cfg.Logger))
	cfg.Handler.Presenter = &gatedPresenter{inner: presenter, engine: engine, logger: cfg.Logger}
	cfg.Handler.Control = surface

	return &Session{
		tab:       tab,
		surface:   surface,
		presenter: presenter,
		engine:    engine,
		cfg:       cfg,
	}
}

// Engine exposes the placement engine.
func (s *Session) Engine() *placement.Engine { return s.engine }

// Run places the control and serves its events until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	log := s.cfg.Logger
	payloads := make(chan string, 64)

	wait := s.tab.page.Context(ctx).EachEvent(func(e *proto.RuntimeBindingCalled) {
		if e.Name != bindingName {
			return
		}
		select {
		case payloads <- e.Payload:
		case <-ctx.Done():
		}
	})
	go wait()

	if err := s.tab.Inject(ctx); err != nil {
		return err
	}
	if err := s.engine.Start(); err != nil {
		log.Warn("Initial placement failed", "error", err)
	}

	if s.cfg.Preferences != nil {
		go func() {
			err := s.cfg.Preferences.Watch(ctx, s.applyPreferences)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("Preference watch stopped", "error", err)
			}
		}()
	}

	b := &bridge{
		engine:   s.engine,
		activate: s.activate,
		copy:     s.copy,
		logger:   log,
	}
	log.Info("Control attached", "url", s.tab.URL().String())
	b.run(ctx, payloads)
	return ctx.Err()
}

func (s *Session) applyPreferences(p preference.Preferences) {
	if err := s.engine.SetEnabled(p.Enabled); err != nil {
		s.cfg.Logger.Warn("Failed to apply preference", "enabled", p.Enabled, "error", err)
	}
	if !p.Enabled {
		_ = s.presenter.Dismiss(context.Background())
	}
}

func (s *Session) activate(ctx context.Context) {
	res, err := s.cfg.Handler.Activate(ctx, s.tab)
	switch {
	case errors.Is(err, companion.ErrBusy):
		s.cfg.Logger.Debug("Activation ignored while busy")
	case err != nil:
		s.cfg.Logger.Info("Activation failed", "error", err)
	default:
		s.cfg.Logger.Info("Summary shown", "title", res.Extraction.Title, "source", res.Extraction.Source)
	}
}

func (s *Session) copy(ctx context.Context) {
	panel, ok := s.presenter.Current()
	if !ok {
		return
	}
	out := overlay.CopyBody(ctx, s.cfg.Clipboard, panel)
	if out.Err != nil {
		s.cfg.Logger.Warn("Clipboard copy failed", "error", out.Err)
	}
	if err := s.presenter.CopyResult(out); err != nil {
		s.cfg.Logger.Debug("Failed to report copy result", "error", err)
	}
}
